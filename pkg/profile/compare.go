package profile

import (
	"fmt"

	"github.com/dtnitsch/taxi-report/pkg/db"
)

// exampleLimit caps how many ids each difference lists.
const exampleLimit = 20

// IDComparison is the referential-integrity check between trip pickup
// ids and lookup ids, computed over distinct values.
type IDComparison struct {
	TripDistinct   int
	LookupDistinct int

	MissingFromLookup      int
	MissingFromLookupIDs   []int64
	UnusedLookupIDs        int
	UnusedLookupIDExamples []int64
}

// CompareIDs loads both id sets into an in-memory database and diffs them.
func CompareIDs(tripIDs, lookupIDs []int64) (*IDComparison, error) {
	database, err := db.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open scratch database: %w", err)
	}
	defer database.Close()

	if err := database.InsertIDs(db.TripIDs, tripIDs); err != nil {
		return nil, err
	}
	if err := database.InsertIDs(db.LookupIDs, lookupIDs); err != nil {
		return nil, err
	}

	cmp := &IDComparison{}
	if cmp.TripDistinct, err = database.Count(db.TripIDs); err != nil {
		return nil, err
	}
	if cmp.LookupDistinct, err = database.Count(db.LookupIDs); err != nil {
		return nil, err
	}

	cmp.MissingFromLookupIDs, cmp.MissingFromLookup, err = database.Difference(db.TripIDs, db.LookupIDs, exampleLimit)
	if err != nil {
		return nil, err
	}
	cmp.UnusedLookupIDExamples, cmp.UnusedLookupIDs, err = database.Difference(db.LookupIDs, db.TripIDs, exampleLimit)
	if err != nil {
		return nil, err
	}

	return cmp, nil
}
