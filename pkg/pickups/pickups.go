// Package pickups counts trips per pickup location and writes the
// tab-separated key/count report consumed by the topn command.
package pickups

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/dtnitsch/taxi-report/pkg/mapreduce"
	"github.com/dtnitsch/taxi-report/pkg/trips"
	"github.com/parquet-go/parquet-go"
)

// Counts is the reduced pickup count per location id plus what was skipped.
type Counts struct {
	ByLocation  map[int64]int
	Nulls       int
	NotInteger  int
	NonPositive int
	RowGroups   int
}

// Labeler turns a location id into a report key.
type Labeler interface {
	Label(id int64) string
}

// Count maps every PULocationID value into a per-row-group partial count
// and reduces the partials. Nulls, non-integer values and ids <= 0 are
// skipped and counted separately.
func Count(f *trips.File) (*Counts, error) {
	if !f.HasColumn(trips.ColPickupLocation) {
		return nil, fmt.Errorf("%w: %s", trips.ErrColumnNotFound, trips.ColPickupLocation)
	}

	partials := make([]map[int64]int, f.NumRowGroups())
	for g := range partials {
		partials[g] = make(map[int64]int)
	}
	result := &Counts{RowGroups: len(partials)}

	err := f.ScanColumn(trips.ColPickupLocation, func(g int, v parquet.Value) error {
		if v.IsNull() {
			result.Nulls++
			return nil
		}
		id, ok := trips.Int64(v)
		if !ok {
			result.NotInteger++
			return nil
		}
		if !mapreduce.Map(partials[g], id) {
			result.NonPositive++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.ByLocation = mapreduce.Reduce(partials)
	return result, nil
}

// WriteReport writes "<label>\t<count>" lines ordered by location id.
func WriteReport(w io.Writer, counts map[int64]int, labels Labeler) error {
	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", labels.Label(id), counts[id]); err != nil {
			return fmt.Errorf("failed to write report line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
