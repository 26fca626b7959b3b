// Package zones loads the taxi zone lookup table.
package zones

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultBorough = "Unknown Borough"
	DefaultZone    = "Unknown Zone"
)

// Zone is one row of the lookup table.
type Zone struct {
	LocationID int64
	Borough    string
	Zone       string
}

// Label renders the zone as "Zone (Borough)".
func (z Zone) Label() string {
	return fmt.Sprintf("%s (%s)", z.Zone, z.Borough)
}

// SkippedRow is a lookup row that could not be loaded. Line is 1-indexed
// and counts the header.
type SkippedRow struct {
	Line   int
	Raw    string
	Reason string
}

// Lookup maps LocationID to its zone.
type Lookup struct {
	zones   map[int64]Zone
	Skipped []SkippedRow
}

// Len returns the number of loaded zones.
func (l *Lookup) Len() int {
	return len(l.zones)
}

// Get returns the zone for id, if loaded.
func (l *Lookup) Get(id int64) (Zone, bool) {
	z, ok := l.zones[id]
	return z, ok
}

// Label returns the report key for id. Unknown ids get a placeholder
// that still carries the id so the count is not lost.
func (l *Lookup) Label(id int64) string {
	if z, ok := l.zones[id]; ok {
		return z.Label()
	}
	return fmt.Sprintf("%s ID:%d (%s)", DefaultZone, id, DefaultBorough)
}

// IDs returns the loaded location ids in no particular order.
func (l *Lookup) IDs() []int64 {
	ids := make([]int64, 0, len(l.zones))
	for id := range l.zones {
		ids = append(ids, id)
	}
	return ids
}

// Load reads LocationID,Borough,Zone[,...] rows after a header line.
// Rows with too few fields or a non-integer id are skipped, not fatal.
func Load(r io.Reader) (*Lookup, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	lookup := &Lookup{zones: make(map[int64]Zone)}

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return lookup, nil
		}
		return nil, fmt.Errorf("failed to read lookup header: %w", err)
	}

	lineNo := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			return nil, fmt.Errorf("failed to read lookup line %d: %w", lineNo, err)
		}

		if len(record) < 3 {
			lookup.Skipped = append(lookup.Skipped, SkippedRow{
				Line:   lineNo,
				Raw:    strings.Join(record, ","),
				Reason: "too few fields",
			})
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			lookup.Skipped = append(lookup.Skipped, SkippedRow{
				Line:   lineNo,
				Raw:    strings.Join(record, ","),
				Reason: "malformed LocationID",
			})
			continue
		}

		lookup.zones[id] = Zone{
			LocationID: id,
			Borough:    orDefault(record[1], DefaultBorough),
			Zone:       orDefault(record[2], DefaultZone),
		}
	}

	return lookup, nil
}

// LoadFile opens and loads a lookup CSV.
func LoadFile(path string) (*Lookup, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
