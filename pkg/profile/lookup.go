package profile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dtnitsch/taxi-report/models"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Lookup table column names.
const (
	ColLocationID = "LocationID"
	ColBorough    = "Borough"
	ColZone       = "Zone"
)

// lookupNaN are the cell values read as missing.
var lookupNaN = []string{"", "NA", "NaN", "N/A", "null"}

// LookupIDStats summarizes the LocationID column of the lookup table.
type LookupIDStats struct {
	Unique     bool
	Numeric    bool
	Distinct   int
	Nulls      int
	Min        float64
	Max        float64
	Duplicates dataframe.DataFrame
	IDs        []int64
}

// LookupProfile is everything the lookup-file exploration reports.
type LookupProfile struct {
	Path         string
	Frame        dataframe.DataFrame
	Nulls        map[string]int
	Location     *LookupIDStats
	Boroughs     *models.RankedResult
	Zones        *models.RankedResult
	DistinctZone int
}

// Rows returns the row count.
func (p *LookupProfile) Rows() int {
	return p.Frame.Nrow()
}

// Head returns the first n rows.
func (p *LookupProfile) Head(n int) dataframe.DataFrame {
	if n > p.Frame.Nrow() {
		n = p.Frame.Nrow()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return p.Frame.Subset(idx)
}

// ProfileLookupFile loads and profiles a lookup CSV from disk.
func ProfileLookupFile(path string) (*LookupProfile, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup file: %w", err)
	}
	defer f.Close()

	p, err := ProfileLookup(f)
	if err != nil {
		return nil, err
	}
	p.Path = path
	return p, nil
}

// ProfileLookup loads the CSV into a DataFrame and computes its summary.
// A file with only a header row yields a frame with zero rows.
func ProfileLookup(r io.Reader) (*LookupProfile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup CSV: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(lookupNaN),
	)
	if df.Err != nil {
		header, ok := headerOnly(data)
		if !ok {
			return nil, fmt.Errorf("failed to read lookup CSV: %w", df.Err)
		}
		df = emptyFrame(header)
		if df.Err != nil {
			return nil, fmt.Errorf("failed to read lookup CSV: %w", df.Err)
		}
	}

	p := &LookupProfile{
		Frame: df,
		Nulls: make(map[string]int),
	}

	names := df.Names()
	for _, name := range names {
		p.Nulls[name] = countNaN(df.Col(name))
	}

	if hasColumn(names, ColLocationID) {
		p.Location = lookupIDStats(df)
	}

	if hasColumn(names, ColBorough) {
		counts, _ := frequencies(df.Col(ColBorough))
		ranked := rankCounts(counts, len(counts))
		p.Boroughs = &ranked
	}

	if hasColumn(names, ColZone) {
		counts, distinct := frequencies(df.Col(ColZone))
		ranked := rankCounts(counts, topFrequent)
		p.Zones = &ranked
		p.DistinctZone = distinct
	}

	return p, nil
}

// headerOnly returns the header when data holds exactly one CSV record.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 || len(records[0]) == 0 {
		return nil, false
	}
	return records[0], true
}

func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

func lookupIDStats(df dataframe.DataFrame) *LookupIDStats {
	col := df.Col(ColLocationID)
	stats := &LookupIDStats{
		Numeric: col.Type() == series.Int || col.Type() == series.Float,
		Nulls:   countNaN(col),
	}

	nan := col.IsNaN()
	rowsByValue := make(map[string][]int)
	var order []string
	for i, rec := range col.Records() {
		if nan[i] {
			continue
		}
		if _, ok := rowsByValue[rec]; !ok {
			order = append(order, rec)
		}
		rowsByValue[rec] = append(rowsByValue[rec], i)
	}
	stats.Distinct = len(rowsByValue)
	stats.Unique = stats.Nulls == 0 && stats.Distinct == col.Len()

	var dupRows []int
	for _, rec := range order {
		if rows := rowsByValue[rec]; len(rows) > 1 {
			dupRows = append(dupRows, rows...)
		}
	}
	if len(dupRows) > 0 {
		sort.Ints(dupRows)
		stats.Duplicates = df.Subset(dupRows)
	}

	if stats.Numeric {
		stats.Min = col.Min()
		stats.Max = col.Max()
	}

	for _, rec := range order {
		id, err := parseID(rec)
		if err != nil {
			continue
		}
		stats.IDs = append(stats.IDs, id)
	}
	sort.Slice(stats.IDs, func(i, j int) bool { return stats.IDs[i] < stats.IDs[j] })

	return stats
}

// frequencies counts each record, nulls as "NaN", and returns the
// number of distinct non-null values.
func frequencies(s series.Series) (map[string]int, int) {
	counts := make(map[string]int)
	nan := s.IsNaN()
	distinct := 0
	for i, rec := range s.Records() {
		if nan[i] {
			counts["NaN"]++
			continue
		}
		if counts[rec] == 0 {
			distinct++
		}
		counts[rec]++
	}
	return counts, distinct
}

func countNaN(s series.Series) int {
	n := 0
	for _, isNaN := range s.IsNaN() {
		if isNaN {
			n++
		}
	}
	return n
}

func hasColumn(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// parseID accepts integer ids, including float-typed ones such as "12.0".
func parseID(rec string) (int64, error) {
	rec = strings.TrimSpace(rec)
	if id, err := strconv.ParseInt(rec, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(rec, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("non-integer id %q", rec)
	}
	return int64(f), nil
}
