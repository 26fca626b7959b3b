// Package profile prints descriptive statistics for the trip and zone
// lookup files and cross-checks their location ids.
package profile

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dtnitsch/taxi-report/models"
	"github.com/dtnitsch/taxi-report/pkg/mapreduce"
	"github.com/dtnitsch/taxi-report/pkg/trips"
	"github.com/parquet-go/parquet-go"
)

// topFrequent is how many entries a frequency table shows.
const topFrequent = 10

// ColumnProfile is the schema entry and null count for one column.
type ColumnProfile struct {
	Name     string
	Type     string
	Optional bool
	Nulls    int64
	NonNull  int64
}

// NumericStats is the count, mean, sample standard deviation and range of
// one numeric column. Std is NaN with fewer than two values.
type NumericStats struct {
	Column string
	Count  int64
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
}

// CategoricalStats summarizes a text or timestamp column. Text columns
// fill Unique, Top and Freq; timestamp columns fill First and Last.
type CategoricalStats struct {
	Column    string
	Count     int64
	Unique    int
	Top       string
	Freq      int
	Timestamp bool
	First     time.Time
	Last      time.Time
}

// LocationStats summarizes the PULocationID column.
type LocationStats struct {
	Unique      bool
	Distinct    int
	Nulls       int64
	NotInteger  int64
	Min         int64
	Max         int64
	NonPositive int64
	Top         models.RankedResult
	IDs         []int64
}

// PickupRange is the min/max pickup time when the column is a timestamp.
type PickupRange struct {
	IsTimestamp bool
	Type        string
	Min         time.Time
	Max         time.Time
}

// ValueCounts is a frequency table for one column, nulls included as "NaN".
type ValueCounts struct {
	Column string
	Counts models.RankedResult
}

// TripProfile is everything the trip-file exploration reports.
type TripProfile struct {
	Path        string
	Rows        int64
	Columns     []ColumnProfile
	Head        [][]string
	Numeric     []NumericStats
	Categorical []CategoricalStats
	Location    *LocationStats
	Pickup      *PickupRange
	Values      []ValueCounts
}

// NullColumns returns columns with at least one null, most nulls first.
func (p *TripProfile) NullColumns() []ColumnProfile {
	return withNulls(p.Columns)
}

func withNulls(cols []ColumnProfile) []ColumnProfile {
	var out []ColumnProfile
	for _, c := range cols {
		if c.Nulls > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Nulls > out[j].Nulls
	})
	return out
}

// ProfileTrips scans the trip file. Columns of interest that are missing
// leave their section nil instead of failing.
func ProfileTrips(f *trips.File) (*TripProfile, error) {
	p := &TripProfile{
		Path: f.Path(),
		Rows: f.NumRows(),
	}

	cols := f.Columns()
	for _, col := range cols {
		cp, err := describeColumn(f, col, p)
		if err != nil {
			return nil, err
		}
		p.Columns = append(p.Columns, cp)
	}

	head, err := headRecords(f, cols)
	if err != nil {
		return nil, err
	}
	p.Head = head

	if f.HasColumn(trips.ColPickupLocation) {
		stats, err := locationStats(f)
		if err != nil {
			return nil, err
		}
		p.Location = stats
	}

	if col, ok := f.Column(trips.ColPickupDatetime); ok {
		p.Pickup = &PickupRange{IsTimestamp: col.IsTimestamp(), Type: col.Type}
		for _, c := range p.Categorical {
			if c.Column == col.Name && c.Timestamp {
				p.Pickup.Min, p.Pickup.Max = c.First, c.Last
			}
		}
	}

	for _, name := range []string{trips.ColCongestionSurcharge, trips.ColAirportFee} {
		if !f.HasColumn(name) {
			continue
		}
		vc, err := valueCounts(f, name)
		if err != nil {
			return nil, err
		}
		p.Values = append(p.Values, vc)
	}

	return p, nil
}

// describeColumn counts nulls and, in the same pass, collects numeric or
// categorical statistics into p.
func describeColumn(f *trips.File, col trips.Column, p *TripProfile) (ColumnProfile, error) {
	cp := ColumnProfile{Name: col.Name, Type: col.Type, Optional: col.Optional}

	var (
		num      = NumericStats{Column: col.Name}
		mean, m2 float64
		cat      = CategoricalStats{Column: col.Name, Timestamp: col.IsTimestamp()}
		text     map[string]int
	)
	if col.IsText() {
		text = make(map[string]int)
	}

	err := f.ScanColumn(col.Name, func(_ int, v parquet.Value) error {
		if v.IsNull() {
			cp.Nulls++
			return nil
		}
		switch {
		case col.IsNumeric():
			x, ok := trips.Float64(v)
			if !ok {
				return nil
			}
			if num.Count == 0 || x < num.Min {
				num.Min = x
			}
			if num.Count == 0 || x > num.Max {
				num.Max = x
			}
			num.Count++
			delta := x - mean
			mean += delta / float64(num.Count)
			m2 += delta * (x - mean)
		case cat.Timestamp:
			ts := col.Time(v)
			if cat.Count == 0 || ts.Before(cat.First) {
				cat.First = ts
			}
			if cat.Count == 0 || ts.After(cat.Last) {
				cat.Last = ts
			}
			cat.Count++
		case text != nil:
			text[string(v.ByteArray())]++
			cat.Count++
		}
		return nil
	})
	if err != nil {
		return cp, err
	}
	cp.NonNull = p.Rows - cp.Nulls

	switch {
	case col.IsNumeric():
		num.Mean = mean
		num.Std = math.NaN()
		if num.Count > 1 {
			num.Std = math.Sqrt(m2 / float64(num.Count-1))
		}
		if num.Count == 0 {
			num.Mean, num.Min, num.Max = math.NaN(), math.NaN(), math.NaN()
		}
		p.Numeric = append(p.Numeric, num)
	case cat.Timestamp:
		p.Categorical = append(p.Categorical, cat)
	case text != nil:
		cat.Unique = len(text)
		if top := rankCounts(text, 1); len(top.Entries) > 0 {
			cat.Top, cat.Freq = top.Entries[0].Key, top.Entries[0].Count
		}
		p.Categorical = append(p.Categorical, cat)
	}
	return cp, nil
}

// headRecords formats the first rows of the file, nulls as "NaN" and
// missing timestamps as "NaT".
func headRecords(f *trips.File, cols []trips.Column) ([][]string, error) {
	rows, err := f.Head(headRows)
	if err != nil {
		return nil, err
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		rec := make([]string, len(cols))
		for _, v := range row {
			c := v.Column()
			if c < 0 || c >= len(cols) {
				continue
			}
			switch {
			case cols[c].IsTimestamp() && v.IsNull():
				rec[c] = "NaT"
			case cols[c].IsTimestamp():
				rec[c] = cols[c].Time(v).Format(time.DateTime)
			default:
				rec[c] = trips.Format(v)
			}
		}
		records[i] = rec
	}
	return records, nil
}

func locationStats(f *trips.File) (*LocationStats, error) {
	stats := &LocationStats{}
	counts := make(map[int64]int)
	seen := false

	err := f.ScanColumn(trips.ColPickupLocation, func(_ int, v parquet.Value) error {
		if v.IsNull() {
			stats.Nulls++
			return nil
		}
		id, ok := trips.Int64(v)
		if !ok {
			stats.NotInteger++
			return nil
		}
		if !seen || id < stats.Min {
			stats.Min = id
		}
		if !seen || id > stats.Max {
			stats.Max = id
		}
		seen = true
		if id <= 0 {
			stats.NonPositive++
		}
		counts[id]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Distinct = len(counts)
	stats.IDs = make([]int64, 0, len(counts))
	for id := range counts {
		stats.IDs = append(stats.IDs, id)
	}
	sort.Slice(stats.IDs, func(i, j int) bool { return stats.IDs[i] < stats.IDs[j] })

	// Unique means no repeated non-null value and no nulls, matching a column-level check
	stats.Unique = stats.Nulls == 0 && stats.NotInteger == 0 && int64(len(counts)) == f.NumRows()

	lines := make([]models.ReportLine, 0, len(stats.IDs))
	for _, id := range stats.IDs {
		lines = append(lines, models.ReportLine{Key: strconv.FormatInt(id, 10), Count: counts[id]})
	}
	stats.Top = mapreduce.Rank(lines, topFrequent)

	return stats, nil
}

func valueCounts(f *trips.File, name string) (ValueCounts, error) {
	counts := make(map[string]int)
	err := f.ScanColumn(name, func(_ int, v parquet.Value) error {
		counts[trips.Format(v)]++
		return nil
	})
	if err != nil {
		return ValueCounts{}, err
	}
	return ValueCounts{Column: name, Counts: rankCounts(counts, len(counts))}, nil
}

// rankCounts ranks a frequency map; equal counts are ordered by key.
func rankCounts(counts map[string]int, n int) models.RankedResult {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]models.ReportLine, len(keys))
	for i, k := range keys {
		lines[i] = models.ReportLine{Key: k, Count: counts[k]}
	}
	return mapreduce.Rank(lines, n)
}
