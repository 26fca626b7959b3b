// Package trips reads columns out of Parquet trip-record files.
package trips

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
)

// Column names used by the yellow-taxi trip files.
const (
	ColPickupLocation      = "PULocationID"
	ColPickupDatetime      = "tpep_pickup_datetime"
	ColCongestionSurcharge = "congestion_surcharge"
	ColAirportFee          = "airport_fee"
)

// ErrColumnNotFound is returned when a requested column is absent from the schema.
var ErrColumnNotFound = errors.New("column not found")

const valueBatch = 1024

// File is an open Parquet trip file.
type File struct {
	path string
	f    *os.File
	pf   *parquet.File
}

// Column describes one leaf column of the schema.
type Column struct {
	Name     string
	Type     string
	Kind     parquet.Kind
	Optional bool
	index    int
	timeUnit time.Duration
}

// IsNumeric reports whether values of the column are plain numbers.
// Timestamps are stored as INT64 but are not numeric here.
func (c Column) IsNumeric() bool {
	switch c.Kind {
	case parquet.Int32, parquet.Int64, parquet.Float, parquet.Double:
		return !c.IsTimestamp()
	}
	return false
}

// IsText reports whether the column holds byte strings.
func (c Column) IsText() bool {
	return c.Kind == parquet.ByteArray || c.Kind == parquet.FixedLenByteArray
}

// IsTimestamp reports whether the column carries a TIMESTAMP logical type
// over INT64 storage.
func (c Column) IsTimestamp() bool {
	return c.timeUnit > 0
}

// Open opens a Parquet file and reads its footer.
func Open(path string) (*File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close() // Close error less important than stat error
		return nil, fmt.Errorf("failed to stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read parquet footer: %w", err)
	}

	return &File{path: path, f: f, pf: pf}, nil
}

// Close releases the underlying file handle.
func (t *File) Close() error {
	return t.f.Close()
}

// Path returns the path the file was opened from.
func (t *File) Path() string {
	return t.path
}

// NumRows returns the total row count across row groups.
func (t *File) NumRows() int64 {
	return t.pf.NumRows()
}

// Columns lists the leaf columns in schema order.
func (t *File) Columns() []Column {
	schema := t.pf.Schema()
	paths := schema.Columns()
	cols := make([]Column, 0, len(paths))
	for _, path := range paths {
		leaf, ok := schema.Lookup(path...)
		if !ok {
			continue
		}
		cols = append(cols, describe(strings.Join(path, "."), leaf))
	}
	return cols
}

// Column looks up a top-level column by name.
func (t *File) Column(name string) (Column, bool) {
	leaf, ok := t.pf.Schema().Lookup(name)
	if !ok {
		return Column{}, false
	}
	return describe(name, leaf), true
}

// HasColumn reports whether the schema has the named column.
func (t *File) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// ScanColumn calls fn for every value of the named column, row group by
// row group. fn receives the row group index alongside each value.
func (t *File) ScanColumn(name string, fn func(rowGroup int, v parquet.Value) error) error {
	col, ok := t.Column(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}

	for g, rg := range t.pf.RowGroups() {
		if err := scanChunk(rg.ColumnChunks()[col.index], func(v parquet.Value) error {
			return fn(g, v)
		}); err != nil {
			return fmt.Errorf("failed to read column %s in row group %d: %w", name, g, err)
		}
	}
	return nil
}

// Head returns up to n rows from the first row group. Each value carries
// its leaf column index.
func (t *File) Head(n int) ([]parquet.Row, error) {
	groups := t.pf.RowGroups()
	if n <= 0 || len(groups) == 0 {
		return nil, nil
	}

	rows := groups[0].Rows()
	defer rows.Close()

	buf := make([]parquet.Row, n)
	read := 0
	for read < n {
		k, err := rows.ReadRows(buf[read:])
		read += k
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read head rows: %w", err)
		}
		if k == 0 {
			break
		}
	}

	head := make([]parquet.Row, read)
	for i := range head {
		head[i] = buf[i].Clone()
	}
	return head, nil
}

// NumRowGroups returns how many row groups the file has.
func (t *File) NumRowGroups() int {
	return len(t.pf.RowGroups())
}

func scanChunk(chunk parquet.ColumnChunk, fn func(parquet.Value) error) error {
	pages := chunk.Pages()
	defer pages.Close()

	buf := make([]parquet.Value, valueBatch)
	for {
		page, err := pages.ReadPage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		values := page.Values()
		for {
			n, err := values.ReadValues(buf)
			for _, v := range buf[:n] {
				if ferr := fn(v); ferr != nil {
					parquet.Release(page)
					return ferr
				}
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				parquet.Release(page)
				return err
			}
		}
		parquet.Release(page)
	}
}

func describe(name string, leaf parquet.LeafColumn) Column {
	col := Column{
		Name:     name,
		Type:     leaf.Node.Type().String(),
		Kind:     leaf.Node.Type().Kind(),
		Optional: leaf.Node.Optional(),
		index:    leaf.ColumnIndex,
	}

	if leaf.Node.Type().Kind() != parquet.Int64 {
		return col
	}
	lt := leaf.Node.Type().LogicalType()
	if lt == nil || lt.Timestamp == nil {
		return col
	}
	switch {
	case lt.Timestamp.Unit.Millis != nil:
		col.timeUnit = time.Millisecond
	case lt.Timestamp.Unit.Micros != nil:
		col.timeUnit = time.Microsecond
	case lt.Timestamp.Unit.Nanos != nil:
		col.timeUnit = time.Nanosecond
	}
	return col
}

// Time converts a non-null INT64 timestamp value of col to UTC time.
func (c Column) Time(v parquet.Value) time.Time {
	return time.Unix(0, v.Int64()*int64(c.timeUnit)).UTC()
}

// Int64 widens an integer value. ok is false for nulls, for non-numeric
// kinds and for floating point values that are not whole numbers.
func Int64(v parquet.Value) (id int64, ok bool) {
	if v.IsNull() {
		return 0, false
	}
	switch v.Kind() {
	case parquet.Int32:
		return int64(v.Int32()), true
	case parquet.Int64:
		return v.Int64(), true
	case parquet.Float:
		return wholeFloat(float64(v.Float()))
	case parquet.Double:
		return wholeFloat(v.Double())
	}
	return 0, false
}

// Float64 widens a numeric value. ok is false for nulls and non-numeric kinds.
func Float64(v parquet.Value) (f float64, ok bool) {
	if v.IsNull() {
		return 0, false
	}
	switch v.Kind() {
	case parquet.Int32:
		return float64(v.Int32()), true
	case parquet.Int64:
		return float64(v.Int64()), true
	case parquet.Float:
		return float64(v.Float()), true
	case parquet.Double:
		return v.Double(), true
	}
	return 0, false
}

func wholeFloat(f float64) (int64, bool) {
	if math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Format renders a value the way the profiler prints value counts.
func Format(v parquet.Value) string {
	if v.IsNull() {
		return "NaN"
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	}
	return v.String()
}
