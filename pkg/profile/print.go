package profile

import (
	"fmt"
	"io"
	"time"

	"github.com/dtnitsch/taxi-report/models"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const headRows = 5

// PrintTrips writes the trip-file report.
func PrintTrips(w io.Writer, p *TripProfile) {
	fmt.Fprintf(w, "\n--- Exploring Parquet File: %s ---\n", p.Path)

	fmt.Fprintln(w, "\n1. Basic Information:")
	fmt.Fprintf(w, "Shape (rows, columns): (%d, %d)\n", p.Rows, len(p.Columns))
	fmt.Fprintln(w, "\nFirst 5 rows:")
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	printFrame(w, names, p.Head)
	fmt.Fprintln(w, "\nColumn Data Types and Non-Null Counts:")
	fmt.Fprintf(w, " %2s  %-25s %-16s %s\n", "#", "Column", "Non-Null Count", "Type")
	for i, c := range p.Columns {
		fmt.Fprintf(w, " %2d  %-25s %-16s %s optional=%t\n", i, c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Type, c.Optional)
	}

	fmt.Fprintln(w, "\n2. Null Value Analysis:")
	printNulls(w, nullRows(p.NullColumns(), p.Rows))

	fmt.Fprintln(w, "\n3. Descriptive Statistics (Numerical Columns):")
	if len(p.Numeric) == 0 {
		fmt.Fprintln(w, "No numerical columns.")
	} else {
		fmt.Fprintf(w, "%-25s %12s %14s %14s %14s %14s\n", "", "count", "mean", "std", "min", "max")
		for _, n := range p.Numeric {
			fmt.Fprintf(w, "%-25s %12d %14.6f %14.6f %14.6f %14.6f\n", n.Column, n.Count, n.Mean, n.Std, n.Min, n.Max)
		}
	}

	fmt.Fprintln(w, "\n4. Descriptive Statistics (Object/Categorical Columns):")
	if len(p.Categorical) == 0 {
		fmt.Fprintln(w, "No text or datetime columns.")
	}
	for _, c := range p.Categorical {
		if c.Timestamp {
			fmt.Fprintf(w, "%-25s count=%d first=%s last=%s\n", c.Column, c.Count, c.First.Format(time.DateTime), c.Last.Format(time.DateTime))
			continue
		}
		fmt.Fprintf(w, "%-25s count=%d unique=%d top=%s freq=%d\n", c.Column, c.Count, c.Unique, c.Top, c.Freq)
	}

	fmt.Fprintln(w, "\n5. Specific Columns of Interest for MapReduce (PULocationID):")
	if p.Location == nil {
		fmt.Fprintln(w, "PULocationID column not found!")
	} else {
		l := p.Location
		fmt.Fprintln(w, "\n--- PULocationID Analysis ---")
		fmt.Fprintf(w, "Is PULocationID unique? %t\n", l.Unique)
		fmt.Fprintf(w, "Number of unique PULocationIDs: %d\n", l.Distinct)
		fmt.Fprintf(w, "Nulls in PULocationID: %d\n", l.Nulls)
		if l.NotInteger > 0 {
			fmt.Fprintf(w, "Non-integer PULocationIDs: %d\n", l.NotInteger)
		}
		fmt.Fprintf(w, "Min PULocationID: %d\n", l.Min)
		fmt.Fprintf(w, "Max PULocationID: %d\n", l.Max)
		fmt.Fprintln(w, "\nTop 10 most frequent PULocationIDs:")
		printCounts(w, l.Top)
		fmt.Fprintf(w, "Count of PULocationIDs <= 0: %d\n", l.NonPositive)
	}

	fmt.Fprintln(w, "\n6. Datetime Column Range (tpep_pickup_datetime):")
	switch {
	case p.Pickup == nil:
		fmt.Fprintln(w, "tpep_pickup_datetime column not found!")
	case !p.Pickup.IsTimestamp:
		fmt.Fprintf(w, "tpep_pickup_datetime is not a datetime type (%s). Consider conversion.\n", p.Pickup.Type)
	default:
		fmt.Fprintf(w, "Min pickup datetime: %s\n", p.Pickup.Min.Format(time.DateTime))
		fmt.Fprintf(w, "Max pickup datetime: %s\n", p.Pickup.Max.Format(time.DateTime))
	}

	fmt.Fprintln(w, "\n7. Check 'congestion_surcharge' and 'airport_fee':")
	for _, vc := range p.Values {
		fmt.Fprintf(w, "\nValue counts for '%s':\n", vc.Column)
		printCounts(w, vc.Counts)
	}
}

// PrintLookup writes the lookup-file report.
func PrintLookup(w io.Writer, p *LookupProfile) {
	rows, cols := p.Frame.Dims()
	fmt.Fprintf(w, "\n--- Exploring CSV Lookup File: %s ---\n", p.Path)

	fmt.Fprintln(w, "\n1. Basic Information:")
	fmt.Fprintf(w, "Shape (rows, columns): (%d, %d)\n", rows, cols)
	fmt.Fprintln(w, "\nFirst 5 rows:")
	if rows == 0 {
		printFrame(w, p.Frame.Names(), nil)
	} else {
		fmt.Fprintln(w, p.Head(headRows).String())
	}
	fmt.Fprintln(w, "\nColumn Data Types and Non-Null Counts:")
	fmt.Fprintf(w, " %2s  %-15s %-16s %s\n", "#", "Column", "Non-Null Count", "Dtype")
	for i, name := range p.Frame.Names() {
		nonNull := fmt.Sprintf("%d non-null", rows-p.Nulls[name])
		fmt.Fprintf(w, " %2d  %-15s %-16s %s\n", i, name, nonNull, p.Frame.Types()[i])
	}

	fmt.Fprintln(w, "\n2. Null Value Analysis:")
	var nulls []ColumnProfile
	for _, name := range p.Frame.Names() {
		if n := p.Nulls[name]; n > 0 {
			nulls = append(nulls, ColumnProfile{Name: name, Nulls: int64(n)})
		}
	}
	printNulls(w, nullRows(withNulls(nulls), int64(rows)))

	fmt.Fprintln(w, "\n3. Specific Columns of Interest (LocationID, Borough, Zone):")
	if p.Location == nil {
		fmt.Fprintln(w, "LocationID column not found in lookup table!")
	} else {
		l := p.Location
		fmt.Fprintln(w, "\n--- LocationID Analysis (Lookup Table) ---")
		fmt.Fprintf(w, "Is LocationID unique? %t\n", l.Unique)
		if l.Duplicates.Nrow() > 0 {
			fmt.Fprintf(w, "DUPLICATE LocationIDs found:\n%s\n", l.Duplicates.String())
		}
		fmt.Fprintf(w, "Number of unique LocationIDs: %d\n", l.Distinct)
		fmt.Fprintf(w, "Nulls in LocationID: %d\n", l.Nulls)
		if l.Numeric {
			fmt.Fprintf(w, "Min LocationID: %g\n", l.Min)
			fmt.Fprintf(w, "Max LocationID: %g\n", l.Max)
		} else {
			fmt.Fprintln(w, "WARNING: LocationID in lookup table is not numeric! This will cause issues with joins.")
		}
	}

	if p.Boroughs != nil {
		fmt.Fprintln(w, "\nBorough value counts:")
		printCounts(w, *p.Boroughs)
	}
	if p.Zones != nil {
		fmt.Fprintln(w, "\nZone value counts (Top 10):")
		printCounts(w, *p.Zones)
		fmt.Fprintf(w, "Number of unique Zones: %d\n", p.DistinctZone)
	}
}

// PrintComparison writes the id cross-check.
func PrintComparison(w io.Writer, c *IDComparison) {
	fmt.Fprintln(w, "\n--- Comparing PULocationIDs from Trip Data with LocationIDs in Lookup Table ---")
	fmt.Fprintf(w, "Number of unique PULocationIDs in trip data: %d\n", c.TripDistinct)
	fmt.Fprintf(w, "Number of unique LocationIDs in lookup table: %d\n", c.LookupDistinct)

	if c.MissingFromLookup > 0 {
		fmt.Fprintf(w, "\nWARNING: %d PULocationIDs found in trip data but NOT in lookup table.\n", c.MissingFromLookup)
		fmt.Fprintf(w, "Examples: %v\n", c.MissingFromLookupIDs)
	} else {
		fmt.Fprintln(w, "\nAll PULocationIDs from trip data are present in the lookup table's LocationIDs (based on unique values).")
	}

	if c.UnusedLookupIDs > 0 {
		fmt.Fprintf(w, "\nINFO: %d LocationIDs found in lookup table but NOT as PULocationIDs in this trip data sample.\n", c.UnusedLookupIDs)
		fmt.Fprintf(w, "Examples: %v\n", c.UnusedLookupIDExamples)
	} else {
		fmt.Fprintln(w, "\nAll LocationIDs from lookup table are used as PULocationIDs in this trip data sample (based on unique values).")
	}
}

// printFrame renders string records as a DataFrame table.
func printFrame(w io.Writer, names []string, records [][]string) {
	if len(records) == 0 {
		fmt.Fprintf(w, "Empty DataFrame\nColumns: %v\n", names)
		return
	}
	df := dataframe.LoadRecords(append([][]string{names}, records...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		fmt.Fprintf(w, "could not render rows: %v\n", df.Err)
		return
	}
	fmt.Fprintln(w, df.String())
}

type nullRow struct {
	name    string
	count   int64
	percent float64
}

func nullRows(cols []ColumnProfile, total int64) []nullRow {
	rows := make([]nullRow, len(cols))
	for i, c := range cols {
		rows[i] = nullRow{name: c.Name, count: c.Nulls}
		if total > 0 {
			rows[i].percent = float64(c.Nulls) / float64(total) * 100
		}
	}
	return rows
}

func printNulls(w io.Writer, rows []nullRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No null values.")
		return
	}
	fmt.Fprintf(w, "%-25s %12s %20s\n", "", "Null Count", "Null Percentage (%)")
	for _, r := range rows {
		fmt.Fprintf(w, "%-25s %12d %20.6f\n", r.name, r.count, r.percent)
	}
}

func printCounts(w io.Writer, r models.RankedResult) {
	for _, e := range r.Entries {
		fmt.Fprintf(w, "%-30s %d\n", e.Key, e.Count)
	}
}
