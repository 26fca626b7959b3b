package mapreduce

import (
	"fmt"
	"io"
	"sort"

	"github.com/dtnitsch/taxi-report/models"
)

// Rank returns the top n lines by count, descending.
// Ties keep input order. n larger than len(lines) returns every line;
// a negative n is treated as 0. No valid lines yields a NoData result.
func Rank(lines []models.ReportLine, n int) models.RankedResult {
	if n < 0 {
		n = 0
	}
	result := models.RankedResult{
		N:       n,
		Total:   len(lines),
		NoData:  len(lines) == 0,
		Entries: []models.RankedEntry{},
	}
	if result.NoData {
		return result
	}

	ss := make([]models.ReportLine, len(lines))
	copy(ss, lines)

	// Sort by count (descending), stable so equal counts keep report order
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Count > ss[j].Count
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}

	result.Entries = make([]models.RankedEntry, limit)
	for i := 0; i < limit; i++ {
		result.Entries[i] = models.RankedEntry{
			Rank:  i + 1,
			Key:   ss[i].Key,
			Count: ss[i].Count,
		}
	}

	return result
}

// PrintRanked writes the header and a numbered list in "1. key: count" form.
func PrintRanked(w io.Writer, result models.RankedResult, label string) error {
	if result.NoData {
		_, err := fmt.Fprintln(w, "No data processed.")
		return err
	}

	if _, err := fmt.Fprintf(w, "Top %d %s:\n", result.N, label); err != nil {
		return err
	}
	for _, e := range result.Entries {
		if _, err := fmt.Fprintf(w, "%d. %s: %d\n", e.Rank, e.Key, e.Count); err != nil {
			return err
		}
	}
	return nil
}
