package models

// ReportLine is one valid record of a key/count report.
type ReportLine struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// RejectReason classifies why a report line produced no ReportLine.
type RejectReason string

const (
	RejectNotTwoFields    RejectReason = "NOT_TWO_FIELDS"
	RejectCountNotInteger RejectReason = "COUNT_NOT_INTEGER"
)

// Rejection records a skipped line. Line is 1-indexed.
type Rejection struct {
	Line   int          `json:"line" yaml:"line"`
	Raw    string       `json:"raw" yaml:"raw"`
	Reason RejectReason `json:"reason" yaml:"reason"`
}

// Message is the human-readable diagnostic for the rejection.
func (r Rejection) Message() string {
	switch r.Reason {
	case RejectNotTwoFields:
		return "Skipping malformed line (not 2 parts)"
	case RejectCountNotInteger:
		return "Skipping malformed line (count not int)"
	}
	return "Skipping malformed line"
}

// ParseResult is everything a single pass over a report produced.
type ParseResult struct {
	Lines    []ReportLine
	Rejected []Rejection
}

// RankedEntry is one line of ranked output. Rank is 1-indexed.
type RankedEntry struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// RankedResult holds the top-N entries by count.
// NoData distinguishes "nothing parsed" from a successful empty ranking (N = 0).
type RankedResult struct {
	N       int           `json:"n" yaml:"n"`
	Total   int           `json:"total" yaml:"total"`
	NoData  bool          `json:"no_data" yaml:"no_data"`
	Entries []RankedEntry `json:"entries" yaml:"entries"`
}
