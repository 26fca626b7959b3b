// Package report reads tab-separated key/count reports.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dtnitsch/taxi-report/models"
)

// maxLineBytes bounds a single report line.
const maxLineBytes = 1024 * 1024

var (
	// ErrSourceNotFound means the report path does not exist.
	ErrSourceNotFound = errors.New("SOURCE_NOT_FOUND")
	// ErrSourceUnreadable means the report exists but could not be opened or read.
	ErrSourceUnreadable = errors.New("SOURCE_UNREADABLE")
)

// ParseLine parses one raw line into a ReportLine.
// When ok is false the returned RejectReason says why.
func ParseLine(raw string) (line models.ReportLine, reason models.RejectReason, ok bool) {
	parts := strings.Split(strings.TrimSpace(raw), "\t")
	if len(parts) != 2 {
		return models.ReportLine{}, models.RejectNotTwoFields, false
	}

	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.ReportLine{}, models.RejectCountNotInteger, false
	}

	return models.ReportLine{Key: parts[0], Count: count}, "", true
}

// Parse folds over every line in r. Malformed lines are collected as
// rejections and never stop the pass; only a read failure returns an error.
func Parse(r io.Reader) (*models.ParseResult, error) {
	result := &models.ParseResult{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		line, reason, ok := ParseLine(raw)
		if !ok {
			result.Rejected = append(result.Rejected, models.Rejection{
				Line:   lineNo,
				Raw:    strings.TrimSpace(raw),
				Reason: reason,
			})
			continue
		}
		result.Lines = append(result.Lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrSourceUnreadable, lineNo+1, err)
	}

	return result, nil
}

// ParseFile opens path, parses it, and closes it.
func ParseFile(path string) (*models.ParseResult, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	return Parse(f)
}
