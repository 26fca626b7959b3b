package models

import (
	"fmt"
	"strings"
)

// OutputFormat selects how ranked results are written to stdout.
type OutputFormat string

const (
	OutputText OutputFormat = "text" // Numbered list with a header
	OutputYAML OutputFormat = "yaml"
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat resolves a --format value. Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputYAML:
		return OutputYAML, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (use: text, yaml, or json)", s)
}
