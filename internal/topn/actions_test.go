package topn

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/taxi-report/models"
	"github.com/dtnitsch/taxi-report/pkg/report"
	"gopkg.in/yaml.v3"
)

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local_output.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}
	return path
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func run(t *testing.T, content string, n int, format models.OutputFormat) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(&stdout, testLogger(&stderr), Options{
		Path:   writeReport(t, content),
		TopN:   n,
		Label:  models.DefaultLabel,
		Format: format,
	})
	return stdout.String(), stderr.String(), err
}

func TestRun_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		n          int
		wantOut    string
		wantWarned int
	}{
		{
			name:    "top two",
			content: "Zone A\t50\nZone B\t100\nZone C\t75\n",
			n:       2,
			wantOut: "Top 2 Busiest Pickup Locations:\n1. Zone B: 100\n2. Zone C: 75\n",
		},
		{
			name:       "malformed line skipped",
			content:    "X\t10\nbadline\nY\t20\n",
			n:          20,
			wantOut:    "Top 20 Busiest Pickup Locations:\n1. Y: 20\n2. X: 10\n",
			wantWarned: 1,
		},
		{
			name:    "empty file",
			content: "",
			n:       20,
			wantOut: "No data processed.\n",
		},
		{
			name:       "only a three-field line",
			content:    "A\t5\tExtra\n",
			n:          10,
			wantOut:    "No data processed.\n",
			wantWarned: 1,
		},
		{
			name:    "zero n",
			content: "A\t5\n",
			n:       0,
			wantOut: "Top 0 Busiest Pickup Locations:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diag, err := run(t, tt.content, tt.n, models.OutputText)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if out != tt.wantOut {
				t.Errorf("stdout =\n%q\nwant\n%q", out, tt.wantOut)
			}
			if got := strings.Count(diag, `"level":"WARN"`); got != tt.wantWarned {
				t.Errorf("warnings = %d, want %d\n%s", got, tt.wantWarned, diag)
			}
		})
	}
}

func TestRun_DiagnosticsStayOffStdout(t *testing.T) {
	out, diag, err := run(t, "X\t10\nbad\tcount\n", 5, models.OutputText)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out, "bad") || strings.Contains(out, "Skipping") {
		t.Errorf("diagnostic leaked to stdout: %q", out)
	}
	if !strings.Contains(diag, `"reason":"COUNT_NOT_INTEGER"`) {
		t.Errorf("missing rejection reason in diagnostics: %s", diag)
	}
	if !strings.Contains(diag, `"skipped":1`) || !strings.Contains(diag, `"valid":1`) {
		t.Errorf("missing parse summary in diagnostics: %s", diag)
	}
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "nope.txt")

	err := Run(&stdout, testLogger(&stderr), Options{Path: path, TopN: 20, Format: models.OutputText})
	if !errors.Is(err, report.ErrSourceNotFound) {
		t.Fatalf("Run() error = %v, want ErrSourceNotFound", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want no output", stdout.String())
	}
}

func TestRun_YAML(t *testing.T) {
	out, _, err := run(t, "a\t1\nb\t3\nc\t2\n", 2, models.OutputYAML)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got models.RankedResult
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if got.N != 2 || got.Total != 3 || len(got.Entries) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Entries[0].Key != "b" || got.Entries[1].Key != "c" {
		t.Errorf("entries = %+v", got.Entries)
	}
}

func TestRun_JSONNoData(t *testing.T) {
	out, _, err := run(t, "", 20, models.OutputJSON)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got models.RankedResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !got.NoData {
		t.Errorf("NoData = false, want true")
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPos   []string
		wantFlags map[string]string
		wantErr   bool
	}{
		{name: "positional only", args: []string{"r.txt", "10"}, wantPos: []string{"r.txt", "10"}, wantFlags: map[string]string{}},
		{name: "negative n stays positional", args: []string{"r.txt", "-1"}, wantPos: []string{"r.txt", "-1"}, wantFlags: map[string]string{}},
		{name: "trailing top", args: []string{"r.txt", "--top", "1"}, wantPos: []string{"r.txt"}, wantFlags: map[string]string{"top": "1"}},
		{name: "short alias", args: []string{"r.txt", "-n", "3"}, wantPos: []string{"r.txt"}, wantFlags: map[string]string{"top": "3"}},
		{name: "equals form", args: []string{"r.txt", "--format=yaml", "--label=Zones"}, wantPos: []string{"r.txt"}, wantFlags: map[string]string{"format": "yaml", "label": "Zones"}},
		{name: "missing value", args: []string{"r.txt", "--top"}, wantErr: true},
		{name: "unknown flag", args: []string{"r.txt", "--quiet"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, flags, err := splitArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if strings.Join(pos, "|") != strings.Join(tt.wantPos, "|") {
				t.Errorf("positional = %v, want %v", pos, tt.wantPos)
			}
			if len(flags) != len(tt.wantFlags) {
				t.Fatalf("flags = %v, want %v", flags, tt.wantFlags)
			}
			for k, v := range tt.wantFlags {
				if flags[k] != v {
					t.Errorf("flags[%s] = %q, want %q", k, flags[k], v)
				}
			}
		})
	}
}
