package models

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxi-report.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_MissingOptional(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TopN != DefaultTopN || cfg.Label != DefaultLabel || cfg.Format != "text" {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"), true); err == nil {
		t.Error("LoadConfig() error = nil for missing required file")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "top_n: 10\nformat: yaml\nreport_path: out/part-r-00000\n")

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TopN != 10 {
		t.Errorf("TopN = %d, want 10", cfg.TopN)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", cfg.Format)
	}
	if cfg.ReportPath != "out/part-r-00000" {
		t.Errorf("ReportPath = %q", cfg.ReportPath)
	}
	if cfg.Label != DefaultLabel {
		t.Errorf("Label = %q, want default", cfg.Label)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative top_n", content: "top_n: -1\n"},
		{name: "unknown format", content: "format: xml\n"},
		{name: "bad yaml", content: "top_n: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content), true); err == nil {
				t.Error("LoadConfig() error = nil, want error")
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"TEXT", OutputText, false},
		{" yaml ", OutputYAML, false},
		{"json", OutputJSON, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
