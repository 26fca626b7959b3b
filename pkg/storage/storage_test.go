package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile_CreatesParentDirs(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nyctaxi_output", "part-r-00000")

	if err := s.SaveFile(path, []byte("A\t1\n")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "A\t1\n" {
		t.Errorf("content = %q", data)
	}

	if !s.HasFile(path) {
		t.Error("HasFile() = false after SaveFile")
	}
	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != 4 {
		t.Errorf("SizeBytes = %d, want 4", stats.SizeBytes)
	}
}

func TestHasFile_Missing(t *testing.T) {
	s := &Storage{}
	if s.HasFile(filepath.Join(t.TempDir(), "nope")) {
		t.Error("HasFile() = true for missing file")
	}
	if _, err := s.GetFileStats(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("GetFileStats() error = nil for missing file")
	}
}
