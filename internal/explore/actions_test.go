package explore

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type tripRow struct {
	PULocationID *int64 `parquet:"PULocationID,optional"`
}

func ptr[T any](v T) *T { return &v }

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	tripsPath := filepath.Join(dir, "trips.parquet")
	rows := []tripRow{{PULocationID: ptr(int64(1))}, {PULocationID: ptr(int64(7))}}
	if err := parquet.WriteFile(tripsPath, rows); err != nil {
		t.Fatalf("failed to write parquet fixture: %v", err)
	}

	zonesPath := filepath.Join(dir, "zones.csv")
	if err := os.WriteFile(zonesPath, []byte("LocationID,Borough,Zone\n1,EWR,Newark Airport\n2,Queens,Jamaica Bay\n"), 0644); err != nil {
		t.Fatalf("failed to write lookup fixture: %v", err)
	}
	return tripsPath, zonesPath
}

func TestRun(t *testing.T) {
	tripsPath, zonesPath := writeFixtures(t)

	var out bytes.Buffer
	if err := Run(&out, discard(), Options{TripsPath: tripsPath, ZonesPath: zonesPath}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{
		"--- Exploring Parquet File: " + tripsPath + " ---",
		"--- Exploring CSV Lookup File: " + zonesPath + " ---",
		"WARNING: 1 PULocationIDs found in trip data but NOT in lookup table.",
		"Examples: [7]",
		"INFO: 1 LocationIDs found in lookup table but NOT as PULocationIDs",
		"--- Exploration Complete ---",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRun_MissingTripFileSkipsComparison(t *testing.T) {
	_, zonesPath := writeFixtures(t)

	var out bytes.Buffer
	err := Run(&out, discard(), Options{TripsPath: filepath.Join(t.TempDir(), "none.parquet"), ZonesPath: zonesPath})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Skipping ID comparison due to earlier data loading errors.") {
		t.Errorf("output missing skip notice:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "--- Exploring CSV Lookup File:") {
		t.Error("lookup file should still be profiled")
	}
}
