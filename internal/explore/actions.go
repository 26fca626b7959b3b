package explore

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dtnitsch/taxi-report/internal/common"
	"github.com/dtnitsch/taxi-report/pkg/profile"
	"github.com/dtnitsch/taxi-report/pkg/trips"
	"github.com/urfave/cli/v2"
)

// Options names the two files to explore.
type Options struct {
	TripsPath string
	ZonesPath string
}

func ProfileAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg := common.Config(c)

	opts := Options{
		TripsPath: common.StringOr(c, "trips", cfg.TripsPath),
		ZonesPath: common.StringOr(c, "zones", cfg.ZonesPath),
	}
	if opts.TripsPath == "" || opts.ZonesPath == "" {
		return cli.Exit("Usage: taxi-report profile --trips <parquet> --zones <lookup_csv>", 1)
	}

	return Run(c.App.Writer, logger, opts)
}

// Run explores both files. A file that fails to load is reported and the
// other is still profiled; the id comparison is skipped in that case.
func Run(w io.Writer, logger *slog.Logger, opts Options) error {
	tripProfile := profileTrips(logger, opts.TripsPath)
	if tripProfile == nil {
		fmt.Fprintf(w, "\nError: Parquet file could not be read at %s\n", opts.TripsPath)
	} else {
		profile.PrintTrips(w, tripProfile)
	}

	lookupProfile, err := profile.ProfileLookupFile(opts.ZonesPath)
	if err != nil {
		logger.Error("Error reading CSV file", "path", opts.ZonesPath, "error", err)
		fmt.Fprintf(w, "\nError: CSV file could not be read at %s\n", opts.ZonesPath)
	} else {
		profile.PrintLookup(w, lookupProfile)
	}

	switch {
	case tripProfile == nil || lookupProfile == nil:
		fmt.Fprintln(w, "\nSkipping ID comparison due to earlier data loading errors.")
	case tripProfile.Location == nil || lookupProfile.Location == nil:
		fmt.Fprintln(w, "\nRequired ID columns not found in one or both files.")
	default:
		cmp, err := profile.CompareIDs(tripProfile.Location.IDs, lookupProfile.Location.IDs)
		if err != nil {
			return fmt.Errorf("failed to compare location ids: %w", err)
		}
		profile.PrintComparison(w, cmp)
	}

	fmt.Fprintln(w, "\n--- Exploration Complete ---")
	return nil
}

func profileTrips(logger *slog.Logger, path string) *profile.TripProfile {
	f, err := trips.Open(path)
	if err != nil {
		logger.Error("Error reading Parquet file", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	p, err := profile.ProfileTrips(f)
	if err != nil {
		logger.Error("Error profiling Parquet file", "path", path, "error", err)
		return nil
	}
	return p
}
