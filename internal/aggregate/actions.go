package aggregate

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/dtnitsch/taxi-report/internal/common"
	"github.com/dtnitsch/taxi-report/pkg/pickups"
	"github.com/dtnitsch/taxi-report/pkg/storage"
	"github.com/dtnitsch/taxi-report/pkg/trips"
	"github.com/dtnitsch/taxi-report/pkg/zones"
	"github.com/urfave/cli/v2"
)

// Options controls one aggregation run. An empty OutPath writes to stdout.
type Options struct {
	TripsPath string
	ZonesPath string
	OutPath   string
}

func AggregateAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg := common.Config(c)

	opts := Options{
		TripsPath: common.StringOr(c, "trips", cfg.TripsPath),
		ZonesPath: common.StringOr(c, "zones", cfg.ZonesPath),
		OutPath:   common.StringOr(c, "out", cfg.ReportPath),
	}
	if opts.TripsPath == "" || opts.ZonesPath == "" {
		return cli.Exit("Usage: taxi-report aggregate --trips <parquet> --zones <lookup_csv> [--out <report>]", 1)
	}

	if err := Run(c.App.Writer, logger, opts); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %s", err), 1)
	}
	return nil
}

// Run counts pickups per location, labels them from the zone lookup and
// writes the key/count report.
func Run(stdout io.Writer, logger *slog.Logger, opts Options) error {
	lookup, err := zones.LoadFile(opts.ZonesPath)
	if err != nil {
		return err
	}
	for _, row := range lookup.Skipped {
		logger.Warn("Skipping malformed line in lookup table", "line", row.Line, "raw", row.Raw, "reason", row.Reason)
	}
	if lookup.Len() == 0 {
		logger.Warn("zone lookup data is empty after loading", "path", opts.ZonesPath)
	}
	logger.Info("loaded zone lookup", "path", opts.ZonesPath, "zones", lookup.Len(), "skipped", len(lookup.Skipped))

	f, err := trips.Open(opts.TripsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	counts, err := pickups.Count(f)
	if err != nil {
		return err
	}

	unknown := 0
	for id := range counts.ByLocation {
		if _, ok := lookup.Get(id); !ok {
			unknown++
		}
	}
	unused := 0
	for _, id := range lookup.IDs() {
		if _, ok := counts.ByLocation[id]; !ok {
			unused++
		}
	}
	logger.Info("counted pickups",
		"path", opts.TripsPath,
		"row_groups", counts.RowGroups,
		"locations", len(counts.ByLocation),
		"null", counts.Nulls,
		"not_integer", counts.NotInteger,
		"non_positive", counts.NonPositive,
		"not_in_lookup", unknown,
		"lookup_without_pickups", unused,
	)

	if opts.OutPath == "" {
		return pickups.WriteReport(stdout, counts.ByLocation, lookup)
	}

	var buf bytes.Buffer
	if err := pickups.WriteReport(&buf, counts.ByLocation, lookup); err != nil {
		return err
	}

	s := &storage.Storage{}
	if s.HasFile(opts.OutPath) {
		logger.Warn("overwriting existing report", "path", opts.OutPath)
	}
	if err := s.SaveFile(opts.OutPath, buf.Bytes()); err != nil {
		return err
	}
	if stats, err := s.GetFileStats(opts.OutPath); err == nil {
		logger.Info("wrote report", "path", opts.OutPath, "size_bytes", stats.SizeBytes)
	}
	return nil
}
