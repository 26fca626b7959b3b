package topn

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dtnitsch/taxi-report/internal/common"
	"github.com/dtnitsch/taxi-report/models"
	"github.com/dtnitsch/taxi-report/pkg/mapreduce"
	"github.com/dtnitsch/taxi-report/pkg/report"
	"github.com/urfave/cli/v2"
)

const usage = "Usage: taxi-report topn <path_to_report_file> [top_n] [--top N] [--label L] [--format text|yaml|json]"

// Options controls a single top-N run.
type Options struct {
	Path   string
	TopN   int
	Label  string
	Format models.OutputFormat
}

// trailingFlags maps flag spellings accepted after the path to the flag
// they set. The CLI parser stops at the first positional argument.
var trailingFlags = map[string]string{
	"top":    "top",
	"n":      "top",
	"label":  "label",
	"format": "format",
}

// splitArgs separates positional arguments from --flag value pairs that
// follow them.
func splitArgs(args []string) (positional []string, flags map[string]string, err error) {
	flags = make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimLeft(arg, "-")
		if name == arg || name == "" || isNumber(arg) {
			positional = append(positional, arg)
			continue
		}

		value, hasValue := "", false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}
		flag, ok := trailingFlags[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown flag %s", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("flag %s needs a value", arg)
			}
			i++
			value = args[i]
		}
		flags[flag] = value
	}
	return positional, flags, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// TopNAction resolves arguments and runs the extractor.
// Positional top_n beats --top, which beats the config file.
func TopNAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg := common.Config(c)

	args, trailing, err := splitArgs(c.Args().Slice())
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %s\n%s", err, usage), 1)
	}
	if len(args) > 2 {
		return cli.Exit(usage, 1)
	}

	opts := Options{
		TopN:  cfg.TopN,
		Label: common.StringOr(c, "label", cfg.Label),
	}
	if len(args) > 0 {
		opts.Path = args[0]
	}
	if opts.Path == "" {
		opts.Path = cfg.ReportPath
	}
	if opts.Path == "" {
		return cli.Exit(usage, 1)
	}
	if label, ok := trailing["label"]; ok {
		opts.Label = label
	}

	if c.IsSet("top") {
		opts.TopN = c.Int("top")
	}
	if v, ok := trailing["top"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: --top must be an integer, got %q\n%s", v, usage), 1)
		}
		opts.TopN = n
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: top_n must be an integer, got %q\n%s", args[1], usage), 1)
		}
		opts.TopN = n
	}
	if opts.TopN < 0 {
		return cli.Exit(fmt.Sprintf("Error: top_n must not be negative, got %d", opts.TopN), 1)
	}

	formatName := common.StringOr(c, "format", cfg.Format)
	if v, ok := trailing["format"]; ok {
		formatName = v
	}
	format, err := models.ParseOutputFormat(formatName)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %s", err), 1)
	}
	opts.Format = format

	if err := Run(c.App.Writer, logger, opts); err != nil {
		if errors.Is(err, report.ErrSourceNotFound) {
			return cli.Exit(fmt.Sprintf("Error: File not found at %s", opts.Path), 1)
		}
		if errors.Is(err, report.ErrSourceUnreadable) {
			return cli.Exit(fmt.Sprintf("Error: could not read %s: %s", opts.Path, err), 1)
		}
		return err
	}
	return nil
}

// Run parses the report, logs every skipped line on logger, and writes the
// ranking to w. Nothing is written to w when the report cannot be read.
func Run(w io.Writer, logger *slog.Logger, opts Options) error {
	parsed, err := report.ParseFile(opts.Path)
	if err != nil {
		logger.Error("failed to read report", "path", opts.Path, "error", err)
		return err
	}

	for _, rej := range parsed.Rejected {
		logger.Warn(rej.Message(), "line", rej.Line, "raw", rej.Raw, "reason", string(rej.Reason))
	}
	logger.Info("parsed report", "path", opts.Path, "valid", len(parsed.Lines), "skipped", len(parsed.Rejected))

	result := mapreduce.Rank(parsed.Lines, opts.TopN)

	if opts.Format == models.OutputText || opts.Format == "" {
		return mapreduce.PrintRanked(w, result, opts.Label)
	}
	return common.WriteStructured(w, opts.Format, result)
}
