package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/taxi-report/internal/aggregate"
	"github.com/dtnitsch/taxi-report/internal/common"
	"github.com/dtnitsch/taxi-report/internal/explore"
	"github.com/dtnitsch/taxi-report/internal/topn"
	"github.com/dtnitsch/taxi-report/models"
	"github.com/dtnitsch/taxi-report/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	tripsFlag := &cli.StringFlag{
		Name:  "trips",
		Usage: "Parquet trip-record file",
	}
	zonesFlag := &cli.StringFlag{
		Name:  "zones",
		Usage: "taxi zone lookup CSV (LocationID,Borough,Zone,...)",
	}

	return &cli.App{
		Name:  "taxi-report",
		Usage: "Offline exploration tools for NYC taxi trip data",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors to stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: fmt.Sprintf("YAML config file (default %s when present)", models.DefaultConfigPath),
			},
		},
		Before: common.LoadConfig,
		Commands: []*cli.Command{
			{
				Name:      "topn",
				Usage:     "Print the top N entries of a tab-separated key/count report",
				ArgsUsage: "<path_to_report_file> [top_n] [--top N]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "number of entries to print",
						Value:   models.DefaultTopN,
					},
					&cli.StringFlag{
						Name:  "label",
						Usage: "what the keys are, used in the header",
						Value: models.DefaultLabel,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format: text, yaml, or json",
						Value: string(models.OutputText),
					},
				},
				Action: topn.TopNAction,
			},
			{
				Name:  "aggregate",
				Usage: "Count trips per pickup zone and write a key/count report",
				Flags: []cli.Flag{
					tripsFlag,
					zonesFlag,
					&cli.StringFlag{
						Name:  "out",
						Usage: "report path (default stdout)",
					},
				},
				Action: aggregate.AggregateAction,
			},
			{
				Name:   "profile",
				Usage:  "Print summary statistics for the trip and lookup files and cross-check location ids",
				Flags:  []cli.Flag{tripsFlag, zonesFlag},
				Action: explore.ProfileAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a command cheat sheet",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}
