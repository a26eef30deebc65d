package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-signals",
		Usage:   "Generate trading signals and backtest them",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file. Defaults apply when omitted.",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Backtest one symbol with one strategy and print the metrics",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "symbol",
						Aliases: []string{"s"},
						Usage:   "Ticker symbol. Defaults to the first configured symbol.",
					},
					&cli.StringFlag{
						Name:  "strategy",
						Usage: fmt.Sprintf("Strategy to run (%s)", strategyNames()),
					},
				}, windowFlags()...),
				Action: runAction,
			},
			{
				Name:   "batch",
				Usage:  "Backtest every configured symbol with every configured strategy",
				Flags:  windowFlags(),
				Action: batchAction,
			},
			{
				Name:   "strategies",
				Usage:  "List the built-in strategies with their default parameters",
				Action: strategiesAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the schema to this file instead of stdout",
					},
				},
				Action: schemaAction,
			},
			{
				Name:  "serve",
				Usage: "Serve backtests over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				},
				Action: serveAction,
			},
		},
	}
}

func windowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.TimestampFlag{
			Name:  "start",
			Usage: "First bar date in `YYYY-MM-DD` format",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02"},
			},
		},
		&cli.TimestampFlag{
			Name:  "end",
			Usage: "Last bar date in `YYYY-MM-DD` format",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02"},
			},
		},
		&cli.StringFlag{
			Name:  "results",
			Usage: "Override the results folder",
		},
	}
}

func strategyNames() string {
	names := make([]string, len(types.AllStrategies))
	for i, s := range types.AllStrategies {
		names[i] = string(s)
	}

	return strings.Join(names, ", ")
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
