package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	configKey    = "config"
	emissionsKey = "emissions"
	verboseKey   = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "rxbench",
		Usage: "Measure how fast shared streams reach mounted components",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "TOML file with benchmark settings",
			},
			&cli.UintFlag{
				Name:  emissionsKey,
				Usage: "Upstream values per run, overrides the config file",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log every render and commit",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cmd.Bool(verboseKey) {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	if n := cmd.Uint(emissionsKey); n > 0 {
		cfg.Emissions = int(n)
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Shared stream fan-out")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "commits", "avg", "min", "p75", "p99", "max", "checksum"})

	for _, n := range cfg.Components {
		if err := ctx.Err(); err != nil {
			return err
		}
		tbl.AppendRow(row(bench(log, n, cfg.Emissions, false)))
		if cfg.Transitions {
			tbl.AppendRow(row(bench(log, n, cfg.Emissions, true)))
		}
	}

	tbl.Render()
	return nil
}

func row(r result) table.Row {
	return table.Row{
		r.label(),
		humanize.Comma(int64(r.commits)),
		r.timing.Time.Avg,
		r.timing.Time.Min,
		r.timing.Time.P75,
		r.timing.Time.P99,
		r.timing.Time.Max,
		fmt.Sprintf("%016x", r.checksum),
	}
}
