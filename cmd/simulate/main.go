package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/config"
	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/utils"
)

const (
	flagCatalog   = "catalog"
	flagContainer = "container"
	flagOpens     = "opens"
	flagSeed      = "seed"
	flagFormat    = "format"
	flagVerbose   = "verbose"
	flagOutput    = "output"

	formatText = "text"
	formatJSON = "json"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "simulate",
		Usage: "open a container many times and compare drawn tiers with the disclosed odds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagCatalog,
				Usage:   "catalog file",
				Value:   config.DefaultCatalogPath,
				EnvVars: []string{"CATALOG_PATH"},
			},
			&cli.IntFlag{
				Name:     flagContainer,
				Aliases:  []string{"c"},
				Usage:    "container item id",
				Required: true,
			},
			&cli.IntFlag{
				Name:    flagOpens,
				Aliases: []string{"n"},
				Usage:   "number of unlocks",
				Value:   10_000,
			},
			&cli.Uint64Flag{
				Name:    flagSeed,
				Usage:   "random seed, 0 seeds from the clock",
				EnvVars: []string{"RANDOM_SEED"},
			},
			&cli.StringFlag{
				Name:  flagFormat,
				Usage: "output format (text or json)",
				Value: formatText,
			},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "also write the JSON report to this file",
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: "log every unlock",
			},
		},
		Writer: out,
		Action: func(c *cli.Context) error {
			return run(c.Context, c.App.Writer, c)
		},
	}
}

func run(ctx context.Context, out io.Writer, c *cli.Context) error {
	format := c.String(flagFormat)
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q", format)
	}

	level := logger.LogLevelWarn
	if c.Bool(flagVerbose) {
		level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(logger.CLIConfig("simulate", level), os.Stderr)

	cat, _, err := catalog.LoadFile(ctx, catalog.NewLoader(), c.String(flagCatalog))
	if err != nil {
		return err
	}

	unlocker, err := lootbox.NewService(cat, attribute.NewChecker(cat),
		lootbox.WithRandomSource(utils.NewRandomSource(c.Uint64(flagSeed))))
	if err != nil {
		return err
	}

	report, err := lootbox.Simulate(ctx, unlocker, c.Int(flagContainer), c.Int(flagOpens))
	if err != nil {
		return err
	}
	slog.Debug("Simulation finished", "container_id", report.ContainerID, "opens", report.Opens)

	if path := c.String(flagOutput); path != "" {
		if err := utils.WriteJSONFile(path, report); err != nil {
			return err
		}
	}

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeText(out, cat, report)
}

// writeText prints the tier table followed by the most drawn items
func writeText(out io.Writer, cat catalog.Lookup, report *lootbox.SimulationReport) error {
	name := fmt.Sprintf("%d", report.ContainerID)
	if container, err := cat.Get(report.ContainerID); err == nil {
		name = container.Name
	}
	fmt.Fprintf(out, "%s: %d opens\n\n", name, report.Opens)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tEXPECTED\tOBSERVED\tCOUNT")
	for _, t := range report.Tiers {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%d\n", t.Tier, t.Expected, t.Observed, t.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nmax deviation %.4f, stattrak %d, mean wear %.4f\n\n",
		report.MaxDeviation, report.StatTrak, report.MeanWear)

	ids := make([]int, 0, len(report.Items))
	for id := range report.Items {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b int) int {
		if report.Items[a] != report.Items[b] {
			return report.Items[b] - report.Items[a]
		}
		return a - b
	})

	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tNAME\tCOUNT")
	for _, id := range ids {
		itemName := ""
		if item, err := cat.Get(id); err == nil {
			itemName = item.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\n", id, itemName, report.Items[id])
	}
	return tw.Flush()
}
