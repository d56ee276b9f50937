package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/comps/internal/cli"
	"github.com/Veraticus/comps/internal/engine"
	"github.com/Veraticus/comps/internal/service"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	var (
		quarterFlag string
		year        int
		only        []string
		format      string
		outDir      string
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write comparison reports for a quarter or a full year",
		Long: `Ingest the data file, then write one report per rule-file entry comparing
the selected quarter (or the full year) against the same months a year earlier.

Reports that fail are listed at the end; the others are still written.`,
		Example: `  comps generate --data sold.csv --rules lakes.rule --quarter 2 --year 2024
  comps generate --data sold.csv --rules lakes.rule --quarter full --year 2023 --report "Geneva Lake"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			quarter, err := engine.ParseQuarter(quarterFlag)
			if err != nil {
				return err
			}
			if year < 1 {
				return fmt.Errorf("invalid year %d", year)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			writer, err := newWriter(cfg, outDir, format)
			if err != nil {
				return err
			}

			sess := newSession(cfg, writer)
			if _, err := loadRules(sess, false); err != nil {
				return err
			}
			if _, err := loadRecords(ctx, sess, !noProgress); err != nil {
				return err
			}

			summary, err := sess.GenerateAll(ctx, quarter, year, only)
			if summary != nil {
				printGenerationSummary(cmd, quarter, year, summary)
			}
			if err != nil {
				return err
			}
			return summary.Err()
		},
	}

	cmd.Flags().StringVarP(&quarterFlag, "quarter", "q", "", "quarter 1-4, or 5/full for the whole year")
	cmd.Flags().IntVarP(&year, "year", "y", time.Now().Year(), "report year")
	cmd.Flags().StringSliceVarP(&only, "report", "r", nil, "only generate the named reports (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv or xlsx (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the ingest progress bar")
	_ = cmd.MarkFlagRequired("quarter")

	return cmd
}

func printGenerationSummary(cmd *cobra.Command, quarter engine.Quarter, year int, summary *service.GenerationSummary) {
	var b strings.Builder

	for _, o := range summary.Written {
		fmt.Fprintf(&b, "%s %s → %s\n", cli.SuccessIcon, o.Name, o.Path)
		if n := len(o.Issues); n > 0 {
			fmt.Fprintf(&b, "  %s\n", cli.WarningStyle.Render(fmt.Sprintf("%d records skipped (unparsable price)", n)))
		}
		for _, w := range o.Warnings {
			fmt.Fprintf(&b, "  %s\n", cli.WarningStyle.Render(w.String()))
		}
	}
	for _, f := range summary.Failed {
		fmt.Fprintf(&b, "%s %s: %v\n", cli.ErrorIcon, f.Name, f.Err)
	}

	title := fmt.Sprintf("%s %s %d: %d written, %d failed",
		cli.ChartIcon, quarter, year, len(summary.Written), len(summary.Failed))

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(title, strings.TrimRight(b.String(), "\n"))) //nolint:forbidigo // User-facing output
}
