package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nao1215/pwaffinity/internal/config"
	"github.com/nao1215/pwaffinity/internal/database"
	"github.com/nao1215/pwaffinity/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past check runs",
		Long: `History lists recorded check runs, newest first, with the reference set
they were scored against and their distance statistics.

Passwords are never recorded. Use --run to show the fingerprints and
distances of a single run.

Examples:
  # Show the last 20 runs
  pwaffinity history

  # Show every run
  pwaffinity history -n 0

  # Show the analyses of run 12
  pwaffinity history --run 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit, "Maximum number of runs to list (0 for all)")
	cmd.Flags().Int64("run", 0, "Show the analyses of this run")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	if runID > 0 {
		analyses, err := db.RunAnalyses(ctx, runID)
		if err != nil {
			return err
		}
		if len(analyses) == 0 {
			return fmt.Errorf("run %d not found", runID)
		}

		rows := make([][]string, len(analyses))
		for i, a := range analyses {
			rows[i] = []string{
				strconv.Itoa(a.Position),
				strconv.Itoa(a.Length),
				a.Fingerprint,
				report.FormatDistance(a.Distance),
			}
		}
		fmt.Fprintln(out, report.RenderTable(
			[]string{"#", "Length", "Fingerprint", "Distance"},
			rows,
			[]report.Alignment{report.AlignRight, report.AlignRight, report.AlignLeft, report.AlignRight},
		))
		return nil
	}

	runs, err := db.ListHistory(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.CentersSource,
			shortDigest(r.CentersDigest),
			strconv.Itoa(r.Summary.Count),
			report.FormatDistance(r.Summary.Min),
			report.FormatDistance(r.Summary.Mean),
		}
	}

	fmt.Fprintln(out, report.RenderTable(
		[]string{"Run", "Time", "Centers", "Digest", "Passwords", "Min", "Mean"},
		rows,
		[]report.Alignment{
			report.AlignRight, report.AlignLeft, report.AlignLeft, report.AlignLeft,
			report.AlignRight, report.AlignRight, report.AlignRight,
		},
	))
	return nil
}

// shortDigest abbreviates a hex digest for tables.
func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
