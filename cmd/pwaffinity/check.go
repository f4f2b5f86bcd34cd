package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/pwaffinity/internal/centers"
	"github.com/nao1215/pwaffinity/internal/checker"
	"github.com/nao1215/pwaffinity/internal/config"
	"github.com/nao1215/pwaffinity/internal/database"
	pwlog "github.com/nao1215/pwaffinity/internal/log"
	"github.com/nao1215/pwaffinity/internal/model"
	"github.com/nao1215/pwaffinity/internal/pipeline"
	"github.com/nao1215/pwaffinity/internal/report"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [password...]",
		Short: "Score passwords against the reference centers",
		Long: `Check fingerprints each password by character class and prints its minimal
Euclidean distance to the reference centers.

Passwords are taken from the arguments and the --list file. With neither,
they are read line by line from piped standard input, or prompted for
without echo when standard input is a terminal.

Passwords are masked in reports unless --reveal is given, and they are
never written to the history database.

Examples:
  # Prompt for a password
  pwaffinity check

  # Score several passwords
  pwaffinity check 'P@ssw0rd!' 'correct horse battery staple'

  # Score a list with 8 workers and also write a Markdown report
  pwaffinity check --list passwords.txt --batch 8 --markdown -o report.md

  # Score against the centers built from the embedded common list
  pwaffinity check --centers builtin:common-passwords hunter2`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("centers", "C", "",
		"Reference centers file (default: $XDG_CONFIG_HOME/pwaffinity/"+centers.DefaultFileName+")")
	cmd.Flags().StringP("list", "l", "",
		"File with one password per line ('-' for stdin)")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of passwords analyzed in parallel")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Also write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("quiet", "q", false,
		"Do not print progress or, with --output, the terminal table")

	cmd.Flags().Bool("reveal", false, "Show passwords in the report instead of masking them")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCheckConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCheck(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// newLogger creates the secure logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	format, err := pwlog.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return pwlog.New(cmd.ErrOrStderr(), cfg.Verbose, format), nil
}

// buildCheckConfig creates a Config from the config file and command flags.
// Flags only override file values when they were set explicitly.
func buildCheckConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("centers") {
		if cfg.CentersPath, err = flags.GetString("centers"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("batch") {
		if cfg.Concurrency, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}

	jsonReport, err := flags.GetBool("json")
	if err != nil {
		return nil, err
	}
	markdownReport, err := flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}
	// An explicit format flag replaces the config file's default format.
	if jsonReport || markdownReport {
		cfg.JSONReport = jsonReport
		cfg.MarkdownReport = markdownReport
	}

	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	if cfg.Quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}

	reveal, err := flags.GetBool("reveal")
	if err != nil {
		return nil, err
	}
	cfg.Reveal = cfg.Reveal || reveal

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveToDB = false
	}

	if cfg.ListFile, err = flags.GetString("list"); err != nil {
		return nil, err
	}

	cfg.Passwords, err = collectPasswords(args, cfg.ListFile, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Batches of at least progressThreshold passwords print progress every
// progressStep analyses.
const (
	progressThreshold = 100
	progressStep      = 100
)

// progressPrinter returns a progress function writing to w.
func progressPrinter(w io.Writer) pipeline.ProgressFunc {
	return func(done, total int) {
		if done%progressStep == 0 || done == total {
			fmt.Fprintf(w, "[%d/%d] passwords analyzed\n", done, total)
		}
	}
}

// runCheck scores cfg.Passwords, writes the report and records the run.
// Progress goes to stderr.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	set, err := centers.Resolve(cfg.CentersPath)
	if err != nil {
		if errors.Is(err, centers.ErrNotFound) {
			return fmt.Errorf("%w (create one with 'pwaffinity centers build --install')", err)
		}
		return err
	}

	scorer, err := set.Scorer()
	if err != nil {
		return err
	}

	logger.Info("reference centers loaded",
		"source", set.Source,
		"centers", scorer.Len(),
		"digest", set.Digest,
	)

	opts := []pipeline.BatchOption{
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	}
	if !cfg.Quiet && len(cfg.Passwords) >= progressThreshold {
		opts = append(opts, pipeline.WithProgress(progressPrinter(stderr)))
	}

	bp := pipeline.NewBatchProcessor(
		checker.New(scorer, checker.WithLogger(logger), checker.WithWorkers(cfg.Concurrency)),
		opts...,
	)

	analyses, err := bp.ProcessBatch(ctx, cfg.Passwords, cfg.Reveal)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rep := model.NewReport(set.Source, set.Digest, scorer.Len())
	rep.Analyses = analyses

	if err := outputReport(cfg, rep, stdout); err != nil {
		return err
	}

	if err := saveReport(ctx, cfg, rep, logger); err != nil {
		logger.Error("failed to save history", "error", err)
	}

	return nil
}

// outputReport writes the report to stdout. With a report file the
// requested format goes to the file and stdout gets the text table, unless
// cfg.Quiet is set.
func outputReport(cfg *config.Config, rep *model.Report, stdout io.Writer) error {
	if cfg.ReportFile == "" {
		if _, err := newReportWriter(cfg, stdout).Write(rep); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	if err := ensureParentDir(cfg.ReportFile); err != nil {
		return err
	}

	// Reports may reveal passwords, so only the owner can read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writers := []report.Writer{newReportWriter(cfg, f)}
	if !cfg.Quiet {
		writers = append(writers, report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose)))
	}

	if _, err := report.NewMultiWriter(writers...).Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter returns the writer for the configured report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// saveReport records the run in the history database when enabled.
func saveReport(ctx context.Context, cfg *config.Config, rep *model.Report, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveReport(ctx, rep)
	if err != nil {
		return err
	}

	total, err := db.CountByCentersDigest(ctx, rep.CentersDigest)
	if err != nil {
		return err
	}

	logger.Info("run saved to history",
		"run", id,
		"db", db.Path(),
		"analyzed_with_centers", total,
	)
	return nil
}
