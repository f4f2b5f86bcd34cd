package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/nao1215/pwaffinity/internal/centers"
	"github.com/nao1215/pwaffinity/internal/database"
	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"github.com/nao1215/pwaffinity/internal/report"
	"github.com/spf13/cobra"
)

// NewCentersCmd creates the centers command group.
func NewCentersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "centers",
		Short: "Build and inspect reference center files",
		Long: `Centers groups commands that work with reference center files.

A center file holds one center per line: 28 decimal values separated by ','
or ';'. Each value is the character-class code of one password position.`,
	}

	cmd.AddCommand(NewCentersBuildCmd())
	cmd.AddCommand(NewCentersInfoCmd())

	return cmd
}

// NewCentersBuildCmd creates the centers build command.
func NewCentersBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [password-list]",
		Short: "Build a center file from a password list",
		Long: `Build fingerprints every password in the list and writes one center per
distinct fingerprint. Without a list file, the embedded list of common
passwords is used. Use '-' to read the list from standard input.

Examples:
  # Install centers built from the embedded list as the default reference set
  pwaffinity centers build --install

  # Build centers from a leaked-password list
  pwaffinity centers build rockyou-top1000.txt -o cluster_centers.csv

  # Comma separated output on stdout
  pwaffinity centers build --separator , list.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCentersBuildCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Write centers to this file instead of stdout")
	cmd.Flags().Bool("install", false, "Write centers to the default reference centers path")
	cmd.Flags().String("separator", ";", "Value separator: ';' or ','")

	return cmd
}

// runCentersBuildCmd executes the centers build command.
func runCentersBuildCmd(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	install, err := cmd.Flags().GetBool("install")
	if err != nil {
		return err
	}
	sepFlag, err := cmd.Flags().GetString("separator")
	if err != nil {
		return err
	}

	sep, size := utf8.DecodeRuneInString(sepFlag)
	if size == 0 || size != len(sepFlag) {
		return fmt.Errorf("separator must be a single character, got %q", sepFlag)
	}

	if install {
		if output != "" {
			return errors.New("--install and --output cannot be used together")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		output = cfg.CentersPath
	}

	passwords := centers.CommonPasswords()
	if len(args) == 1 {
		if passwords, err = readPasswordList(args[0], cmd.InOrStdin()); err != nil {
			return err
		}
	}

	built := centers.Build(passwords)

	var buf bytes.Buffer
	if err := centers.Write(&buf, built, sep); err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := writeFile(output, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write centers: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d centers from %d passwords to %s\n", len(built), len(passwords), output)

	return nil
}

// NewCentersInfoCmd creates the centers info command.
func NewCentersInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [centers-file]",
		Short: "Describe a reference center file",
		Long: `Info loads a center file, validates it and prints its size and MD5 digest.
Without an argument, the configured reference centers are described.

The digest identifies the reference set in reports and in the history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCentersInfoCmd,
	}

	return cmd
}

// runCentersInfoCmd executes the centers info command.
func runCentersInfoCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source := cfg.CentersPath
	if len(args) == 1 {
		source = args[0]
	}

	set, err := centers.Resolve(source)
	if err != nil {
		return err
	}

	status := "valid"
	if _, err := set.Scorer(); err != nil {
		status = err.Error()
	}

	rows := [][]string{
		{"Source", set.Source},
		{"Centers", strconv.Itoa(len(set.Centers))},
		{"Width", strconv.Itoa(fingerprint.Length)},
		{"Digest", set.Digest},
		{"Status", status},
	}

	if n, ok := historyCount(cmd.Context(), cfg.DBDir, set.Digest); ok {
		rows = append(rows, []string{"Analyzed", strconv.Itoa(n)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable([]string{"Property", "Value"}, rows, nil))
	return nil
}

// historyCount returns how many passwords were scored against digest. It
// reports false when there is no history database.
func historyCount(ctx context.Context, dir, digest string) (int, bool) {
	db, err := database.Open(dir, database.Options{CreateIfNotExists: false})
	if err != nil {
		return 0, false
	}
	defer db.Close()

	n, err := db.CountByCentersDigest(ctx, digest)
	if err != nil {
		return 0, false
	}
	return n, true
}
