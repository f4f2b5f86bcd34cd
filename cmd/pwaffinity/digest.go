package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/pwaffinity/internal/md5sum"
	"github.com/spf13/cobra"
)

// NewDigestCmd creates the digest command.
func NewDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest [text...]",
		Short: "Print MD5 digests of text, files or standard input",
		Long: `Digest prints the MD5 digest of each argument, taken as exact bytes
without a trailing newline, and of each --file. With neither, standard
input is digested.

The output format matches md5sum: the hex digest, two spaces and the name.

Examples:
  # Digest a string
  pwaffinity digest abc

  # Digest reference center files
  pwaffinity digest -f cluster_centers.csv -f other.csv

  # Digest standard input
  printf 'abc' | pwaffinity digest`,
		Args: cobra.ArbitraryArgs,
		RunE: runDigestCmd,
	}

	cmd.Flags().StringSliceP("file", "f", nil, "File to digest (repeatable, '-' for stdin)")

	return cmd
}

// runDigestCmd executes the digest command.
func runDigestCmd(cmd *cobra.Command, args []string) error {
	files, err := cmd.Flags().GetStringSlice("file")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, text := range args {
		fmt.Fprintf(out, "%s  %s\n", md5sum.SumString(text), text)
	}

	if len(args) == 0 && len(files) == 0 {
		files = []string{stdinName}
	}

	for _, name := range files {
		sum, err := digestFile(name, cmd.InOrStdin())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", hex.EncodeToString(sum[:]), name)
	}

	return nil
}

// digestFile digests the named file, or stdin for "-".
func digestFile(name string, stdin io.Reader) ([md5sum.Size]byte, error) {
	if name == stdinName {
		return md5sum.SumReader(stdin)
	}

	f, err := os.Open(name) //nolint:gosec // user-provided path is intentional
	if err != nil {
		return [md5sum.Size]byte{}, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	sum, err := md5sum.SumReader(f)
	if err != nil {
		return sum, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return sum, nil
}
