package main

import (
	"fmt"
	"os"

	"github.com/nao1215/pwaffinity/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pwaffinity.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwaffinity",
		Short: "Score passwords by their structural distance to known passwords",
		Long: `pwaffinity fingerprints passwords by character class and measures the
minimal Euclidean distance to a set of reference centers.

A distance of 0 means the password has exactly the structure of a known
password. Reference centers are read from a plain text file; build one from
a password list with 'pwaffinity centers build'.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pwaffinity in current or home directory)")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewDigestCmd())
	cmd.AddCommand(NewCentersCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfig returns the defaults overlaid with the configuration file.
// If the user explicitly named a config file, it must exist. Otherwise a
// missing file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFlag
	cfg.Verbose = getVerboseFlag(cmd)

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	return cfg, nil
}
