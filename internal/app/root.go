package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	jsonLogs   bool
	verbose    bool

	// RootCmd is the root command for uvprune
	RootCmd = &cobra.Command{
		Use:   "uvprune",
		Short: "Clean up unused uv virtual environments",
		Long: `uvprune finds uv-managed Python virtual environments on disk, scores them
against age, size and activity criteria, and removes the ones nothing uses
anymore.

Every run re-probes the filesystem: there is no index to go stale. Removal
is dry-run by default — nothing is deleted without confirmation or --yes.

Quick Start:
  1. uvprune scan                      # see what's out there
  2. uvprune clean                     # preview removals (dry run)
  3. uvprune clean --yes               # actually remove

Features:
  • Heuristic venv detection (layout, pyvenv.cfg, uv markers)
  • Age/size/activity removal criteria, conjunctive and conservative
  • --target N back-solves an age threshold for "remove about N"
  • Optional activity watcher (fsnotify) feeding usage stats
  • Run history with per-path outcomes

Examples:
  # Preview removals older than 60 days
  uvprune clean --min-age-days 60

  # Remove the ~5 oldest environments
  uvprune clean --target 5 --yes

  # Watch project roots for venv activity
  uvprune watch --daemon

  # What happened last week?
  uvprune history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("uvprune: clean up unused uv virtual environments")
			fmt.Println()
			fmt.Println("Tip: Run 'uvprune scan' to see environments on this machine.")
			fmt.Println("     Run 'uvprune clean' for a removal preview (dry run).")
			fmt.Println("     Run 'uvprune --help' for all commands.")
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.uvprune/uvprune.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/uvprune/config.yaml)")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "output logs in JSON format")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// dataDir returns ~/.uvprune, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".uvprune")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uvprune directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the database path, using the flag value or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "uvprune.db"), nil
}

// getDefaultPIDFile returns the default watch daemon PID file path.
func getDefaultPIDFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default watch daemon log file path.
func getDefaultLogFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}
