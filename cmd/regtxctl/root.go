package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/winforensics/regtxlog/runlog"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logRuns bool
	logDir  string
)

// run is the operational run log for the current invocation. Opened before
// any command executes; disabled unless --log is given.
var run *runlog.Log

var rootCmd = &cobra.Command{
	Use:   "regtxctl",
	Short: "Recover uncommitted modifications from registry transaction logs",
	Long: `regtxctl parses Windows registry transaction log files (.LOG, .LOG1,
.LOG2) and recovers modifications that were recorded but never committed to
the primary hive, for post-crash and malware forensics. Recovered key paths
are heuristic: the log format carries no reliable index, so results are
best-effort reconstructions, not authoritative registry state.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		run, err = runlog.Open(runlog.Options{Enabled: logRuns, Dir: logDir})
		if err != nil {
			return fmt.Errorf("failed to open run log: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = run.Close()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logRuns, "log", false, "Record operational events to the run log")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Run log directory (default ~/.regtxlog/logs)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
