package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/winforensics/regtxlog/txlog"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <log-file>",
		Short: "Show facts about a transaction log without scanning it",
		Long: `The info command checks that a transaction log is readable and reports
its derived hive name, size, and base block fields when one is present at
the start of the file.

Example:
  regtxctl info SOFTWARE.LOG1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	return cmd
}

func runInfo(path string) error {
	if err := txlog.LoadPath(path); err != nil {
		return fmt.Errorf("cannot load log: %w", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out := map[string]interface{}{
		"log":  path,
		"hive": txlog.HiveNameFromPath(path),
		"size": st.Size(),
	}
	bb, bbErr := txlog.ReadBaseBlock(data)
	if bbErr == nil {
		out["baseBlock"] = map[string]interface{}{
			"primarySequence":   bb.PrimarySequence,
			"secondarySequence": bb.SecondarySequence,
			"version":           fmt.Sprintf("%d.%d", bb.MajorVersion, bb.MinorVersion),
			"hiveFileName":      bb.HiveFileName,
			"dirty":             bb.Dirty(),
		}
	}
	run.Logger().Info("info", "log", path, "size", st.Size(), "baseBlock", bbErr == nil)

	if jsonOut {
		return printJSON(out)
	}

	printInfo("Log file:  %s\n", path)
	printInfo("Hive name: %s\n", txlog.HiveNameFromPath(path))
	printInfo("Size:      %d bytes\n", st.Size())
	if bbErr != nil {
		printInfo("Base block: none detected\n")
		return nil
	}
	printInfo("Base block:\n")
	printInfo("  sequence:  %d/%d\n", bb.PrimarySequence, bb.SecondarySequence)
	printInfo("  version:   %d.%d\n", bb.MajorVersion, bb.MinorVersion)
	printInfo("  hive file: %s\n", bb.HiveFileName)
	if bb.Dirty() {
		printInfo("  state:     dirty (uncommitted transaction pending)\n")
	} else {
		printInfo("  state:     clean\n")
	}
	return nil
}
