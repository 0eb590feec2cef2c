package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wvtrace/internal/correlate"
	"wvtrace/internal/store"
	"wvtrace/internal/views"
)

var atRun string

func init() {
	atCmd.Flags().StringVar(&atRun, "run", "", "run id to query (default: most recent)")
}

var atCmd = &cobra.Command{
	Use:   "at <file>:<line> [runs-dir]",
	Short: "Show the calls recorded around a source line",
	Long: `Resolve a 1-based source position against the correlation window and
print the hover text the viewer would show there.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAt,
}

func runAt(cmd *cobra.Command, args []string) error {
	file, line, err := parseFileLine(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveRuns(args[1:])
	if err != nil {
		return err
	}

	st := store.New(store.Options{Dir: cfg.RunsDir, Ext: cfg.Ext})
	ids := st.ListRunIDs()
	if len(ids) == 0 {
		return fmt.Errorf("no runs in %s", cfg.RunsDir)
	}
	if atRun != "" {
		st.SetActiveRun(atRun)
	}

	ix := correlate.NewIndex(cfg.Window)
	// Editors report 0-based lines to the viewer; the CLI takes 1-based.
	text := views.Hover(st.ActiveRecords(), ix, file, line-1)
	if text == "" {
		return fmt.Errorf("no recorded calls at %s:%d in run %s", file, line, st.ActiveRun())
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
