package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wvtrace/internal/runlog"
	"wvtrace/internal/snapshot"
	"wvtrace/internal/store"
)

var (
	restoreCall    string
	restoreCurrent bool
	restoreYes     bool
)

func init() {
	restoreCmd.Flags().StringVar(&restoreCall, "call", "", "restore the snapshot of this call instead of the run's first")
	restoreCmd.Flags().BoolVar(&restoreCurrent, "current", false, "return to the branch you were on before a restore")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "do not ask for confirmation")
}

var restoreCmd = &cobra.Command{
	Use:   "restore <run-id> [runs-dir]",
	Short: "Check out the code state a run was recorded against",
	Long: `Check out the commit recorded in a run's provenance, stashing any local
changes first. Use --current afterwards to get back to your branch and your
stashed changes.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	client := snapshot.NewClient(".")

	if restoreCurrent {
		if err := client.RestoreCurrent(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "restored working state")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("expected a run id (or --current)")
	}
	runID := args[0]
	cfg, err := resolveRuns(args[1:])
	if err != nil {
		return err
	}
	st := store.New(store.Options{Dir: cfg.RunsDir, Ext: cfg.Ext})
	records := runlog.Load(st.RunPath(runID))
	if len(records) == 0 {
		return fmt.Errorf("run %q has no records (looked in %s)", runID, cfg.RunsDir)
	}

	commit := ""
	for _, rec := range records {
		if restoreCall != "" && rec.CallID != restoreCall {
			continue
		}
		if rec.Prov != nil {
			commit = rec.Prov.SnapshotCommit()
			break
		}
		if restoreCall != "" {
			break
		}
	}
	if commit == "" {
		return snapshot.ErrNoSnapshot
	}

	if !restoreYes && !confirm(fmt.Sprintf("stash local changes and check out %s", commit)) {
		return fmt.Errorf("aborted")
	}
	if err := client.Restore(cmd.Context(), commit); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "checked out snapshot %s for run %s\nrun `wvtrace restore --current` to get back\n", commit, runID)
	return nil
}
