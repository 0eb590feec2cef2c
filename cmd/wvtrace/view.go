package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wvtrace/internal/correlate"
	"wvtrace/internal/router"
	"wvtrace/internal/store"
	"wvtrace/internal/ui"
	"wvtrace/internal/watch"
)

var viewNoWatch bool

func init() {
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "do not follow live changes to the runs directory")
}

var viewCmd = &cobra.Command{
	Use:   "view [runs-dir]",
	Short: "Open the interactive trace viewer",
	Long: `Open a full-screen viewer over the recorded runs. The left pane lists
runs and their calls, the right pane shows the correlated source file with
call markers, and the bottom pane shows details for the selected call.
New runs and appended records show up live unless --no-watch is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRuns(args)
	if err != nil {
		return err
	}

	st := store.New(store.Options{Dir: cfg.RunsDir, Ext: cfg.Ext})
	st.SetHighlightEnabled(cfg.Highlight)
	ix := correlate.NewIndex(cfg.Window)

	var events <-chan router.Event
	if !viewNoWatch {
		w, err := watch.New(cfg.RunsDir, cfg.Ext)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wvtrace: live updates disabled: %v\n", err)
		} else {
			defer w.Close()
			events = w.Events()
		}
	}

	model := ui.New(st, ix, events, time.Duration(cfg.BaseDelay)*time.Millisecond)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
