package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wvtrace/internal/runlog"
	"wvtrace/internal/store"
)

var runsShowStats bool

func init() {
	runsCmd.Flags().BoolVar(&runsShowStats, "stats", false, "load every run and report call and failure counts")
}

var runsCmd = &cobra.Command{
	Use:   "runs [runs-dir]",
	Short: "List recorded runs, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRuns,
}

type runStats struct {
	calls    int
	failures int
	duration float64
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRuns(args)
	if err != nil {
		return err
	}
	st := store.New(store.Options{Dir: cfg.RunsDir, Ext: cfg.Ext})
	ids := st.ListRunIDs()
	if len(ids) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no runs in %s\n", cfg.RunsDir)
		return nil
	}

	var stats []runStats
	if runsShowStats {
		stats = make([]runStats, len(ids))
		g := new(errgroup.Group)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, id := range ids {
			i := i
			path := st.RunPath(id)
			g.Go(func() error {
				records := runlog.Load(path)
				s := runStats{calls: len(records)}
				for _, rec := range records {
					if rec.Err != nil {
						s.failures++
					}
					s.duration += rec.DurationS
				}
				stats[i] = s
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	idColor := color.New(color.FgCyan)
	failColor := color.New(color.FgRed)
	out := cmd.OutOrStdout()
	for i, id := range ids {
		fmt.Fprintf(out, "%s  %s", idColor.Sprint(id), runlog.Label(id))
		if runsShowStats {
			s := stats[i]
			fmt.Fprintf(out, "  %d calls, %.4fs", s.calls, s.duration)
			if s.failures > 0 {
				fmt.Fprintf(out, ", %s", failColor.Sprintf("%d failed", s.failures))
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
