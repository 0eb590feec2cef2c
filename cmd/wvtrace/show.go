package main

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"wvtrace/internal/record"
	"wvtrace/internal/runlog"
	"wvtrace/internal/store"
)

var (
	showFunction string
	showCallID   string
	showJSON     bool
)

func init() {
	showCmd.Flags().StringVar(&showFunction, "function", "", "only show calls of this function")
	showCmd.Flags().StringVar(&showCallID, "call", "", "only show the call with this id")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "emit normalized records as JSON")
}

var showCmd = &cobra.Command{
	Use:   "show <run-id> [runs-dir]",
	Short: "Print the calls of one run",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShow,
}

type callPayload struct {
	CallID    string         `json:"call_id"`
	Function  string         `json:"function"`
	OpName    string         `json:"op_name,omitempty"`
	TraceURL  string         `json:"trace_url,omitempty"`
	File      string         `json:"file,omitempty"`
	LineStart int            `json:"line_start,omitempty"`
	LineEnd   int            `json:"line_end,omitempty"`
	Timestamp float64        `json:"timestamp,omitempty"`
	Duration  float64        `json:"duration_s"`
	Inputs    map[string]any `json:"inputs,omitempty"`
	Output    any            `json:"output,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func runShow(cmd *cobra.Command, args []string) error {
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

	records = filterRecords(records)
	if len(records) == 0 {
		return fmt.Errorf("no calls match the given filters")
	}

	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		payloads := make([]callPayload, 0, len(records))
		for _, rec := range records {
			payloads = append(payloads, payloadFor(rec))
		}
		return enc.Encode(payloads)
	}

	out := cmd.OutOrStdout()
	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)
	dim := color.New(color.Faint)
	fmt.Fprintf(out, "%s (%s)\n", runID, runlog.Label(runID))
	for _, rec := range records {
		marker := okColor.Sprint("✓")
		if rec.Err != nil {
			marker = errColor.Sprint("✗")
		}
		fmt.Fprintf(out, "%s %s  %.4fs", marker, rec.Function, rec.DurationS)
		if rec.TimestampStart > 0 {
			fmt.Fprintf(out, "  %s", formatCallTime(rec.TimestampStart))
		}
		if rec.HasLocation() {
			fmt.Fprintf(out, "  %s", dim.Sprintf("%s:%d-%d", rec.SourceFile, rec.LineStart, rec.LineEnd))
		}
		fmt.Fprintln(out)
		if rec.Err != nil {
			fmt.Fprintf(out, "    %s\n", errColor.Sprint(rec.Err.Display()))
		}
	}
	return nil
}

func filterRecords(records []record.CallRecord) []record.CallRecord {
	if showFunction == "" && showCallID == "" {
		return records
	}
	want := norm.NFC.String(showFunction)
	kept := records[:0:0]
	for _, rec := range records {
		if showCallID != "" && rec.CallID != showCallID {
			continue
		}
		if showFunction != "" && norm.NFC.String(rec.Function) != want {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func payloadFor(rec record.CallRecord) callPayload {
	p := callPayload{
		CallID:    rec.CallID,
		Function:  rec.Function,
		OpName:    rec.OpName,
		TraceURL:  rec.TraceURL,
		File:      rec.SourceFile,
		LineStart: rec.LineStart,
		LineEnd:   rec.LineEnd,
		Timestamp: rec.TimestampStart,
		Duration:  rec.DurationS,
		Inputs:    rec.Inputs,
		Output:    rec.Output,
	}
	if rec.Err != nil {
		p.Error = rec.Err.Display()
	}
	return p
}

func formatCallTime(ts float64) string {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*1e9)).Format("2006-01-02 15:04:05")
}
