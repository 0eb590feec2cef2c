package record

import (
	"strings"

	"fortio.org/safecast"
)

// Normalize converts one raw decoded JSON object into a CallRecord. It is a
// total function: missing or ill-typed fields fall back to their zero
// defaults, never to an error. Unknown keys are ignored.
func Normalize(raw map[string]any) CallRecord {
	rec := CallRecord{
		CallID:         stringField(raw, "call_id"),
		OpName:         stringField(raw, "op_name"),
		SourceFile:     stringField(raw, "source_file"),
		LineStart:      lineField(raw, "source_line_start"),
		LineEnd:        lineField(raw, "source_line_end"),
		TimestampStart: numberField(raw, "timestamp_start"),
		DurationS:      numberField(raw, "duration_s"),
	}
	if rec.DurationS < 0 {
		rec.DurationS = 0
	}

	rec.Function = functionName(raw)

	// Two historical key spellings for the trace link. Never synthesized.
	rec.TraceURL = stringField(raw, "trace_url")
	if rec.TraceURL == "" {
		rec.TraceURL = stringField(raw, "wandb_url")
	}

	if in, ok := raw["inputs"].(map[string]any); ok {
		rec.Inputs = in
	}
	rec.Output = raw["output"]
	rec.Err = normalizeError(raw["error"])
	rec.Prov = normalizeProvenance(raw)
	return rec
}

// functionName resolves the display name: an explicit "function" field wins;
// otherwise it is derived from op_name by taking the segment after the last
// "/" and stripping a trailing ":suffix"; otherwise the placeholder.
func functionName(raw map[string]any) string {
	if fn := stringField(raw, "function"); fn != "" {
		return fn
	}
	op := stringField(raw, "op_name")
	if op == "" {
		return UnknownFunction
	}
	seg := op
	if idx := strings.LastIndex(seg, "/"); idx >= 0 {
		seg = seg[idx+1:]
	}
	if idx := strings.Index(seg, ":"); idx >= 0 {
		seg = seg[:idx]
	}
	if seg == "" {
		return UnknownFunction
	}
	return seg
}

func normalizeError(v any) *CallError {
	switch err := v.(type) {
	case nil:
		return nil
	case string:
		if err == "" {
			return nil
		}
		return &CallError{Message: err, Legacy: true}
	case map[string]any:
		ce := &CallError{
			Type:      stringField(err, "type"),
			Message:   stringField(err, "message"),
			Traceback: stringField(err, "traceback"),
		}
		if ce.Type == "" && ce.Message == "" && ce.Traceback == "" {
			return nil
		}
		return ce
	default:
		return nil
	}
}

func normalizeProvenance(raw map[string]any) *Provenance {
	p := Provenance{
		RepoRoot:    stringField(raw, "git_repo_root"),
		Commit:      stringField(raw, "git_commit"),
		SnapshotSHA: stringField(raw, "git_snapshot_sha"),
	}
	if dirty, ok := raw["git_dirty"].(bool); ok {
		p.Dirty = dirty
	}
	if p.RepoRoot == "" && p.Commit == "" && p.SnapshotSHA == "" {
		return nil
	}
	return &p
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func numberField(raw map[string]any, key string) float64 {
	f, _ := raw[key].(float64)
	return f
}

// lineField reads a 1-based line number. JSON decoding yields float64;
// non-integral or out-of-range values count as absent.
func lineField(raw map[string]any, key string) int {
	f, ok := raw[key].(float64)
	if !ok {
		return 0
	}
	n, err := safecast.Convert[int](f)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
