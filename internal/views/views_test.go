package views

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"wvtrace/internal/correlate"
	"wvtrace/internal/record"
	"wvtrace/internal/runlog"
	"wvtrace/internal/store"
)

func newTestStore(t *testing.T, runs map[string]string) *store.Store {
	t.Helper()
	dir := t.TempDir()
	for id, content := range runs {
		if err := os.WriteFile(filepath.Join(dir, id+runlog.Ext), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return store.New(store.Options{Dir: dir})
}

const sampleRun = `{"call_id":"c1","function":"ask","timestamp_start":1,"duration_s":0.5,"source_file":"/src/m.py","source_line_start":10,"source_line_end":12}
{"call_id":"c2","function":"summarize","timestamp_start":2,"source_file":"/src/m.py","source_line_start":20,"source_line_end":25,"error":{"type":"ValueError","message":"boom"}}
{"call_id":"c3","function":"ask","timestamp_start":3,"source_file":"/src/other.py","source_line_start":5,"source_line_end":7}
`

func TestTreeLazyExpansion(t *testing.T) {
	st := newTestStore(t, map[string]string{
		"20240115_143022": sampleRun,
		"20240116_090000": "",
	})

	nodes := Tree(st, nil)
	if len(nodes) != 2 {
		t.Fatalf("got %d roots, want 2", len(nodes))
	}
	if nodes[0].RunID != "20240116_090000" {
		t.Errorf("roots not newest first: %q", nodes[0].RunID)
	}
	if nodes[1].Label != "2024-01-15 14:30:22" {
		t.Errorf("run label = %q", nodes[1].Label)
	}
	if st.Loaded("20240115_143022") {
		t.Error("collapsed run must not be loaded")
	}

	nodes = Tree(st, map[string]bool{"20240115_143022": true})
	run := nodes[1]
	if !run.Expanded || len(run.Children) != 3 {
		t.Fatalf("expanded run has %d children", len(run.Children))
	}
	if run.Children[0].Kind != KindCall || run.Children[0].Call.CallID != "c1" {
		t.Errorf("first child = %+v", run.Children[0])
	}
	if run.Children[1].Status != StatusError {
		t.Errorf("failed call status = %v", run.Children[1].Status)
	}
}

func TestTreeSelectedOverridesError(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetSelectedCall("c2")
	nodes := Tree(st, map[string]bool{"r": true})
	if got := nodes[0].Children[1].Status; got != StatusSelected {
		t.Errorf("status = %v, want selected", got)
	}
	if got := nodes[0].Children[1].Status.Marker(); got != "▶" {
		t.Errorf("marker = %q", got)
	}
}

func TestFlatListFocusFilter(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetActiveRun("r")

	if items := FlatList(st); len(items) != 3 {
		t.Fatalf("unfiltered list has %d items", len(items))
	}

	st.SetFocusedFunction("ask")
	items := FlatList(st)
	if len(items) != 2 {
		t.Fatalf("filtered list has %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.Call.Function != "ask" {
			t.Errorf("leaked %q through the focus filter", it.Call.Function)
		}
	}
}

func TestFlatListNoActiveRun(t *testing.T) {
	st := newTestStore(t, nil)
	if items := FlatList(st); len(items) != 0 {
		t.Errorf("no active run must list empty, got %d", len(items))
	}
}

func TestSourceFiles(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetActiveRun("r")
	files := SourceFiles(st)
	if len(files) != 2 || files[0] != "/src/m.py" || files[1] != "/src/other.py" {
		t.Errorf("SourceFiles = %v", files)
	}
}

func TestDetailOutline(t *testing.T) {
	rec := record.CallRecord{
		Function:       "ask",
		TimestampStart: 1705329022,
		DurationS:      0.5,
		Inputs: map[string]any{
			"prompt": "hi",
			"opts":   map[string]any{"model": "m1", "tags": []any{"a", "b"}},
		},
		Output: "Paris",
	}
	root := Detail(&rec)
	if root.Label != "ask" || len(root.Children) != 4 {
		t.Fatalf("root = %+v", root)
	}
	if root.Children[0].Label != "duration" || root.Children[0].Value != "0.5000s" {
		t.Errorf("duration node = %+v", root.Children[0])
	}

	inputs := root.Children[2]
	if inputs.Label != "inputs" || len(inputs.Children) != 2 {
		t.Fatalf("inputs node = %+v", inputs)
	}
	// Keys are sorted, so "opts" precedes "prompt".
	opts := inputs.Children[0]
	if opts.Label != "opts" || len(opts.Children) != 2 {
		t.Fatalf("opts node = %+v", opts)
	}
	tags := opts.Children[1]
	if tags.Label != "tags" || tags.Children[0].Label != "[0]" || tags.Children[0].Value != `"a"` {
		t.Errorf("tags node = %+v", tags)
	}
	if inputs.Children[1].Value != `"hi"` {
		t.Errorf("prompt value = %q", inputs.Children[1].Value)
	}

	out := root.Children[3]
	if out.Label != "output" || out.Value != `"Paris"` {
		t.Errorf("output node = %+v", out)
	}
}

func TestDetailErrorSectionOmitsTraceback(t *testing.T) {
	rec := record.CallRecord{
		Function: "broken",
		Err:      &record.CallError{Type: "ValueError", Message: "boom", Traceback: "long tb"},
	}
	root := Detail(&rec)
	errNode := root.Children[len(root.Children)-1]
	if errNode.Label != "error" || len(errNode.Children) != 2 {
		t.Fatalf("error node = %+v", errNode)
	}
	for _, child := range errNode.Children {
		if strings.Contains(child.Value, "long tb") {
			t.Error("detail outline must not include the traceback")
		}
	}
}

func TestDecorateDisabledOrInactive(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetActiveRun("r")
	st.SetHighlightEnabled(false)
	if dec := Decorate(st, correlate.DefaultWindow, "/src/m.py"); len(dec.Gutter)+len(dec.Highlights) != 0 {
		t.Errorf("disabled highlighting must decorate nothing: %+v", dec)
	}

	st.SetHighlightEnabled(true)
	st.SetActiveRun("")
	if dec := Decorate(st, correlate.DefaultWindow, "/src/m.py"); len(dec.Gutter)+len(dec.Highlights) != 0 {
		t.Errorf("no active run must decorate nothing: %+v", dec)
	}
}

func TestDecorateAllRecords(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetActiveRun("r")
	dec := Decorate(st, correlate.DefaultWindow, "/src/m.py")
	if len(dec.Gutter) != 2 {
		t.Errorf("gutter marks = %+v, want one per distinct function", dec.Gutter)
	}
	if dec.Gutter[0].Function != "ask" || dec.Gutter[0].Line != 8 {
		t.Errorf("gutter[0] = %+v", dec.Gutter[0])
	}
	want := []LineSpan{{8, 11}, {18, 24}}
	if len(dec.Highlights) != 2 || dec.Highlights[0] != want[0] || dec.Highlights[1] != want[1] {
		t.Errorf("highlights = %+v, want %+v", dec.Highlights, want)
	}
}

func TestDecorateFocusPolicy(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetActiveRun("r")
	st.SetFocusedFunction("summarize")
	dec := Decorate(st, correlate.DefaultWindow, "/src/m.py")
	if len(dec.Highlights) != 1 || dec.Highlights[0] != (LineSpan{18, 24}) {
		t.Errorf("focused highlights = %+v", dec.Highlights)
	}
}

func TestDecorateSelectionPolicy(t *testing.T) {
	st := newTestStore(t, map[string]string{"r": sampleRun})
	st.SetActiveRun("r")
	st.SetSelectedCall("c1")
	dec := Decorate(st, correlate.DefaultWindow, "/src/m.py")
	if len(dec.Highlights) != 1 || dec.Highlights[0] != (LineSpan{8, 11}) {
		t.Errorf("selection highlights = %+v", dec.Highlights)
	}

	// c3 lives in another file: the selection does not narrow this one.
	st.SetSelectedCall("c3")
	dec = Decorate(st, correlate.DefaultWindow, "/src/m.py")
	if len(dec.Highlights) != 2 {
		t.Errorf("out-of-file selection must not narrow highlights: %+v", dec.Highlights)
	}
}

func TestHoverNoMatch(t *testing.T) {
	ix := correlate.NewIndex(correlate.DefaultWindow)
	if got := Hover(nil, ix, "/src/m.py", 3); got != "" {
		t.Errorf("hover on empty run = %q", got)
	}
}

func TestHoverContent(t *testing.T) {
	ix := correlate.NewIndex(correlate.DefaultWindow)
	records := []record.CallRecord{
		{
			CallID: "c1", Function: "ask", DurationS: 0.5,
			SourceFile: "/src/m.py", LineStart: 10, LineEnd: 12,
			Inputs:   map[string]any{"prompt": "hi"},
			Output:   "Paris",
			TraceURL: "https://x/t/1",
		},
		{
			CallID: "c2", Function: "ask", DurationS: 0.1,
			SourceFile: "/src/m.py", LineStart: 10, LineEnd: 12,
			Err: &record.CallError{Type: "ValueError", Message: "boom"},
		},
	}
	md := Hover(records, ix, "/src/m.py", 9)
	if !strings.Contains(md, "**ask** — 0.5000s") {
		t.Errorf("missing header: %q", md)
	}
	if !strings.Contains(md, `"prompt":"hi"`) || !strings.Contains(md, `"Paris"`) {
		t.Errorf("missing payloads: %q", md)
	}
	if !strings.Contains(md, "[view trace](https://x/t/1)") {
		t.Errorf("missing trace link: %q", md)
	}
	if !strings.Contains(md, "\n\n---\n\n") {
		t.Error("blocks must be separated")
	}
	if !strings.Contains(md, "error: ValueError: boom") {
		t.Errorf("second block must show the error: %q", md)
	}
	if strings.Count(md, "output:") != 1 {
		t.Error("failed call must not show an output section")
	}
}

func TestTruncatePayload(t *testing.T) {
	short := strings.Repeat("a", 1000)
	if got := TruncatePayload(short); got != short {
		t.Error("1000 characters must pass through untouched")
	}
	long := strings.Repeat("б", 1500)
	got := TruncatePayload(long)
	if !strings.HasSuffix(got, "…") {
		t.Error("truncated text must end with an ellipsis")
	}
	if n := utf8.RuneCountInString(got); n != 1001 {
		t.Errorf("truncated payload is %d characters, want 1001", n)
	}
}
