package views

import (
	"wvtrace/internal/correlate"
	"wvtrace/internal/record"
	"wvtrace/internal/store"
)

// GutterMark anchors a function marker at the adjusted start line of that
// function's first occurrence in a file.
type GutterMark struct {
	Line     int // 0-based editor line
	Function string
}

// LineSpan is an inclusive 0-based highlight range.
type LineSpan struct {
	Start, End int
}

// Decorations is the per-file decoration set.
type Decorations struct {
	Gutter     []GutterMark
	Highlights []LineSpan
}

// Decorate computes the decorations for one open file. Output is empty
// whenever highlighting is disabled or no run is active.
//
// Highlight policy: with a focused function, only that function's records;
// otherwise with a selection resolving to at least one record in this file,
// only the selected record's ranges; otherwise every record's range.
func Decorate(st *store.Store, win correlate.Window, filePath string) Decorations {
	if !st.HighlightEnabled() || st.ActiveRun() == "" {
		return Decorations{}
	}
	records := st.ActiveRecords()

	var dec Decorations
	seen := make(map[string]bool)
	for i := range records {
		rec := &records[i]
		if rec.SourceFile != filePath {
			continue
		}
		start, _, ok := win.Span(rec)
		if !ok {
			continue
		}
		if !seen[rec.Function] {
			seen[rec.Function] = true
			dec.Gutter = append(dec.Gutter, GutterMark{Line: start, Function: rec.Function})
		}
	}

	for i := range records {
		rec := &records[i]
		if rec.SourceFile != filePath || !highlightWanted(st, rec, records, filePath) {
			continue
		}
		if start, end, ok := win.Span(rec); ok {
			dec.Highlights = append(dec.Highlights, LineSpan{Start: start, End: end})
		}
	}
	return dec
}

func highlightWanted(st *store.Store, rec *record.CallRecord, records []record.CallRecord, filePath string) bool {
	if focus := st.FocusedFunction(); focus != "" {
		return rec.Function == focus
	}
	if sel := st.SelectedCall(); sel != "" && selectionInFile(records, sel, filePath) {
		return rec.CallID == sel
	}
	return true
}

// selectionInFile reports whether the selected call resolves to a located
// record in this file. When it does not, the selection does not narrow the
// file's highlights.
func selectionInFile(records []record.CallRecord, callID, filePath string) bool {
	for i := range records {
		if records[i].CallID == callID && records[i].SourceFile == filePath && records[i].HasLocation() {
			return true
		}
	}
	return false
}
