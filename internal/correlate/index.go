// Package correlate maps source positions to the call records whose
// recorded line ranges cover them.
package correlate

import "wvtrace/internal/record"

// Window describes how a record's 1-based source range is widened and
// shifted into 0-based editor lines. The defaults reproduce the logger's
// convention exactly: the start is pulled up two lines to catch the
// decorator placed above the instrumented call (clamped at 0), the end is
// shifted down one line to convert to 0-based coordinates (unclamped).
type Window struct {
	StartOffset int
	EndOffset   int
}

// DefaultWindow matches existing logs and must stay the default.
var DefaultWindow = Window{StartOffset: 2, EndOffset: 1}

// Span converts a record's range into 0-based editor lines. ok is false
// when the record carries no usable location.
func (w Window) Span(rec *record.CallRecord) (start, end int, ok bool) {
	if !rec.HasLocation() {
		return 0, 0, false
	}
	start = rec.LineStart - w.StartOffset
	if start < 0 {
		start = 0
	}
	return start, rec.LineEnd - w.EndOffset, true
}

// Contains reports whether the 0-based editor line falls inside the
// record's adjusted range.
func (w Window) Contains(rec *record.CallRecord, line int) bool {
	start, end, ok := w.Span(rec)
	return ok && line >= start && line <= end
}

// Index answers "which call records map to this file and line".
type Index struct {
	win Window
}

// NewIndex builds an index with the given window; a zero window means
// DefaultWindow.
func NewIndex(win Window) *Index {
	if win == (Window{}) {
		win = DefaultWindow
	}
	return &Index{win: win}
}

// Window returns the index's adjustment window.
func (ix *Index) Window() Window { return ix.win }

// Find returns every record of the run whose adjusted range covers the
// 0-based line of the given file, in the run's stored order. Re-entrant and
// overlapping calls all match; the caller treats the first match's bounds
// as the primary range.
func (ix *Index) Find(records []record.CallRecord, filePath string, line int) []record.CallRecord {
	var matches []record.CallRecord
	for i := range records {
		rec := &records[i]
		if rec.SourceFile != filePath {
			continue
		}
		if ix.win.Contains(rec, line) {
			matches = append(matches, *rec)
		}
	}
	return matches
}
