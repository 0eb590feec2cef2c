package router

import (
	"fmt"

	"wvtrace/internal/correlate"
	"wvtrace/internal/store"
)

// Reveal asks the rendering host to open a source file and scroll a 0-based
// line into view. Opening may fail; that failure is a notification, never a
// state change.
type Reveal struct {
	File string
	Line int
}

// Result describes the outcome of one dispatched event.
type Result struct {
	Rerender Views
	Reveal   *Reveal
	Note     string // non-fatal user notification, "" when silent
}

// Dispatch applies one event to the store and returns the views to
// recompute. It is the only writer of store state.
func Dispatch(st *store.Store, ix *correlate.Index, ev Event) Result {
	switch ev := ev.(type) {
	case RunAppeared:
		// Nothing to invalidate for a new entry.
		return Result{Rerender: ViewTree | ViewList}

	case RunChanged:
		st.Invalidate(ev.RunID)
		if st.ActiveRun() == ev.RunID {
			st.EnsureLoaded(ev.RunID)
			return Result{Rerender: ViewList | ViewDecorations}
		}
		return Result{}

	case RunRemoved:
		st.Invalidate(ev.RunID)
		if st.ActiveRun() == ev.RunID {
			st.SetActiveRun("")
			st.SetSelectedCall("")
			return Result{Rerender: ViewTree | ViewList | ViewDecorations}
		}
		return Result{Rerender: ViewTree | ViewList}

	case SelectCall:
		return selectCall(st, ix, ev)

	case CursorMoved:
		return cursorMoved(st, ix, ev)

	case EditorChanged:
		// Re-decorate the newly active editor from existing state.
		return Result{Rerender: ViewDecorations}

	case ClearFocus:
		st.SetHighlightEnabled(false)
		st.SetFocusedFunction("")
		st.SetSelectedCall("")
		return Result{Rerender: ViewList | ViewDecorations}

	default:
		return Result{}
	}
}

func selectCall(st *store.Store, ix *correlate.Index, ev SelectCall) Result {
	st.SetActiveRun(ev.RunID)
	rec, ok := st.FindCall(ev.RunID, ev.CallID)
	if !ok {
		return Result{
			Rerender: ViewList | ViewDetail,
			Note:     fmt.Sprintf("call %s not found in run %s", ev.CallID, ev.RunID),
		}
	}
	st.SetSelectedCall(rec.CallID)
	st.SetFocusedFunction(rec.Function)
	st.SetHighlightEnabled(true)
	st.ArmCursorSuppression()

	res := Result{Rerender: ViewList | ViewDetail}
	if start, _, ok := ix.Window().Span(&rec); ok {
		res.Reveal = &Reveal{File: rec.SourceFile, Line: start}
	}
	return res
}

func cursorMoved(st *store.Store, ix *correlate.Index, ev CursorMoved) Result {
	if st.ActiveRun() == "" {
		return Result{}
	}
	if st.ConsumeCursorSuppression() {
		// The selection's own reveal moved the cursor; swallow it.
		return Result{}
	}
	matches := ix.Find(st.ActiveRecords(), ev.File, ev.Line)
	var fn string
	if len(matches) > 0 {
		fn = matches[0].Function
	}
	if fn == st.FocusedFunction() {
		return Result{}
	}
	st.SetFocusedFunction(fn)
	return Result{Rerender: ViewList | ViewDecorations}
}
