// Package router maps external stimuli (file-watch notifications, cursor
// movement, editor focus changes and explicit commands) onto trace store
// transitions, and reports which views each transition dirtied. Handlers
// run to completion on one logical thread; no event interleaves another.
package router

// Event is the tagged union of inbound stimuli.
type Event interface {
	isEvent()
}

// RunAppeared signals a new log file in the runs directory.
type RunAppeared struct {
	RunID string
}

// RunChanged signals an append or rewrite of an existing log file.
type RunChanged struct {
	RunID string
}

// RunRemoved signals a deleted log file.
type RunRemoved struct {
	RunID string
}

// SelectCall is the explicit "focus this call" action.
type SelectCall struct {
	RunID  string
	CallID string
}

// CursorMoved signals a new cursor position, as a 0-based editor line.
type CursorMoved struct {
	File string
	Line int
}

// EditorChanged signals that a different file became the active editor.
type EditorChanged struct {
	File string
}

// ClearFocus is the explicit "clear focus" action.
type ClearFocus struct{}

func (RunAppeared) isEvent()   {}
func (RunChanged) isEvent()    {}
func (RunRemoved) isEvent()    {}
func (SelectCall) isEvent()    {}
func (CursorMoved) isEvent()   {}
func (EditorChanged) isEvent() {}
func (ClearFocus) isEvent()    {}

// Views is the bitset of projections a transition dirtied.
type Views uint8

const (
	ViewTree Views = 1 << iota
	ViewList
	ViewDetail
	ViewDecorations
)

// Has reports whether v includes the given view.
func (v Views) Has(view Views) bool { return v&view != 0 }
