// Package views contains the read-only projections of the trace store: the
// run/call tree, the flat call list, the detail outline, editor decorations
// and hover content. Every projection is a pure function of the store plus
// its own inputs; none keeps state between calls.
package views

import "wvtrace/internal/record"

// Status is the marker shown next to a call.
type Status uint8

const (
	StatusSuccess Status = iota + 1
	StatusError
	StatusSelected // the call equals the current selection
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Marker returns the one-glyph indicator for lists and trees.
func (s Status) Marker() string {
	switch s {
	case StatusError:
		return "✗"
	case StatusSelected:
		return "▶"
	default:
		return "✓"
	}
}

// callStatus classifies one record against the current selection. Selection
// overrides the error/success indicator.
func callStatus(rec *record.CallRecord, selectedID string) Status {
	if selectedID != "" && rec.CallID == selectedID {
		return StatusSelected
	}
	if rec.Err != nil {
		return StatusError
	}
	return StatusSuccess
}

// NodeKind discriminates tree nodes.
type NodeKind uint8

const (
	KindRun NodeKind = iota + 1
	KindCall
)

// TreeNode is one row of the run/call tree. Run nodes carry children only
// when expanded; call nodes are leaves.
type TreeNode struct {
	Kind     NodeKind
	RunID    string
	Label    string
	Expanded bool
	Children []TreeNode

	// Call leaves only.
	Call   *record.CallRecord
	Status Status
}

// ListItem is one row of the flat call list.
type ListItem struct {
	Call   record.CallRecord
	Status Status
}

// DetailNode is one row of the detail outline. Scalar fields carry a Value;
// composite fields carry Children and expand recursively.
type DetailNode struct {
	Label    string
	Value    string
	Children []DetailNode
}
