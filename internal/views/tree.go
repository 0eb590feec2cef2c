package views

import (
	"fmt"

	"wvtrace/internal/record"
	"wvtrace/internal/runlog"
	"wvtrace/internal/store"
)

// Tree projects the run/call tree: one root node per known run, newest
// first, with call leaves under every expanded run. Expanding a run loads
// its records on first access.
func Tree(st *store.Store, expanded map[string]bool) []TreeNode {
	var nodes []TreeNode
	for _, runID := range st.ListRunIDs() {
		node := TreeNode{
			Kind:     KindRun,
			RunID:    runID,
			Label:    runlog.Label(runID),
			Expanded: expanded[runID],
		}
		if node.Expanded {
			records := st.EnsureLoaded(runID)
			node.Children = make([]TreeNode, 0, len(records))
			for i := range records {
				node.Children = append(node.Children, callNode(runID, &records[i], st.SelectedCall()))
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func callNode(runID string, rec *record.CallRecord, selectedID string) TreeNode {
	return TreeNode{
		Kind:   KindCall,
		RunID:  runID,
		Label:  fmt.Sprintf("%s  %.4fs", rec.Function, rec.DurationS),
		Call:   rec,
		Status: callStatus(rec, selectedID),
	}
}
