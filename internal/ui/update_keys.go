package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wvtrace/internal/router"
	"wvtrace/internal/views"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if active := m.st.ActiveRun(); active != "" {
			m.st.Invalidate(active)
		}
		m.refreshAll()
		m.status = "refreshed"
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.playing = false
		m.apply(router.Dispatch(m.st, m.ix, router.ClearFocus{}))
		return m, nil

	case key.Matches(msg, m.keys.Highlight):
		m.st.SetHighlightEnabled(!m.st.HighlightEnabled())
		m.rebuildDecorations()
		return m, nil

	case key.Matches(msg, m.keys.NextFile):
		return m, m.nextFile()

	case key.Matches(msg, m.keys.Play):
		return m.togglePlay()

	case key.Matches(msg, m.keys.StepNext):
		m.playing = false
		m.stepBy(1)
		return m, nil

	case key.Matches(msg, m.keys.StepPrev):
		m.playing = false
		if m.playStep < 0 {
			m.stepBy(1) // first step lands on the first call
		} else {
			m.stepBy(-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		if m.speedIdx < len(speedValues)-1 {
			m.speedIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		if m.speedIdx > 0 {
			m.speedIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenLink):
		m.showTraceLink()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.activate()
		return m, nil
	}
	return m, nil
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case paneTree:
		m.focus = paneList
	case paneList:
		m.focus = paneSource
	case paneSource:
		m.focus = paneDetail
	default:
		m.focus = paneTree
	}
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case paneTree:
		m.treeCursor = clamp(m.treeCursor+delta, 0, len(m.rows)-1)
	case paneList:
		m.listCursor = clamp(m.listCursor+delta, 0, len(m.items)-1)
	case paneSource:
		m.setCursorLine(m.cursorLine+delta, false)
		m.apply(router.Dispatch(m.st, m.ix, router.CursorMoved{
			File: m.sourcePath,
			Line: m.cursorLine,
		}))
	case paneDetail:
		m.detailView.SetYOffset(m.detailView.YOffset + delta)
	}
}

// activate handles enter on the focused pane: expanding a run, activating
// it, or selecting a call.
func (m *Model) activate() {
	switch m.focus {
	case paneTree:
		if m.treeCursor >= len(m.rows) {
			return
		}
		row := m.rows[m.treeCursor]
		switch row.node.Kind {
		case views.KindRun:
			m.expanded[row.node.RunID] = !m.expanded[row.node.RunID]
			if m.st.ActiveRun() != row.node.RunID {
				m.playing = false
				m.playStep = -1
				m.st.SetActiveRun(row.node.RunID)
				m.sourcePath = ""
				m.rebuildList()
				m.reloadFiles()
				m.rebuildDecorations()
			}
			m.rebuildTree()
		case views.KindCall:
			m.selectCall(row.node.RunID, row.node.Call.CallID)
		}
	case paneList:
		if m.listCursor < len(m.items) {
			m.selectCall(m.st.ActiveRun(), m.items[m.listCursor].Call.CallID)
		}
	}
}

func (m *Model) selectCall(runID, callID string) {
	m.apply(router.Dispatch(m.st, m.ix, router.SelectCall{RunID: runID, CallID: callID}))
	m.rebuildTree() // selection marker moved
}

func (m *Model) togglePlay() (tea.Model, tea.Cmd) {
	if m.playing {
		m.playing = false
		return m, nil
	}
	records := m.st.ActiveRecords()
	if len(records) == 0 {
		m.status = "nothing to play"
		return m, nil
	}
	// Restart from the top when at either end.
	if m.playStep < 0 || m.playStep >= len(records)-1 {
		m.playStep = -1
	}
	m.playing = true
	m.stepBy(1)
	return m, m.playTick()
}

func (m *Model) nextFile() tea.Cmd {
	if len(m.files) == 0 {
		m.status = "active run references no source files"
		return nil
	}
	m.fileIdx = (m.fileIdx + 1) % len(m.files)
	path := m.files[m.fileIdx]
	if err := m.openFile(path); err != nil {
		m.status = fmt.Sprintf("cannot open %s: %v", path, err)
		return nil
	}
	m.apply(router.Dispatch(m.st, m.ix, router.EditorChanged{File: path}))
	return nil
}

func (m *Model) showTraceLink() {
	rec, ok := m.st.FindCall(m.st.ActiveRun(), m.st.SelectedCall())
	if !ok {
		m.status = "no call selected"
		return
	}
	if rec.TraceURL == "" {
		m.status = "selected call has no trace link"
		return
	}
	m.status = rec.TraceURL
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
