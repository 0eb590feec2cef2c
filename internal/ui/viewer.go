// Package ui renders the interactive trace viewer. It is strictly a
// rendering sink: every state change goes through the event router, and the
// Bubble Tea update loop delivers one event at a time, which is what keeps
// store mutation single-threaded.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"wvtrace/internal/correlate"
	"wvtrace/internal/router"
	"wvtrace/internal/store"
	"wvtrace/internal/views"
)

type pane uint8

const (
	paneTree pane = iota + 1
	paneList
	paneSource
	paneDetail
)

// Playback timing defaults; the delay is divided by the selected speed.
const defaultBaseDelay = 1200 * time.Millisecond

var speedValues = []float64{0.25, 0.5, 1, 2, 4}

type watchMsg struct{ ev router.Event }
type watchClosedMsg struct{}
type playTickMsg struct{}

// treeRow is one visible line of the tree pane.
type treeRow struct {
	node  views.TreeNode
	depth int
}

// Model is the root Bubble Tea model of the viewer.
type Model struct {
	st   *store.Store
	ix   *correlate.Index
	keys keyMap
	help help.Model

	events <-chan router.Event

	expanded   map[string]bool
	rows       []treeRow
	treeCursor int

	items      []views.ListItem
	listCursor int

	files       []string
	fileIdx     int
	sourcePath  string
	sourceLines []string
	cursorLine  int
	dec         views.Decorations
	srcView     viewport.Model

	detailView viewport.Model
	hoverText  string

	playing   bool
	playStep  int
	speedIdx  int
	baseDelay time.Duration

	focus    pane
	status   string
	showHelp bool
	width    int
	height   int
	ready    bool
}

// New builds the viewer over a store and correlation index. events may be
// nil when no file watcher is available.
func New(st *store.Store, ix *correlate.Index, events <-chan router.Event, baseDelay time.Duration) *Model {
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	m := &Model{
		st:        st,
		ix:        ix,
		keys:      defaultKeyMap(),
		help:      help.New(),
		events:    events,
		expanded:  make(map[string]bool),
		playStep:  -1,
		speedIdx:  2, // 1x
		baseDelay: baseDelay,
		focus:     paneTree,
	}
	m.refreshAll()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.listenForEvent()
}

func (m *Model) listenForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return watchClosedMsg{}
		}
		return watchMsg{ev: ev}
	}
}

func (m *Model) playTick() tea.Cmd {
	delay := time.Duration(float64(m.baseDelay) / speedValues[m.speedIdx])
	return tea.Tick(delay, func(time.Time) tea.Msg { return playTickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchMsg:
		m.apply(router.Dispatch(m.st, m.ix, msg.ev))
		return m, m.listenForEvent()

	case watchClosedMsg:
		return m, nil

	case playTickMsg:
		if !m.playing {
			return m, nil
		}
		if !m.stepBy(1) {
			m.playing = false
			return m, nil
		}
		return m, m.playTick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// apply folds a dispatch result into the rendered state: dirty views are
// recomputed, a reveal opens the call's source, notes land in the status
// bar.
func (m *Model) apply(res router.Result) {
	if res.Note != "" {
		m.status = res.Note
	}
	if res.Reveal != nil {
		if err := m.openFile(res.Reveal.File); err != nil {
			// Navigation failure is a dismissable note; selection state
			// stays as applied.
			m.status = fmt.Sprintf("cannot open %s: %v", res.Reveal.File, err)
		} else {
			m.setCursorLine(res.Reveal.Line, true)
			// The reveal's cursor jump goes through the router like any
			// other cursor event; the armed one-shot token swallows it.
			m.apply(router.Dispatch(m.st, m.ix, router.CursorMoved{
				File: m.sourcePath,
				Line: m.cursorLine,
			}))
		}
	}
	if res.Rerender.Has(router.ViewTree) {
		m.rebuildTree()
	}
	if res.Rerender.Has(router.ViewList) {
		m.rebuildList()
	}
	if res.Rerender.Has(router.ViewDetail) {
		m.rebuildDetail()
	}
	if res.Rerender.Has(router.ViewDecorations) {
		m.rebuildDecorations()
	}
}

// refreshAll recomputes every projection, used at startup and on manual
// refresh.
func (m *Model) refreshAll() {
	m.st.ListRunIDs()
	m.rebuildTree()
	m.rebuildList()
	m.reloadFiles()
	m.rebuildDecorations()
	m.rebuildDetail()
}

func (m *Model) rebuildTree() {
	nodes := views.Tree(m.st, m.expanded)
	m.rows = m.rows[:0]
	for _, n := range nodes {
		m.rows = append(m.rows, treeRow{node: n})
		for _, child := range n.Children {
			m.rows = append(m.rows, treeRow{node: child, depth: 1})
		}
	}
	if m.treeCursor >= len(m.rows) {
		m.treeCursor = max(0, len(m.rows)-1)
	}
}

func (m *Model) rebuildList() {
	m.items = views.FlatList(m.st)
	if m.listCursor >= len(m.items) {
		m.listCursor = max(0, len(m.items)-1)
	}
}

func (m *Model) rebuildDetail() {
	m.detailView.SetContent(m.detailContent())
}

func (m *Model) rebuildDecorations() {
	m.dec = views.Decorate(m.st, m.ix.Window(), m.sourcePath)
	m.hoverText = views.Hover(m.st.ActiveRecords(), m.ix, m.sourcePath, m.cursorLine)
	m.srcView.SetContent(m.renderSource())
}

// reloadFiles refreshes the file picker from the active run and opens the
// first referenced file when none is open.
func (m *Model) reloadFiles() {
	m.files = views.SourceFiles(m.st)
	if len(m.files) == 0 {
		m.sourcePath = ""
		m.sourceLines = nil
		m.fileIdx = 0
		return
	}
	if m.fileIdx >= len(m.files) {
		m.fileIdx = 0
	}
	if m.sourcePath == "" {
		if err := m.openFile(m.files[m.fileIdx]); err != nil {
			m.status = fmt.Sprintf("cannot open %s: %v", m.files[m.fileIdx], err)
		}
	}
}

func (m *Model) openFile(path string) error {
	if path == "" {
		return fmt.Errorf("record has no source file")
	}
	if path != m.sourcePath {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		m.sourcePath = path
		m.sourceLines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		m.cursorLine = 0
		for i, f := range m.files {
			if f == path {
				m.fileIdx = i
			}
		}
	}
	m.rebuildDecorations()
	return nil
}

// setCursorLine moves the source cursor, optionally centering the viewport
// on it.
func (m *Model) setCursorLine(line int, center bool) {
	if line < 0 {
		line = 0
	}
	if n := len(m.sourceLines); n > 0 && line >= n {
		line = n - 1
	}
	m.cursorLine = line
	if center {
		m.srcView.SetYOffset(max(0, line-m.srcView.Height/2))
	} else {
		// Keep the cursor inside the visible window.
		if line < m.srcView.YOffset {
			m.srcView.SetYOffset(line)
		} else if line >= m.srcView.YOffset+m.srcView.Height {
			m.srcView.SetYOffset(line - m.srcView.Height + 1)
		}
	}
}

// stepBy advances playback by delta within the active run, selecting the
// call it lands on. Returns false at either end.
func (m *Model) stepBy(delta int) bool {
	records := m.st.ActiveRecords()
	if len(records) == 0 {
		return false
	}
	next := m.playStep + delta
	if next < 0 || next >= len(records) {
		return false
	}
	m.playStep = next
	rec := records[next]
	m.apply(router.Dispatch(m.st, m.ix, router.SelectCall{
		RunID:  m.st.ActiveRun(),
		CallID: rec.CallID,
	}))
	return true
}
