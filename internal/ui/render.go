package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wvtrace/internal/runlog"
	"wvtrace/internal/views"
)

func (m *Model) resize() {
	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth - 4
	bodyHeight := m.height - 4 // status bar and help line

	srcHeight := bodyHeight * 3 / 5
	detailHeight := bodyHeight - srcHeight - 4
	m.srcView = viewport.New(rightWidth, srcHeight)
	m.detailView = viewport.New(rightWidth, detailHeight)
	m.rebuildDecorations()
	m.rebuildDetail()
}

func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}

	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth - 4
	bodyHeight := m.height - 4

	treeHeight := bodyHeight*2/5 - 2
	listHeight := bodyHeight - treeHeight - 6

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.pane(paneTree, "runs", m.renderTree(treeHeight, leftWidth-2), leftWidth, treeHeight),
		m.pane(paneList, m.listTitle(), m.renderList(listHeight, leftWidth-2), leftWidth, listHeight),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.pane(paneSource, m.sourceTitle(), m.srcView.View(), rightWidth, m.srcView.Height),
		m.pane(paneDetail, "detail", m.detailView.View(), rightWidth, m.detailView.Height),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var footer string
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	} else {
		footer = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(), footer)
}

func (m *Model) pane(p pane, title, content string, width, height int) string {
	style := paneStyle
	if m.focus == p {
		style = paneFocusedStyle
	}
	head := titleStyle.Render(truncate(title, width-2))
	return style.Width(width).Height(height + 1).Render(head + "\n" + content)
}

func (m *Model) listTitle() string {
	title := "calls"
	if fn := m.st.FocusedFunction(); fn != "" {
		title = "calls · " + fn
	}
	return title
}

func (m *Model) sourceTitle() string {
	if m.sourcePath == "" {
		return "source"
	}
	return "source · " + filepath.Base(m.sourcePath)
}

func (m *Model) statusBar() string {
	var parts []string
	if run := m.st.ActiveRun(); run != "" {
		parts = append(parts, runStyle.Render(runlog.Label(run)))
	}
	if m.playing {
		parts = append(parts, fmt.Sprintf("▶ step %d/%d at %gx",
			m.playStep+1, len(m.st.ActiveRecords()), speedValues[m.speedIdx]))
	}
	if !m.st.HighlightEnabled() {
		parts = append(parts, dimStyle.Render("highlights off"))
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	return truncate(strings.Join(parts, "  "), m.width)
}

func (m *Model) renderTree(height, width int) string {
	if len(m.rows) == 0 {
		return dimStyle.Render("no runs recorded")
	}
	top := clamp(m.treeCursor-height+1, 0, len(m.rows)-1)
	if m.treeCursor < height {
		top = 0
	}
	var b strings.Builder
	for i := top; i < len(m.rows) && i-top < height; i++ {
		row := m.rows[i]
		line := m.renderTreeRow(row, width-2)
		if i == m.treeCursor && m.focus == paneTree {
			line = cursorRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderTreeRow(row treeRow, width int) string {
	indent := strings.Repeat("  ", row.depth)
	switch row.node.Kind {
	case views.KindRun:
		arrow := "▸"
		if row.node.Expanded {
			arrow = "▾"
		}
		label := row.node.Label
		if row.node.RunID == m.st.ActiveRun() {
			label = runStyle.Render(label + " ●")
		}
		return truncate(indent+arrow+" "+label, width)
	default:
		marker := styleForStatus(row.node.Status).Render(row.node.Status.Marker())
		return truncate(indent+marker+" "+row.node.Label, width)
	}
}

func (m *Model) renderList(height, width int) string {
	if len(m.items) == 0 {
		return dimStyle.Render("no calls")
	}
	top := 0
	if m.listCursor >= height {
		top = m.listCursor - height + 1
	}
	var b strings.Builder
	for i := top; i < len(m.items) && i-top < height; i++ {
		it := m.items[i]
		marker := styleForStatus(it.Status).Render(it.Status.Marker())
		line := fmt.Sprintf("%s %s  %.4fs", marker, it.Call.Function, it.Call.DurationS)
		line = truncate(line, width-2)
		if i == m.listCursor && m.focus == paneList {
			line = cursorRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSource materializes the whole file with decorations; the viewport
// scrolls over it.
func (m *Model) renderSource() string {
	if m.sourcePath == "" {
		return dimStyle.Render("no source file — select a run with located calls")
	}
	gutterAt := make(map[int]bool, len(m.dec.Gutter))
	for _, g := range m.dec.Gutter {
		gutterAt[g.Line] = true
	}
	highlighted := func(line int) bool {
		for _, span := range m.dec.Highlights {
			if line >= span.Start && line <= span.End {
				return true
			}
		}
		return false
	}

	width := m.srcView.Width
	var b strings.Builder
	for i, text := range m.sourceLines {
		mark := " "
		if gutterAt[i] {
			mark = gutterStyle.Render("●")
		}
		lineNo := lineNoStyle.Render(fmt.Sprintf("%4d", i+1))
		row := fmt.Sprintf("%s %s │ %s", mark, lineNo, strings.ReplaceAll(text, "\t", "    "))
		row = truncate(row, width)
		if highlighted(i) {
			row = highlightStyle.Render(row)
		}
		if i == m.cursorLine && m.focus == paneSource {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// detailContent prefers hover content while the source pane is focused;
// otherwise it shows the selected call's outline.
func (m *Model) detailContent() string {
	if m.focus == paneSource && m.hoverText != "" {
		return hoverStyle.Render(m.hoverText)
	}
	rec, ok := m.st.FindCall(m.st.ActiveRun(), m.st.SelectedCall())
	if !ok {
		return dimStyle.Render("select a call to inspect inputs and output")
	}
	var b strings.Builder
	renderDetailNode(&b, views.Detail(&rec), 0)
	return strings.TrimRight(b.String(), "\n")
}

func renderDetailNode(b *strings.Builder, node views.DetailNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.Value != "" || len(node.Children) == 0 {
		fmt.Fprintf(b, "%s%s %s\n", indent, detailKey.Render(node.Label+":"), detailScalar.Render(node.Value))
	} else {
		fmt.Fprintf(b, "%s%s\n", indent, detailKey.Render(node.Label))
	}
	for _, child := range node.Children {
		renderDetailNode(b, child, depth+1)
	}
}

func styleForStatus(s views.Status) lipgloss.Style {
	switch s {
	case views.StatusError:
		return errorStyle
	case views.StatusSelected:
		return selectedStyle
	default:
		return successStyle
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
