package ui

import "github.com/charmbracelet/lipgloss"

// Dark-terminal palette; numbered colors degrade on 8-color terminals.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	paneFocusedStyle = paneStyle.
				BorderForeground(lipgloss.Color("4"))

	runStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	cursorRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("12"))
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	lineNoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	hoverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true)
	detailKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	detailScalar = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)
