package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	shelfHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("110"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("237"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			MarginBottom(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("161"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))

	detailPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("254"))

	detailSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("248")).
				Width(defaultListWidth)
)
