package ui

import "github.com/charmbracelet/lipgloss"

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236"))

	statusStyle = lipgloss.NewStyle().
			Faint(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	recoveredMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Render("↺")

	dirtyMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Render("●")
)
