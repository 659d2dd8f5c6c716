package commands

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#6C6C6C")
	successColor   = lipgloss.Color("#73F59F")

	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// subtleStyle for rationale and hints
	subtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// okStyle for confirmations
	okStyle = lipgloss.NewStyle().
		Foreground(successColor)
)
