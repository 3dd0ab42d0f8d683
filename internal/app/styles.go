package app

import "github.com/charmbracelet/lipgloss"

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("12"))

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	buttonStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2).
			Background(lipgloss.Color("42")).Foreground(lipgloss.Color("0"))
	disabledButtonStyle = lipgloss.NewStyle().Padding(0, 2).Faint(true).
				Background(lipgloss.Color("8"))
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("8"))
	focusedFieldStyle = fieldStyle.BorderForeground(lipgloss.Color("12"))
	cellStyle         = lipgloss.NewStyle().Padding(0, 1)
	headerCellStyle   = cellStyle.Bold(true).Foreground(lipgloss.Color("12"))
	selectedCellStyle = cellStyle.Reverse(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func panelString(inner string) string {
	return panelStyle.Render(inner)
}

func button(label string, enabled bool) string {
	if enabled {
		return buttonStyle.Render(label)
	}
	return disabledButtonStyle.Render(label)
}
