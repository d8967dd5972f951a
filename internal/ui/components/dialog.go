package components

import "github.com/charmbracelet/lipgloss"

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Padding(1, 2).
	Width(44)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := boxHeaderStyle.Render(SanitizeOneLine(title))
	body := boxMutedStyle.Render(SanitizeText(message))
	hint := boxMutedStyle.Render("\ny: yes | n: no")
	return dialogStyle.Render(header + "\n\n" + body + "\n" + hint)
}
