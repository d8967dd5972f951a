package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const hintSeparator = "  ·  "

var (
	hintKeyStyle = lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true)
	hintDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
	hintRuleStyle = lipgloss.NewStyle().
			Foreground(borderColor)
)

// KeyHint pairs a key with what it does on the current screen.
type KeyHint struct {
	Key  string
	Desc string
}

// Render formats the hint as "key desc".
func (h KeyHint) Render() string {
	return hintKeyStyle.Render(SanitizeOneLine(h.Key)) + " " + hintDescStyle.Render(SanitizeOneLine(h.Desc))
}

// StatusBar renders hints under a rule, packing as many per line as fit in
// width and centering each line. A width of zero keeps everything on one line.
func StatusBar(hints []KeyHint, width int) string {
	if len(hints) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(hints))
	for _, h := range hints {
		rendered = append(rendered, h.Render())
	}
	if width <= 0 {
		return strings.Join(rendered, hintSeparator)
	}

	lines := packHints(rendered, width)
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	rule := hintRuleStyle.Render(strings.Repeat("─", width))
	return rule + "\n" + strings.Join(lines, "\n")
}

// packHints greedily joins hints with the separator, starting a new line
// when the next hint would overflow width. A hint wider than width gets a
// line of its own.
func packHints(hints []string, width int) []string {
	sepWidth := lipgloss.Width(hintSeparator)
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, h := range hints {
		w := lipgloss.Width(h)
		if lineWidth > 0 && lineWidth+sepWidth+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(hintSeparator)
			lineWidth += sepWidth
		}
		line.WriteString(h)
		lineWidth += w
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
