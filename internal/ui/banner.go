package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ___ _    ___ ___ _  _ _____ ___  ___ ___ _  __
| __| |  |_ _/ __| || |_   _|   \| __/ __| |/ /
| _|| |__ | | (_ | __ | | | | |) | _| (__| ' <
|_| |____|___\___|_||_| |_| |___/|___\___|_|\_\`

const bannerSubtitle = "Flight Booking • Terminal Edition"

// RenderBanner returns the styled ASCII banner with its subtitle.
func RenderBanner() string {
	lines := strings.Split(bannerArt, "\n")
	style := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	maxWidth := 0
	var rendered strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
		rendered.WriteString(style.Render(line))
		rendered.WriteString("\n")
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := maxWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + rendered.String() + "\n" + subtitle + "\n" + underline + "\n"
}
