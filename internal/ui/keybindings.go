package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/flightdeck/internal/booking"
)

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up", "shift+tab")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down", "tab")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isLeft(msg tea.KeyMsg, vim bool) bool {
	if vim && isKey(msg, "h") {
		return true
	}
	return isKey(msg, "left")
}

func isRight(msg tea.KeyMsg, vim bool) bool {
	if vim && isKey(msg, "l") {
		return true
	}
	return isKey(msg, "right")
}

// tabForKey maps the number keys 1-8 onto the eight tabs.
func tabForKey(key string) (booking.Tab, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '8' {
		return 0, false
	}
	return booking.Tab(key[0] - '1'), true
}
