package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmDialogIncludesTitleMessageAndHints(t *testing.T) {
	clean := SanitizeText(ConfirmDialog("Quit", "Your itinerary is not saved."))

	assert.Contains(t, clean, "Quit")
	assert.Contains(t, clean, "Your itinerary is not saved.")
	assert.Contains(t, clean, "y: yes | n: no")
}

func TestConfirmDialogStripsEscapes(t *testing.T) {
	out := ConfirmDialog("Qu\x1b]0;x\x07it", "ok\u202e")
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\u202e")
}
