package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gravitrone/flightdeck/internal/booking"
	"github.com/gravitrone/flightdeck/internal/ui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppViewRendersBannerTabsAndHints(t *testing.T) {
	app := testApp(t, 120)
	assert.Nil(t, app.Init())

	out := app.View()
	assert.NotContains(t, out, "\x1b]")

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Flight Booking")
	for _, tab := range booking.AllTabs() {
		assert.Contains(t, clean, tab.String())
	}
	assert.Contains(t, clean, "Pick your flight")
	assert.Contains(t, clean, "Tabs")
	assert.Contains(t, clean, "Help")
	assert.Contains(t, clean, "Quit")
}

func TestAppViewNarrowCollapsesSecondaryTabs(t *testing.T) {
	app := testApp(t, 60)
	clean := components.SanitizeText(app.View())

	assert.Contains(t, clean, "Flights")
	assert.Contains(t, clean, "Check in")
	assert.Contains(t, clean, "Flight Status")
	for _, hidden := range []string{"Vacations", "Flight Passes", "Hotels", "Cars", "My Bookings"} {
		assert.NotContains(t, clean, hidden)
	}
}

func TestAppViewShowsPanelForSelectedTab(t *testing.T) {
	app := testApp(t, 120)
	app = pressApp(t, app, runes("4"))

	clean := components.SanitizeText(app.View())
	assert.Contains(t, clean, "[ Hotels ]")
	assert.Contains(t, clean, "Hotels near your destination airport.")
	assert.NotContains(t, clean, "Pick your flight")
}

func TestAppHelpAndQuitConfirmViewsRender(t *testing.T) {
	app := testApp(t, 100)
	app = pressApp(t, app, runes("?"))
	require.True(t, app.helpOpen)

	cleanHelp := components.SanitizeText(app.View())
	assert.Contains(t, cleanHelp, "[ Help ]")
	assert.Contains(t, cleanHelp, "esc to close")
	assert.Contains(t, cleanHelp, "Search")

	app = testApp(t, 100)
	app.flights.store.SetLegField(0, booking.To, "LAX")
	app = pressApp(t, app, runes("q"))
	require.True(t, app.quitConfirm)

	cleanQuit := components.SanitizeText(app.View())
	assert.Contains(t, cleanQuit, "Quit")
	assert.Contains(t, cleanQuit, "not saved")
	assert.Contains(t, cleanQuit, "anyway?")
	assert.Contains(t, cleanQuit, "y: yes | n: no")
}

func TestAppViewRendersToastAndError(t *testing.T) {
	app := testApp(t, 100)
	model, _ := app.Update(itineraryCopiedMsg{})
	app = model.(App)
	assert.Contains(t, components.SanitizeText(app.View()), "Itinerary copied to clipboard.")

	model, _ = app.Update(itineraryCopiedMsg{err: assert.AnError})
	app = model.(App)
	clean := components.SanitizeText(app.View())
	assert.Contains(t, clean, "Error")
	assert.Contains(t, clean, "copy itinerary")
}

func TestAppStatusHintsFollowFocus(t *testing.T) {
	app := testApp(t, 120)
	app.flights.store.SetTripType(booking.MultiCity)
	clean := components.SanitizeText(components.StatusBar(app.statusHints(), 0))
	assert.Contains(t, clean, "Trip type")
	assert.Contains(t, clean, "Add city")

	app = pressApp(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, app.flights.confirming)
	clean = components.SanitizeText(components.StatusBar(app.statusHints(), 0))
	assert.Contains(t, clean, "Copy")
	assert.Contains(t, clean, "PDF")
}
