package ui

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gravitrone/flightdeck/internal/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testFlights(t *testing.T, trip booking.TripType) FlightsModel {
	t.Helper()
	m := NewFlightsModel(trip, t.TempDir(), false)
	m.width = 100
	m.now = func() time.Time { return time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC) }
	m.copyFn = func(string) error { return nil }
	m.exportFn = func(string, booking.TripType, []booking.ConfirmationRow, time.Time) (string, error) {
		return "", nil
	}
	return m
}

func pressFlights(m FlightsModel, msgs ...tea.Msg) FlightsModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func focusOn(t *testing.T, m FlightsModel, want focusTarget) FlightsModel {
	t.Helper()
	for i, target := range m.targets() {
		if target == want {
			m, _ = m.setFocus(i)
			return m
		}
	}
	require.FailNow(t, "focus target not found", "%+v", want)
	return m
}

func TestFlightsTargetsPerTripType(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	assert.Len(t, m.targets(), 5)

	m = testFlights(t, booking.RoundTrip)
	targets := m.targets()
	require.Len(t, targets, 6)
	assert.Equal(t, focusTarget{kind: focusField, leg: 1, field: fieldDate}, targets[4])
	assert.Equal(t, focusSearch, targets[5].kind)

	m = testFlights(t, booking.MultiCity)
	targets = m.targets()
	require.Len(t, targets, 9)
	assert.Equal(t, focusAddCity, targets[7].kind)
}

func TestFlightsDownWrapsAndUpStopsAtTop(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.atTop())

	for range 5 {
		m = pressFlights(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 0, m.focus)

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, focusTarget{kind: focusField, leg: 0, field: fieldFrom}, m.current())
	assert.True(t, m.wantsText())
}

func TestFlightsTypingOutboundMirrorsReturnLeg(t *testing.T) {
	m := testFlights(t, booking.RoundTrip)
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyDown}, runes("NYC"))
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("LAX"))

	out, _ := m.store.Leg(0)
	ret, _ := m.store.Leg(1)
	assert.Equal(t, "NYC", out.From)
	assert.Equal(t, "LAX", out.To)
	assert.Equal(t, "LAX", ret.From)
	assert.Equal(t, "NYC", ret.To)

	assert.Equal(t, "LAX", m.inputs[inputKey{leg: 1, field: fieldFrom}].Value())
	assert.Equal(t, "NYC", m.inputs[inputKey{leg: 1, field: fieldTo}].Value())
}

func TestFlightsBackspaceUpdatesStore(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	m = focusOn(t, m, focusTarget{kind: focusField, leg: 0, field: fieldFrom})
	m = pressFlights(m, runes("SFOX"), tea.KeyMsg{Type: tea.KeyBackspace})

	leg, _ := m.store.Leg(0)
	assert.Equal(t, "SFO", leg.From)
}

func TestFlightsTripSelectorCycles(t *testing.T) {
	m := testFlights(t, booking.RoundTrip)
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, booking.MultiCity, m.store.TripType())

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, booking.OneWay, m.store.TripType())

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, booking.MultiCity, m.store.TripType())

	// vim keys are ignored unless enabled
	m = pressFlights(m, runes("l"))
	assert.Equal(t, booking.MultiCity, m.store.TripType())
	m.vimKeys = true
	m = pressFlights(m, runes("l"))
	assert.Equal(t, booking.OneWay, m.store.TripType())
}

func TestFlightsTripSwitchKeepsEnteredData(t *testing.T) {
	m := testFlights(t, booking.RoundTrip)
	m = focusOn(t, m, focusTarget{kind: focusField, leg: 0, field: fieldFrom})
	m = pressFlights(m, runes("BOS"))

	m = focusOn(t, m, focusTarget{kind: focusTrip})
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, booking.RoundTrip, m.store.TripType())

	leg, _ := m.store.Leg(0)
	assert.Equal(t, "BOS", leg.From)
	ret, _ := m.store.Leg(1)
	assert.Equal(t, "BOS", ret.To)
}

func TestFlightsAddCityFocusesNewLeg(t *testing.T) {
	m := testFlights(t, booking.MultiCity)
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyCtrlN})

	require.Equal(t, 3, m.store.Len())
	assert.Equal(t, focusTarget{kind: focusField, leg: 2, field: fieldFrom}, m.current())
	assert.True(t, m.inputs[inputKey{leg: 2, field: fieldFrom}].Focused())

	m = focusOn(t, m, focusTarget{kind: focusAddCity})
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 4, m.store.Len())
	assert.Equal(t, 3, m.current().leg)
}

func TestFlightsAddCityIgnoredOutsideMultiCity(t *testing.T) {
	m := testFlights(t, booking.RoundTrip)
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 2, m.store.Len())
}

func TestFlightsDateTypingParsesBothFormats(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	m = focusOn(t, m, focusTarget{kind: focusField, leg: 0, field: fieldDate})

	m = pressFlights(m, runes("2025-03-0"))
	leg, _ := m.store.Leg(0)
	assert.Nil(t, leg.Date)
	assert.Contains(t, m.dateErr, 0)

	m = pressFlights(m, runes("1"))
	leg, _ = m.store.Leg(0)
	require.NotNil(t, leg.Date)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 1}, *leg.Date)
	assert.NotContains(t, m.dateErr, 0)

	m = testFlights(t, booking.OneWay)
	m = focusOn(t, m, focusTarget{kind: focusField, leg: 0, field: fieldDate})
	m = pressFlights(m, runes("12/31/2025"))
	leg, _ = m.store.Leg(0)
	require.NotNil(t, leg.Date)
	assert.Equal(t, "2025-12-31", booking.FormatDate(leg.Date))
}

func TestFlightsDateShiftKeys(t *testing.T) {
	m := testFlights(t, booking.RoundTrip)
	m = focusOn(t, m, focusTarget{kind: focusField, leg: 1, field: fieldDate})

	m = pressFlights(m, runes("]"))
	ret, _ := m.store.Leg(1)
	require.NotNil(t, ret.Date)
	assert.Equal(t, "2025-03-01", booking.FormatDate(ret.Date))

	m = pressFlights(m, runes("]"), runes("]"), runes("["))
	ret, _ = m.store.Leg(1)
	assert.Equal(t, "2025-03-02", booking.FormatDate(ret.Date))
	assert.Equal(t, "2025-03-02", m.inputs[inputKey{leg: 1, field: fieldDate}].Value())

	out, _ := m.store.Leg(0)
	assert.Nil(t, out.Date)
}

func TestFlightsSearchOpensConfirmation(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	m = focusOn(t, m, focusTarget{kind: focusSearch})
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.confirming)
	assert.False(t, m.wantsText())
	assert.False(t, m.atTop())

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.confirming)

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.confirming)
}

func TestFlightsConfirmationCopyUsesSummary(t *testing.T) {
	m := testFlights(t, booking.RoundTrip)
	m.store.SetLegField(0, booking.From, "NYC")
	m.store.SetLegField(0, booking.To, "LAX")
	d := civil.Date{Year: 2025, Month: time.March, Day: 1}
	m.store.SetLegDate(0, &d)

	var copied string
	m.copyFn = func(text string) error {
		copied = text
		return nil
	}

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, cmd := m.Update(runes("c"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(itineraryCopiedMsg)
	require.True(t, ok)
	assert.NoError(t, msg.err)
	assert.Equal(t, "NYC to LAX on 2025-03-01\nLAX to NYC on ", copied)
	assert.True(t, m.confirming)
}

func TestFlightsConfirmationExportPassesRows(t *testing.T) {
	m := testFlights(t, booking.MultiCity)
	m.store.AddLeg()
	m.store.SetLegField(1, booking.From, "LAX")
	m.store.SetLegField(2, booking.From, "SEA")

	var gotRows []booking.ConfirmationRow
	var gotDir string
	m.exportFn = func(dir string, trip booking.TripType, rows []booking.ConfirmationRow, now time.Time) (string, error) {
		gotDir = dir
		gotRows = rows
		assert.Equal(t, booking.MultiCity, trip)
		return dir + "/itinerary.pdf", nil
	}

	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	_, cmd := m.Update(runes("p"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(itineraryExportedMsg)
	require.True(t, ok)
	assert.NoError(t, msg.err)
	assert.Equal(t, gotDir+"/itinerary.pdf", msg.path)
	require.Len(t, gotRows, 2)
	assert.Equal(t, "LAX", gotRows[0].From)
	assert.Equal(t, "SEA", gotRows[1].From)
}

func TestFlightsExportErrorIsReported(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	m.exportFn = func(string, booking.TripType, []booking.ConfirmationRow, time.Time) (string, error) {
		return "", errors.New("disk full")
	}
	m = pressFlights(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	_, cmd := m.Update(runes("p"))
	require.NotNil(t, cmd)
	msg := cmd().(itineraryExportedMsg)
	assert.EqualError(t, msg.err, "disk full")
}

func TestFlightsHasInput(t *testing.T) {
	m := testFlights(t, booking.OneWay)
	assert.False(t, m.hasInput())
	m = focusOn(t, m, focusTarget{kind: focusField, leg: 0, field: fieldTo})
	m = pressFlights(m, runes("A"))
	assert.True(t, m.hasInput())
}
