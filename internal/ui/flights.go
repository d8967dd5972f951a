package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/flightdeck/internal/booking"
	"github.com/gravitrone/flightdeck/internal/export"
	"github.com/gravitrone/flightdeck/internal/ui/components"
)

// --- Messages ---

type itineraryCopiedMsg struct{ err error }
type itineraryExportedMsg struct {
	path string
	err  error
}

// --- Focus Targets ---

type fieldKind int

const (
	fieldFrom fieldKind = iota
	fieldTo
	fieldDate
)

type focusKind int

const (
	focusTrip focusKind = iota
	focusField
	focusAddCity
	focusSearch
)

type focusTarget struct {
	kind  focusKind
	leg   int
	field fieldKind
}

type inputKey struct {
	leg   int
	field fieldKind
}

type exportFunc func(dir string, trip booking.TripType, rows []booking.ConfirmationRow, now time.Time) (string, error)

// --- Flights Model ---

// FlightsModel is the itinerary entry form on the Flights tab.
type FlightsModel struct {
	store      *booking.Store
	inputs     map[inputKey]textinput.Model
	dateErr    map[int]string
	focus      int
	confirming bool
	vimKeys    bool
	exportDir  string
	copyFn     func(string) error
	exportFn   exportFunc
	now        func() time.Time
	width      int
}

// NewFlightsModel builds the form with an empty itinerary.
func NewFlightsModel(trip booking.TripType, exportDir string, vimKeys bool) FlightsModel {
	store := booking.NewStore()
	store.SetTripType(trip)
	m := FlightsModel{
		store:     store,
		inputs:    map[inputKey]textinput.Model{},
		dateErr:   map[int]string{},
		vimKeys:   vimKeys,
		exportDir: exportDir,
		copyFn:    clipboard.WriteAll,
		exportFn:  export.SaveFile,
		now:       time.Now,
	}
	m.ensureInputs()
	return m
}

func (m FlightsModel) Init() tea.Cmd {
	return nil
}

func (m FlightsModel) Update(msg tea.Msg) (FlightsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}
	if m.confirming {
		return m.handleConfirmKeys(keyMsg)
	}

	switch {
	case isKey(keyMsg, "ctrl+s"):
		m.confirming = true
		return m, nil
	case isKey(keyMsg, "ctrl+n"):
		if m.store.TripType() == booking.MultiCity {
			return m.addCity()
		}
		return m, nil
	case isDown(keyMsg):
		return m.setFocus((m.focus + 1) % len(m.targets()))
	case isUp(keyMsg):
		if m.focus > 0 {
			return m.setFocus(m.focus - 1)
		}
		return m, nil
	}

	target := m.current()
	switch target.kind {
	case focusTrip:
		switch {
		case isLeft(keyMsg, m.vimKeys):
			m.cycleTripType(-1)
		case isRight(keyMsg, m.vimKeys):
			m.cycleTripType(1)
		}
		return m, nil
	case focusAddCity:
		if isEnter(keyMsg) {
			return m.addCity()
		}
		return m, nil
	case focusSearch:
		if isEnter(keyMsg) {
			m.confirming = true
		}
		return m, nil
	}

	if isEnter(keyMsg) {
		return m.setFocus(m.focus + 1)
	}
	return m.handleFieldKey(keyMsg, target)
}

func (m FlightsModel) closeConfirmation() FlightsModel {
	m.confirming = false
	return m
}

func (m FlightsModel) handleConfirmKeys(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	switch {
	case isBack(msg), isEnter(msg), isKey(msg, "n"):
		return m.closeConfirmation(), nil
	case isKey(msg, "c"):
		return m, m.copyCmd()
	case isKey(msg, "p"):
		return m, m.exportCmd()
	}
	return m, nil
}

func (m FlightsModel) handleFieldKey(msg tea.KeyMsg, target focusTarget) (FlightsModel, tea.Cmd) {
	key := inputKey{leg: target.leg, field: target.field}
	if target.field == fieldDate && isKey(msg, "[", "]") {
		step := 1
		if isKey(msg, "[") {
			step = -1
		}
		m.shiftDate(target.leg, step)
		return m, nil
	}

	in := m.inputs[key]
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[key] = in

	switch target.field {
	case fieldFrom:
		m.store.SetLegField(target.leg, booking.From, in.Value())
	case fieldTo:
		m.store.SetLegField(target.leg, booking.To, in.Value())
	case fieldDate:
		m.applyDateText(target.leg, in.Value())
	}
	m.syncInputs()
	return m, cmd
}

func (m FlightsModel) updateFocusedInput(msg tea.Msg) (FlightsModel, tea.Cmd) {
	target := m.current()
	if m.confirming || target.kind != focusField {
		return m, nil
	}
	key := inputKey{leg: target.leg, field: target.field}
	in := m.inputs[key]
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[key] = in
	return m, cmd
}

func (m *FlightsModel) applyDateText(leg int, text string) {
	d, err := booking.ParseDate(text)
	if err != nil {
		m.dateErr[leg] = "use YYYY-MM-DD or MM/DD/YYYY"
		m.store.SetLegDate(leg, nil)
		return
	}
	delete(m.dateErr, leg)
	m.store.SetLegDate(leg, d)
}

func (m *FlightsModel) shiftDate(leg int, days int) {
	current, _ := m.store.Leg(leg)
	next := civil.DateOf(m.now())
	if current.Date != nil {
		next = current.Date.AddDays(days)
	}
	m.store.SetLegDate(leg, &next)
	delete(m.dateErr, leg)

	key := inputKey{leg: leg, field: fieldDate}
	in := m.inputs[key]
	in.SetValue(booking.FormatDate(&next))
	in.CursorEnd()
	m.inputs[key] = in
}

func (m *FlightsModel) cycleTripType(dir int) {
	types := booking.TripTypes()
	idx := int(m.store.TripType())
	idx = (idx + dir + len(types)) % len(types)
	m.store.SetTripType(types[idx])
	log.Printf("trip type -> %s", types[idx])
}

func (m FlightsModel) addCity() (FlightsModel, tea.Cmd) {
	leg := m.store.AddLeg()
	m.ensureInputs()
	log.Printf("added leg %d", leg.ID)
	for i, t := range m.targets() {
		if t.kind == focusField && t.leg == leg.ID && t.field == fieldFrom {
			return m.setFocus(i)
		}
	}
	return m, nil
}

func (m FlightsModel) setFocus(idx int) (FlightsModel, tea.Cmd) {
	targets := m.targets()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(targets) {
		idx = len(targets) - 1
	}
	for k, in := range m.inputs {
		if in.Focused() {
			in.Blur()
			m.inputs[k] = in
		}
	}
	m.focus = idx
	m.syncInputs()

	target := targets[idx]
	if target.kind != focusField {
		return m, nil
	}
	key := inputKey{leg: target.leg, field: target.field}
	in := m.inputs[key]
	cmd := in.Focus()
	in.CursorEnd()
	m.inputs[key] = in
	return m, cmd
}

// targets lists focusable rows for the current trip type, top to bottom.
func (m FlightsModel) targets() []focusTarget {
	out := []focusTarget{{kind: focusTrip}}
	addLeg := func(id int) {
		out = append(out,
			focusTarget{kind: focusField, leg: id, field: fieldFrom},
			focusTarget{kind: focusField, leg: id, field: fieldTo},
			focusTarget{kind: focusField, leg: id, field: fieldDate},
		)
	}
	addLeg(0)
	switch m.store.TripType() {
	case booking.RoundTrip:
		out = append(out, focusTarget{kind: focusField, leg: 1, field: fieldDate})
	case booking.MultiCity:
		for l := range m.store.MultiCityLegs() {
			addLeg(l.ID)
		}
		out = append(out, focusTarget{kind: focusAddCity})
	}
	return append(out, focusTarget{kind: focusSearch})
}

func (m FlightsModel) current() focusTarget {
	targets := m.targets()
	idx := m.focus
	if idx >= len(targets) {
		idx = len(targets) - 1
	}
	return targets[idx]
}

func (m *FlightsModel) ensureInputs() {
	for id := 0; id < m.store.Len(); id++ {
		for _, f := range []fieldKind{fieldFrom, fieldTo, fieldDate} {
			key := inputKey{leg: id, field: f}
			if _, ok := m.inputs[key]; !ok {
				m.inputs[key] = newLegInput(f)
			}
		}
	}
}

// syncInputs copies store values into the inputs so mirrored edits show up.
// The focused date input keeps whatever the user is typing.
func (m *FlightsModel) syncInputs() {
	for _, leg := range m.store.Legs() {
		m.syncInput(inputKey{leg: leg.ID, field: fieldFrom}, leg.From)
		m.syncInput(inputKey{leg: leg.ID, field: fieldTo}, leg.To)
		dateKey := inputKey{leg: leg.ID, field: fieldDate}
		if in, ok := m.inputs[dateKey]; ok && !in.Focused() {
			if _, bad := m.dateErr[leg.ID]; !bad {
				m.syncInput(dateKey, booking.FormatDate(leg.Date))
			}
		}
	}
}

func (m *FlightsModel) syncInput(key inputKey, value string) {
	in, ok := m.inputs[key]
	if !ok || in.Value() == value {
		return
	}
	in.SetValue(value)
	m.inputs[key] = in
}

func newLegInput(f fieldKind) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 64
	in.Width = 24
	switch f {
	case fieldFrom:
		in.Placeholder = "FROM"
	case fieldTo:
		in.Placeholder = "TO"
	case fieldDate:
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = 10
	}
	return in
}

// wantsText reports whether keystrokes should go to a text field.
func (m FlightsModel) wantsText() bool {
	return !m.confirming && m.current().kind == focusField
}

func (m FlightsModel) atTop() bool {
	return !m.confirming && m.focus == 0
}

func (m FlightsModel) hasInput() bool {
	return m.store.HasInput()
}

// --- Commands ---

func (m FlightsModel) copyCmd() tea.Cmd {
	text := booking.Summary(m.store.ConfirmationRows())
	copyFn := m.copyFn
	return func() tea.Msg {
		return itineraryCopiedMsg{err: copyFn(text)}
	}
}

func (m FlightsModel) exportCmd() tea.Cmd {
	trip := m.store.TripType()
	rows := m.store.ConfirmationRows()
	dir := m.exportDir
	exportFn := m.exportFn
	now := m.now()
	return func() tea.Msg {
		path, err := exportFn(dir, trip, rows, now)
		return itineraryExportedMsg{path: path, err: err}
	}
}

// --- Rendering ---

func (m FlightsModel) View() string {
	if m.confirming {
		return components.Indent(m.renderConfirmation(), 1)
	}
	return components.Indent(m.renderForm(), 1)
}

func (m FlightsModel) renderForm() string {
	targets := m.targets()
	focused := targets[minInt(m.focus, len(targets)-1)]
	trip := m.store.TripType()

	var b strings.Builder
	b.WriteString(m.renderTripSelector(focused.kind == focusTrip))

	for _, t := range targets {
		if t.kind != focusField {
			continue
		}
		if t.field == fieldFrom || (trip == booking.RoundTrip && t.leg == 1) {
			b.WriteString("\n\n")
			b.WriteString(HeaderStyle.Render(legHeading(trip, t.leg)))
		}
		b.WriteString("\n")
		b.WriteString(m.renderField(t, focused))
	}

	b.WriteString("\n\n")
	if trip == booking.MultiCity {
		b.WriteString(renderButton("Add city", focused.kind == focusAddCity))
		b.WriteString("   ")
	}
	b.WriteString(renderButton("Search for Flights", focused.kind == focusSearch))

	return components.TitledBox("Pick your flight", b.String(), m.width)
}

func (m FlightsModel) renderTripSelector(focused bool) string {
	var b strings.Builder
	if focused {
		b.WriteString(SelectedStyle.Render("> Trip:"))
	} else {
		b.WriteString(MutedStyle.Render("  Trip:"))
	}
	b.WriteString("\n  ")
	types := booking.TripTypes()
	for i, t := range types {
		if t == m.store.TripType() {
			b.WriteString(AccentStyle.Render("[" + t.Label() + "]"))
		} else {
			b.WriteString(MutedStyle.Render(" " + t.Label() + " "))
		}
		if i < len(types)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func (m FlightsModel) renderField(t focusTarget, focused focusTarget) string {
	leg, _ := m.store.Leg(t.leg)
	label, value := "From", leg.From
	switch t.field {
	case fieldTo:
		label, value = "To", leg.To
	case fieldDate:
		label, value = "Departure date", booking.FormatDate(leg.Date)
		if m.store.TripType() == booking.RoundTrip && t.leg == 1 {
			label = "Return date"
		}
	}

	var b strings.Builder
	if t == focused {
		in := m.inputs[inputKey{leg: t.leg, field: t.field}]
		b.WriteString(SelectedStyle.Render("> " + label + ":"))
		b.WriteString("\n  ")
		b.WriteString(in.View())
	} else {
		if value == "" {
			value = "-"
		}
		b.WriteString(MutedStyle.Render("  " + label + ":"))
		b.WriteString("\n")
		b.WriteString(NormalStyle.Render("  " + components.SanitizeOneLine(value)))
	}
	if t.field == fieldDate {
		if msg, ok := m.dateErr[t.leg]; ok {
			b.WriteString("\n  ")
			b.WriteString(ErrorStyle.Render(msg))
		}
	}
	return b.String()
}

func (m FlightsModel) renderConfirmation() string {
	rows := m.store.ConfirmationRows()
	trip := m.store.TripType()

	tableWidth := components.BoxContentWidth(m.width)
	if tableWidth <= 0 {
		tableWidth = 60
	}
	cols := []components.TableColumn{
		{Header: "#", Width: 3},
		{Header: "From", Width: 14},
		{Header: "To", Width: 14},
		{Header: "Date", Width: 12},
	}
	cells := make([][]string, 0, len(rows))
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		cells = append(cells, []string{fmt.Sprintf("%d", i+1), r.From, r.To, r.DateText()})
		lines = append(lines, NormalStyle.Render(components.SanitizeOneLine(r.String())))
	}

	var b strings.Builder
	b.WriteString(components.InfoRow("Trip", trip.Label()))
	b.WriteString("\n\n")
	b.WriteString(components.TableGrid(cols, cells, tableWidth))
	if len(lines) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	if missing := m.store.Missing(); len(missing) > 0 {
		parts := make([]string, 0, len(missing))
		for _, f := range missing {
			parts = append(parts, f.String())
		}
		b.WriteString("\n\n")
		b.WriteString(WarningStyle.Render("Missing: " + strings.Join(parts, ", ")))
	} else {
		b.WriteString("\n\n")
		b.WriteString(SuccessStyle.Render("All flights complete"))
	}
	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render("c: copy | p: export pdf | esc: close"))
	return components.TitledBox("Your Itinerary", b.String(), m.width)
}

func legHeading(trip booking.TripType, leg int) string {
	switch {
	case trip == booking.RoundTrip && leg == 0:
		return "Outbound"
	case trip == booking.RoundTrip && leg == 1:
		return "Return"
	case trip == booking.OneWay:
		return "Flight"
	}
	return fmt.Sprintf("Flight %d", leg+1)
}

func renderButton(label string, focused bool) string {
	if focused {
		return SelectedStyle.Render("> [ " + label + " ]")
	}
	return MutedStyle.Render("  [ " + label + " ]")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
