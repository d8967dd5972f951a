package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/flightdeck/internal/booking"
	"github.com/gravitrone/flightdeck/internal/config"
	"github.com/gravitrone/flightdeck/internal/ui/components"
)

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model: the tab strip plus the active panel.
type App struct {
	config      *config.Config
	tabs        booking.TabController
	tabNav      bool
	width       int
	height      int
	narrow      bool
	err         string
	helpOpen    bool
	quitConfirm bool
	toast       *appToast

	flights FlightsModel
}

// NewApp creates the root application model.
func NewApp(cfg *config.Config) App {
	if cfg == nil {
		cfg = config.Default()
	}
	trip, err := booking.ParseTripType(cfg.DefaultTripType)
	if err != nil {
		trip = booking.RoundTrip
	}
	return App{
		config:  cfg,
		tabs:    booking.NewTabController(),
		tabNav:  true,
		flights: NewFlightsModel(trip, cfg.ExportDir, cfg.VimKeys),
	}
}

func (a App) Init() tea.Cmd {
	return a.flights.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.narrow = msg.Width < a.config.NarrowWidth
		a.flights.width = msg.Width
		return a, nil

	case errMsg:
		a.err = msg.err.Error()
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil
	case itineraryCopiedMsg:
		if msg.err != nil {
			a.err = fmt.Sprintf("copy itinerary: %v", msg.err)
			return a, nil
		}
		return a, a.setToast("success", "Itinerary copied to clipboard.")
	case itineraryExportedMsg:
		if msg.err != nil {
			a.err = fmt.Sprintf("export itinerary: %v", msg.err)
			return a, nil
		}
		return a, a.setToast("success", "Itinerary saved to "+msg.path)

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.err != "" {
			a.err = ""
		}

		typing := !a.tabNav && a.panelWantsText()

		// Global keys
		if isKey(msg, "ctrl+c") || (!typing && isQuit(msg)) {
			if a.flights.hasInput() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}
		if !typing && isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		if !typing {
			if tab, ok := tabForKey(msg.String()); ok {
				return a.selectTab(tab)
			}
		}

		// Arrow tab navigation until user enters content with Down
		if a.tabNav {
			if isLeft(msg, a.config.VimKeys) {
				return a.navigate(-1)
			}
			if isRight(msg, a.config.VimKeys) {
				return a.navigate(1)
			}
			if isDown(msg) {
				a.tabNav = false
				return a, nil
			}

			// Any other key exits tab nav so the active tab can handle it.
			a.tabNav = false
		} else if isUp(msg) && a.canExitToTabNav() {
			a.tabNav = true
			return a, nil
		}
	}

	// Delegate to active tab
	var cmd tea.Cmd
	if a.tabs.Index() == booking.TabFlights {
		a.flights, cmd = a.flights.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	if a.tabs.Index() == booking.TabFlights {
		content = a.flights.View()
	} else {
		content = renderPanel(a.tabs.Index(), a.width)
	}
	content = centerBlockUniform(content, a.width)

	if a.quitConfirm {
		content = centerBlockUniform(a.renderQuitConfirm(), a.width)
	} else if a.helpOpen {
		content = centerBlockUniform(a.renderHelp(), a.width)
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

// selectTab handles a direct tab-strip selection.
func (a App) selectTab(tab booking.Tab) (App, tea.Cmd) {
	old := a.tabs.Index()
	a.tabs.SelectTab(tab)
	a.tabNav = true
	log.Printf("select tab %d -> %d", old, a.tabs.Index())
	a.leaveTab(old)
	return a, a.initTab(old)
}

// navigate handles sequential (swipe) navigation one step left or right.
func (a App) navigate(dir int) (App, tea.Cmd) {
	old := a.tabs.Index()
	target := a.tabs.Neighbor(dir)
	a.tabs.NavigateTo(target, a.narrow)
	log.Printf("navigate %d toward %d (narrow=%v) -> %d", old, target, a.narrow, a.tabs.Index())
	a.leaveTab(old)
	return a, a.initTab(old)
}

// leaveTab drops transient overlays of the tab that lost focus.
func (a *App) leaveTab(old booking.Tab) {
	if old == booking.TabFlights && a.tabs.Index() != old {
		a.flights = a.flights.closeConfirmation()
	}
}

func (a App) initTab(old booking.Tab) tea.Cmd {
	if old != a.tabs.Index() && a.tabs.Index() == booking.TabFlights {
		return a.flights.Init()
	}
	return nil
}

func (a App) renderTabs() string {
	visible := booking.VisibleTabs(a.narrow)
	segments := make([]string, 0, len(visible))
	for _, tab := range visible {
		label := tab.String()
		if tab == a.tabs.Index() {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) panelWantsText() bool {
	return a.tabs.Index() == booking.TabFlights && a.flights.wantsText()
}

func (a App) canExitToTabNav() bool {
	if a.tabs.Index() != booking.TabFlights {
		return true
	}
	return a.flights.atTop()
}

func (a App) statusHints() []components.KeyHint {
	if a.quitConfirm {
		return []components.KeyHint{
			{Key: "y", Desc: "Confirm"},
			{Key: "n", Desc: "Cancel"},
		}
	}
	if a.helpOpen {
		return []components.KeyHint{
			{Key: "esc", Desc: "Back"},
		}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []components.KeyHint {
	base := []components.KeyHint{
		{Key: "1-8", Desc: "Tabs"},
		{Key: "←/→", Desc: "Swipe"},
		{Key: "?", Desc: "Help"},
		{Key: "q", Desc: "Quit"},
	}
	if a.tabs.Index() != booking.TabFlights {
		return base
	}
	if a.flights.confirming {
		return append(base,
			components.KeyHint{Key: "c", Desc: "Copy"},
			components.KeyHint{Key: "p", Desc: "PDF"},
			components.KeyHint{Key: "esc", Desc: "Close"},
		)
	}
	hints := append(base,
		components.KeyHint{Key: "↑/↓", Desc: "Fields"},
		components.KeyHint{Key: "ctrl+s", Desc: "Search"},
	)
	switch a.flights.current().kind {
	case focusTrip:
		hints = append(hints, components.KeyHint{Key: "←/→", Desc: "Trip type"})
	case focusField:
		if a.flights.current().field == fieldDate {
			hints = append(hints, components.KeyHint{Key: "[/]", Desc: "Day"})
		}
	}
	if a.flights.store.TripType() == booking.MultiCity {
		hints = append(hints, components.KeyHint{Key: "ctrl+n", Desc: "Add city"})
	}
	return hints
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint.Render())
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "Your itinerary is not saved. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
