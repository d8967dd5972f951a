package booking

// Tab is one of the eight navigation tabs, identified by its strip position.
type Tab int

const (
	TabFlights Tab = iota
	TabVacations
	TabFlightPasses
	TabHotels
	TabCars
	TabMyBookings
	TabCheckIn
	TabFlightStatus
	TabCount = 8
)

var tabNames = [TabCount]string{
	"Flights",
	"Vacations",
	"Flight Passes",
	"Hotels",
	"Cars",
	"My Bookings",
	"Check in",
	"Flight Status",
}

// String returns the tab label.
func (t Tab) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return tabNames[t]
}

// Valid reports whether t names one of the eight tabs.
func (t Tab) Valid() bool {
	return t >= 0 && t < TabCount
}

// Secondary reports whether t collapses out of the strip on narrow viewports.
func (t Tab) Secondary() bool {
	return t > TabFlights && t < TabCheckIn
}

// AllTabs returns every tab in strip order.
func AllTabs() []Tab {
	tabs := make([]Tab, 0, TabCount)
	for i := Tab(0); i < TabCount; i++ {
		tabs = append(tabs, i)
	}
	return tabs
}

// VisibleTabs returns the tabs the strip shows for the given viewport class.
func VisibleTabs(narrow bool) []Tab {
	if !narrow {
		return AllTabs()
	}
	return []Tab{TabFlights, TabCheckIn, TabFlightStatus}
}

// NextIndex resolves a sequential (swipe) navigation request.
//
// On narrow viewports a target inside the collapsed block 1..5 never lands
// there: navigation tunnels to tab 0 or 6 depending on where it started.
func NextIndex(current, target Tab, narrow bool) Tab {
	if !narrow || !target.Secondary() {
		return target
	}
	switch {
	case current == TabFlights:
		return TabCheckIn
	case current == TabCheckIn:
		return TabFlights
	case current > target:
		return TabFlights
	default:
		return TabCheckIn
	}
}

// TabController owns the selected tab index.
type TabController struct {
	index Tab
}

// NewTabController returns a controller on the Flights tab.
func NewTabController() TabController {
	return TabController{index: TabFlights}
}

// Index returns the active tab.
func (c TabController) Index() Tab {
	return c.index
}

// SelectTab activates t directly, as a click on the tab strip does.
func (c *TabController) SelectTab(t Tab) {
	if !t.Valid() {
		panic("booking: tab index out of range")
	}
	c.index = t
}

// NavigateTo applies swipe-style navigation toward target.
func (c *TabController) NavigateTo(target Tab, narrow bool) {
	if !target.Valid() {
		panic("booking: tab index out of range")
	}
	c.index = NextIndex(c.index, target, narrow)
}

// Neighbor returns the tab one step left (dir < 0) or right (dir > 0) of the
// active tab, clamped to the strip ends.
func (c TabController) Neighbor(dir int) Tab {
	next := c.index
	switch {
	case dir < 0 && next > TabFlights:
		next--
	case dir > 0 && next < TabCount-1:
		next++
	}
	return next
}
