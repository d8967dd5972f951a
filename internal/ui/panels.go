package ui

import (
	"github.com/muesli/reflow/wordwrap"

	"github.com/gravitrone/flightdeck/internal/booking"
	"github.com/gravitrone/flightdeck/internal/ui/components"
)

var panelCopy = map[booking.Tab]string{
	booking.TabVacations:    "Bundle flights with a stay. Packages open here once a destination is picked on the Flights tab.",
	booking.TabFlightPasses: "Prepaid flight passes for frequent routes. Passes you hold are listed here.",
	booking.TabHotels:       "Hotels near your destination airport.",
	booking.TabCars:         "Car rentals at arrival airports.",
	booking.TabMyBookings:   "Trips you have booked. Nothing is stored between sessions.",
	booking.TabCheckIn:      "Online check-in opens 24 hours before departure.",
	booking.TabFlightStatus: "Departure and arrival status for a flight number.",
}

// renderPanel draws the static content of a non-form tab.
func renderPanel(tab booking.Tab, width int) string {
	body := panelCopy[tab]
	if w := components.BoxContentWidth(width); w > 0 {
		body = wordwrap.String(body, w)
	}
	return components.Indent(components.TitledBox(tab.String(), NormalStyle.Render(body), width), 1)
}
