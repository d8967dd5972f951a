// Package booking holds the state behind the flight-booking shell: which tab
// is active and what itinerary the user has entered. Nothing here renders.
package booking

import (
	"fmt"
	"iter"
	"strings"

	"cloud.google.com/go/civil"
)

// --- Trip Types ---

// TripType selects which legs matter and how edits propagate.
type TripType int

const (
	OneWay TripType = iota
	RoundTrip
	MultiCity
)

var tripTypeNames = []string{"oneWay", "roundTrip", "multiCity"}
var tripTypeLabels = []string{"One Way", "Round Trip", "Multi City"}

// TripTypes lists every trip type in selector order.
func TripTypes() []TripType {
	return []TripType{OneWay, RoundTrip, MultiCity}
}

func (t TripType) String() string {
	if t < OneWay || t > MultiCity {
		return "unknown"
	}
	return tripTypeNames[t]
}

// Label returns the human-facing name.
func (t TripType) Label() string {
	if t < OneWay || t > MultiCity {
		return "Unknown"
	}
	return tripTypeLabels[t]
}

// ParseTripType accepts the canonical names plus a few short aliases.
func ParseTripType(s string) (TripType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "oneway", "one", "single":
		return OneWay, nil
	case "roundtrip", "round", "return":
		return RoundTrip, nil
	case "multicity", "multi":
		return MultiCity, nil
	}
	return OneWay, fmt.Errorf("unknown trip type %q", s)
}

// --- Legs ---

// LegField names the editable text fields of a leg.
type LegField int

const (
	From LegField = iota
	To
)

func (f LegField) String() string {
	if f == To {
		return "to"
	}
	return "from"
}

func (f LegField) opposite() LegField {
	if f == From {
		return To
	}
	return From
}

// Leg is one from/to/date entry. Date is nil until picked.
type Leg struct {
	ID   int
	From string
	To   string
	Date *civil.Date
}

func (l Leg) field(f LegField) string {
	if f == To {
		return l.To
	}
	return l.From
}

func (l *Leg) setField(f LegField, value string) {
	if f == To {
		l.To = value
		return
	}
	l.From = value
}

// --- Store ---

// Store owns the trip type and the leg collection. Leg ids are slice
// positions, so they stay contiguous and are never reused.
type Store struct {
	tripType TripType
	legs     []Leg
}

// NewStore returns a round-trip itinerary with the outbound and return legs.
func NewStore() *Store {
	return &Store{
		tripType: RoundTrip,
		legs:     []Leg{{ID: 0}, {ID: 1}},
	}
}

// TripType returns the current trip type.
func (s *Store) TripType() TripType {
	return s.tripType
}

// SetTripType switches modes. Leg data is kept so toggling loses nothing.
func (s *Store) SetTripType(t TripType) {
	s.tripType = t
}

// Len returns the number of legs, always at least two.
func (s *Store) Len() int {
	return len(s.legs)
}

// Leg returns a copy of the leg with the given id.
func (s *Store) Leg(id int) (Leg, bool) {
	if id < 0 || id >= len(s.legs) {
		return Leg{}, false
	}
	return copyLeg(s.legs[id]), true
}

// Legs returns a copy of every leg in id order.
func (s *Store) Legs() []Leg {
	out := make([]Leg, len(s.legs))
	for i, l := range s.legs {
		out[i] = copyLeg(l)
	}
	return out
}

// SetLegDate sets the date on exactly one leg. A nil date clears it.
func (s *Store) SetLegDate(id int, date *civil.Date) {
	leg := s.mustLeg(id)
	if date == nil {
		leg.Date = nil
		return
	}
	d := *date
	leg.Date = &d
}

// SetLegField edits from or to on one leg. While the trip is a round trip,
// edits to leg 0 are mirrored onto leg 1's opposite field.
func (s *Store) SetLegField(id int, field LegField, value string) {
	s.mustLeg(id).setField(field, value)
	if s.tripType == RoundTrip && id == 0 {
		s.legs[1].setField(field.opposite(), value)
	}
}

// AddLeg appends an empty leg and returns it.
func (s *Store) AddLeg() Leg {
	leg := Leg{ID: len(s.legs)}
	s.legs = append(s.legs, leg)
	return leg
}

// MultiCityLegs yields every leg except the first, in id order.
func (s *Store) MultiCityLegs() iter.Seq[Leg] {
	return func(yield func(Leg) bool) {
		for _, l := range s.legs[1:] {
			if !yield(copyLeg(l)) {
				return
			}
		}
	}
}

// ConfirmationRows derives what the confirmation dialog lists.
//
// The round-trip return row is the reverse of leg 0, paired with leg 1's
// date; leg 1's own from/to are not read.
func (s *Store) ConfirmationRows() []ConfirmationRow {
	outbound := s.legs[0]
	switch s.tripType {
	case RoundTrip:
		return []ConfirmationRow{
			rowFor(outbound.ID, outbound.From, outbound.To, outbound.Date),
			rowFor(s.legs[1].ID, outbound.To, outbound.From, s.legs[1].Date),
		}
	case MultiCity:
		rows := make([]ConfirmationRow, 0, len(s.legs)-1)
		for l := range s.MultiCityLegs() {
			rows = append(rows, rowFor(l.ID, l.From, l.To, l.Date))
		}
		return rows
	default:
		return []ConfirmationRow{rowFor(outbound.ID, outbound.From, outbound.To, outbound.Date)}
	}
}

// RelevantLegs returns the ids of the legs the current trip type uses.
func (s *Store) RelevantLegs() []int {
	switch s.tripType {
	case RoundTrip:
		return []int{0, 1}
	case MultiCity:
		ids := make([]int, 0, len(s.legs))
		for i := range s.legs {
			ids = append(ids, i)
		}
		return ids
	default:
		return []int{0}
	}
}

// MissingField names an empty field on a relevant leg.
type MissingField struct {
	LegID int
	Field string
}

func (m MissingField) String() string {
	return fmt.Sprintf("leg %d: %s", m.LegID+1, m.Field)
}

// Missing reports empty fields on the legs the current trip type uses.
// Only presence is checked. The round-trip return leg needs just a date.
func (s *Store) Missing() []MissingField {
	var out []MissingField
	for _, id := range s.RelevantLegs() {
		l := s.legs[id]
		if !(s.tripType == RoundTrip && id == 1) {
			for _, f := range []LegField{From, To} {
				if strings.TrimSpace(l.field(f)) == "" {
					out = append(out, MissingField{LegID: id, Field: f.String()})
				}
			}
		}
		if l.Date == nil {
			out = append(out, MissingField{LegID: id, Field: "date"})
		}
	}
	return out
}

// HasInput reports whether any leg carries data.
func (s *Store) HasInput() bool {
	for _, l := range s.legs {
		if l.From != "" || l.To != "" || l.Date != nil {
			return true
		}
	}
	return false
}

func (s *Store) mustLeg(id int) *Leg {
	if id < 0 || id >= len(s.legs) {
		panic(fmt.Sprintf("booking: unknown leg id %d", id))
	}
	return &s.legs[id]
}

func copyLeg(l Leg) Leg {
	if l.Date != nil {
		d := *l.Date
		l.Date = &d
	}
	return l
}
