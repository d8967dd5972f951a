package booking

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ConfirmationRow is one line of the itinerary summary.
type ConfirmationRow struct {
	LegID int
	From  string
	To    string
	Date  *civil.Date
}

func rowFor(id int, from, to string, date *civil.Date) ConfirmationRow {
	row := ConfirmationRow{LegID: id, From: from, To: to}
	if date != nil {
		d := *date
		row.Date = &d
	}
	return row
}

// DateText returns the date as YYYY-MM-DD, or "" when unset.
func (r ConfirmationRow) DateText() string {
	return FormatDate(r.Date)
}

// String renders "FROM to TO on YYYY-MM-DD".
func (r ConfirmationRow) String() string {
	return fmt.Sprintf("%s to %s on %s", r.From, r.To, r.DateText())
}

// Summary joins rows into the plain-text block used for clipboard export.
func Summary(rows []ConfirmationRow) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

// FormatDate renders d as YYYY-MM-DD. Nil renders as "".
func FormatDate(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// ParseDate accepts YYYY-MM-DD or MM/DD/YYYY. Blank input yields nil.
func ParseDate(s string) (*civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if d, err := civil.ParseDate(s); err == nil {
		return &d, nil
	}
	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD or MM/DD/YYYY", s)
	}
	d := civil.DateOf(t)
	return &d, nil
}
