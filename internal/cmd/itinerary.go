package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gravitrone/flightdeck/internal/booking"
	"github.com/gravitrone/flightdeck/internal/config"
	"github.com/gravitrone/flightdeck/internal/export"
)

var (
	copyToClipboard = clipboard.WriteAll
	now             = time.Now
)

// legSpec is one --leg flag value.
type legSpec struct {
	from string
	to   string
	date *civil.Date
}

// parseLegFlag parses FROM:TO or FROM:TO:DATE.
func parseLegFlag(s string) (legSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return legSpec{}, fmt.Errorf("invalid leg %q: want FROM:TO[:DATE]", s)
	}
	spec := legSpec{
		from: strings.TrimSpace(parts[0]),
		to:   strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		d, err := booking.ParseDate(parts[2])
		if err != nil {
			return legSpec{}, fmt.Errorf("leg %q: %w", s, err)
		}
		spec.date = d
	}
	return spec, nil
}

// buildStore fills a store from parsed flags. In a round trip the second leg
// only contributes its date; returnDate overrides it.
func buildStore(trip booking.TripType, legs []legSpec, returnDate *civil.Date) (*booking.Store, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("at least one --leg is required")
	}
	switch trip {
	case booking.OneWay:
		if len(legs) > 1 {
			return nil, fmt.Errorf("oneWay takes one leg, got %d", len(legs))
		}
	case booking.RoundTrip:
		if len(legs) > 2 {
			return nil, fmt.Errorf("roundTrip takes at most two legs, got %d", len(legs))
		}
	}
	if returnDate != nil && trip != booking.RoundTrip {
		return nil, fmt.Errorf("--return is only valid for roundTrip")
	}

	store := booking.NewStore()
	store.SetTripType(trip)
	for i, leg := range legs {
		if i >= store.Len() {
			store.AddLeg()
		}
		if trip == booking.RoundTrip && i == 1 {
			store.SetLegDate(1, leg.date)
			continue
		}
		store.SetLegField(i, booking.From, leg.from)
		store.SetLegField(i, booking.To, leg.to)
		store.SetLegDate(i, leg.date)
	}
	if returnDate != nil {
		store.SetLegDate(1, returnDate)
	}
	return store, nil
}

// RunInteractiveItinerary prompts for a trip on in and returns the filled store.
func RunInteractiveItinerary(in io.Reader, out io.Writer, defaultTrip booking.TripType) (*booking.Store, error) {
	reader := bufio.NewReader(in)
	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	askDate := func(prompt string) (*civil.Date, error) {
		return booking.ParseDate(ask(prompt))
	}

	trip := defaultTrip
	if answer := ask(fmt.Sprintf("trip type [%s]: ", defaultTrip)); answer != "" {
		t, err := booking.ParseTripType(answer)
		if err != nil {
			return nil, err
		}
		trip = t
	}

	store := booking.NewStore()
	store.SetTripType(trip)

	askLeg := func(id int, label string) error {
		store.SetLegField(id, booking.From, ask(label+" from: "))
		store.SetLegField(id, booking.To, ask(label+" to: "))
		d, err := askDate(label + " date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		store.SetLegDate(id, d)
		return nil
	}

	if err := askLeg(0, "flight 1"); err != nil {
		return nil, err
	}
	switch trip {
	case booking.RoundTrip:
		d, err := askDate("return date (YYYY-MM-DD): ")
		if err != nil {
			return nil, err
		}
		store.SetLegDate(1, d)
	case booking.MultiCity:
		id := 1
		for {
			if err := askLeg(id, fmt.Sprintf("flight %d", id+1)); err != nil {
				return nil, err
			}
			answer := strings.ToLower(ask("add another city? [y/N]: "))
			if answer != "y" && answer != "yes" {
				break
			}
			id = store.AddLeg().ID
		}
	}
	return store, nil
}

// writeItinerary prints the confirmation rows and any missing fields.
func writeItinerary(out, errOut io.Writer, store *booking.Store) {
	fmt.Fprintf(out, "Trip: %s\n", store.TripType().Label())
	rows := store.ConfirmationRows()
	if len(rows) == 0 {
		fmt.Fprintln(out, "  no flights")
	}
	for i, r := range rows {
		fmt.Fprintf(out, "  %d. %s\n", i+1, r.String())
	}
	for _, m := range store.Missing() {
		fmt.Fprintf(errOut, "warning: missing %s\n", m)
	}
}

// ItineraryCmd returns the `flightdeck itinerary` command.
func ItineraryCmd() *cobra.Command {
	var (
		tripName   string
		legFlags   []string
		returnDate string
		pdfPath    string
		copySum    bool
	)
	cmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Build an itinerary and print its confirmation",
		Long: "Build an itinerary from --leg flags, or interactively when none are given, " +
			"and print the rows the confirmation dialog would show.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			trip, err := booking.ParseTripType(cfg.DefaultTripType)
			if err != nil {
				trip = booking.RoundTrip
			}
			if cmd.Flags().Changed("trip") {
				if trip, err = booking.ParseTripType(tripName); err != nil {
					return err
				}
			}

			var store *booking.Store
			if len(legFlags) == 0 {
				store, err = RunInteractiveItinerary(cmd.InOrStdin(), cmd.OutOrStdout(), trip)
				if err != nil {
					return err
				}
			} else {
				legs := make([]legSpec, 0, len(legFlags))
				for _, raw := range legFlags {
					leg, err := parseLegFlag(raw)
					if err != nil {
						return err
					}
					legs = append(legs, leg)
				}
				ret, err := booking.ParseDate(returnDate)
				if err != nil {
					return fmt.Errorf("--return: %w", err)
				}
				if store, err = buildStore(trip, legs, ret); err != nil {
					return err
				}
			}

			writeItinerary(cmd.OutOrStdout(), cmd.ErrOrStderr(), store)

			rows := store.ConfirmationRows()
			if pdfPath != "" {
				if err := export.WriteFile(pdfPath, store.TripType(), rows, now()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pdf saved to %s\n", pdfPath)
			}
			if copySum {
				if err := copyToClipboard(booking.Summary(rows)); err != nil {
					return fmt.Errorf("copy itinerary: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tripName, "trip", "t", "", "trip type: oneWay, roundTrip or multiCity")
	cmd.Flags().StringArrayVarP(&legFlags, "leg", "l", nil, "leg as FROM:TO[:DATE] (repeatable)")
	cmd.Flags().StringVar(&returnDate, "return", "", "return date for roundTrip")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the itinerary as a PDF to this path")
	cmd.Flags().BoolVar(&copySum, "copy", false, "copy the summary to the clipboard")
	return cmd
}
