// Package export writes printable itinerary summaries.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/gravitrone/flightdeck/internal/booking"
)

// WritePDF renders the confirmation rows as a one-page A4 itinerary.
func WritePDF(w io.Writer, trip booking.TripType, rows []booking.ConfirmationRow, now time.Time) error {
	pdf := render(trip, rows, now)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// render lays out the document. Core fonts only cover cp1252, so user text
// goes through the translator before it reaches a cell.
func render(trip booking.TripType, rows []booking.ConfirmationRow, now time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Your Itinerary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Your Itinerary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Trip type : "+trip.Label())
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generated : "+now.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(12, 8, "#", "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "From", "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "To", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Date", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for i, r := range rows {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(dash(r.From)), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(dash(r.To)), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, dash(r.DateText()), "", 1, "L", false, 0, "")
	}

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 7, "No legs entered.")
		pdf.Ln(7)
	}
	return pdf
}

// FileName returns the export file name for a timestamp.
func FileName(now time.Time) string {
	return "itinerary-" + now.Format("20060102-150405") + ".pdf"
}

// SaveFile writes the itinerary PDF into dir and returns its path.
func SaveFile(dir string, trip booking.TripType, rows []booking.ConfirmationRow, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	return path, WriteFile(path, trip, rows, now)
}

// WriteFile writes the itinerary PDF to path.
func WriteFile(path string, trip booking.TripType, rows []booking.ConfirmationRow, now time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	if err := WritePDF(f, trip, rows, now); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
