package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a single column for TableGrid.
//
// Width is the visual width of the cell text, excluding separators.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const tableGridLeftOffset = 2

var gridLineStyle = lipgloss.NewStyle().Foreground(borderColor)

// TableGrid renders rows under a header rule using the box border glyphs.
// The last column absorbs any slack so every line is tableWidth wide.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", tableWidth)
	}

	border := lipgloss.RoundedBorder()
	cols := fitGridColumns(columns, tableWidth)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, renderGridRow(cols, headers, border.Left, tableWidth, true))
	out = append(out, renderGridRule(cols, border.Middle, border.Top, tableWidth))
	for _, row := range rows {
		out = append(out, renderGridRow(cols, row, border.Left, tableWidth, false))
	}
	return strings.Join(out, "\n")
}

func fitGridColumns(columns []TableColumn, tableWidth int) []TableColumn {
	fitted := make([]TableColumn, len(columns))
	copy(fitted, columns)

	contentWidth := tableWidth - tableGridLeftOffset
	if contentWidth < len(fitted) {
		contentWidth = len(fitted)
	}

	// n columns have n-1 single-width separators.
	used := len(fitted) - 1
	for i := range fitted {
		if fitted[i].Width < 1 {
			fitted[i].Width = 1
		}
		used += fitted[i].Width
	}
	last := &fitted[len(fitted)-1]
	last.Width += contentWidth - used
	if last.Width < 1 {
		last.Width = 1
	}
	return fitted
}

func renderGridRow(columns []TableColumn, cells []string, sep string, tableWidth int, header bool) string {
	sepStyled := gridLineStyle.Inline(true).Render(sep)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tableGridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(sepStyled)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := renderGridCell(text, col.Width, col.Align)
		if header {
			cell = boxLabelStyle.Inline(true).Render(cell)
		}
		b.WriteString(cell)
	}
	return padRight(b.String(), tableWidth)
}

func renderGridRule(columns []TableColumn, cross, horiz string, tableWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tableGridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(cross)
		}
		b.WriteString(strings.Repeat(horiz, col.Width))
	}
	return gridLineStyle.Inline(true).Render(padRight(b.String(), tableWidth))
}

func renderGridCell(text string, width int, align lipgloss.Position) string {
	clamped := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return clamped
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	default:
		return clamped + strings.Repeat(" ", pad)
	}
}
