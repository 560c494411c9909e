package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	negativeStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	borderStyle = lipgloss.NewStyle().
			Foreground(colorBorder)
)

// separatorRow marks a horizontal rule between data rows.
const separatorRow = "---"

// Table is a bordered text table. The first column is left aligned, the
// others are right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with optional headers.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeRule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(borderStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			h := ""
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0)))
			b.WriteString(borderStyle.Render("│"))
		}
		b.WriteString("\n")
		writeRule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			writeRule(&b, widths, "├", "┼", "┤")
			continue
		}

		b.WriteString(borderStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			style := valueStyle
			if i > 0 && strings.HasPrefix(cell, "-") {
				style = negativeStyle
			}
			b.WriteString(style.Render(pad(cell, widths[i], i == 0)))
			b.WriteString(borderStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	writeRule(&b, widths, "╰", "┴", "╯")

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == separatorRow
}

func pad(cell string, width int, left bool) string {
	if left {
		return fmt.Sprintf(" %-*s ", width, cell)
	}
	return fmt.Sprintf(" %*s ", width, cell)
}

func writeRule(b *strings.Builder, widths []int, left, middle, right string) {
	b.WriteString(borderStyle.Render(left))
	for i, w := range widths {
		b.WriteString(borderStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(borderStyle.Render(middle))
		}
	}
	b.WriteString(borderStyle.Render(right))
	b.WriteString("\n")
}
