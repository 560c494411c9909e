// Package chart renders the monthly records as a two-panel PNG: the stacked
// monthly outlay against rent on top, balances and running totals below.
package chart

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default image size.
const (
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 10 * vg.Inch
)

// Options control the rendered image.
type Options struct {
	// PurchaseYear places the x axis on calendar years.
	PurchaseYear int
	// TermYears limits the chart to the first TermYears*12 records.
	TermYears int
	Width     vg.Length
	Height    vg.Length
}

// Render draws the records and writes the PNG to w.
func Render(w io.Writer, records []forecast.MonthRecord, opts Options) error {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if n := opts.TermYears * constants.MonthsPerYear; n > 0 && n < len(records) {
		records = records[:n]
	}
	if len(records) == 0 {
		return fmt.Errorf("no records to chart")
	}

	monthly, err := monthlyPlot(records, opts.PurchaseYear)
	if err != nil {
		return err
	}
	totals, err := totalsPlot(records, opts.PurchaseYear)
	if err != nil {
		return err
	}

	img := vgimg.New(opts.Width, opts.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 4 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{monthly}, {totals}}
	canvases := plot.Align(plots, tiles, dc)
	monthly.Draw(canvases[0][0])
	totals.Draw(canvases[1][0])

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func monthlyPlot(records []forecast.MonthRecord, purchaseYear int) (*plot.Plot, error) {
	p := newPlot("Monthly", "Amount per month")

	// Each stacked band is drawn as the cumulative sum filled down to zero,
	// so the outermost band goes first and the others paint over it.
	stack := forecast.MonthlyStackFields
	cumulative := make([]plotter.XYs, len(stack))
	for i := range stack {
		cumulative[i] = make(plotter.XYs, len(records))
	}
	for j, r := range records {
		sum := 0.0
		for i, f := range stack {
			sum += f.Value(r)
			cumulative[i][j].X = calendarTime(purchaseYear, r)
			cumulative[i][j].Y = sum
		}
	}

	bands := make([]*plotter.Line, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		line, err := plotter.NewLine(cumulative[i])
		if err != nil {
			return nil, fmt.Errorf("failed to build %s band: %w", stack[i].Name, err)
		}
		line.FillColor = plotutil.SoftColors[i%len(plotutil.SoftColors)]
		line.LineStyle.Width = vg.Points(0.5)
		line.LineStyle.Color = plotutil.DarkColors[i%len(plotutil.DarkColors)]
		p.Add(line)
		bands[i] = line
	}
	for i, f := range stack {
		p.Legend.Add(f.Label(), bands[i])
	}

	for i, f := range forecast.MonthlyLineFields {
		line, err := fieldLine(records, purchaseYear, f)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(f.Label(), line)
	}

	p.Y.Min = 0
	return p, nil
}

func totalsPlot(records []forecast.MonthRecord, purchaseYear int) (*plot.Plot, error) {
	p := newPlot("Totals", "Amount")
	p.Add(plotter.NewGrid())

	for i, f := range forecast.TotalFields {
		line, err := fieldLine(records, purchaseYear, f)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(f.Label(), line)
	}
	return p, nil
}

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

func fieldLine(records []forecast.MonthRecord, purchaseYear int, f forecast.Field) (*plotter.Line, error) {
	points := make(plotter.XYs, len(records))
	for j, r := range records {
		points[j].X = calendarTime(purchaseYear, r)
		points[j].Y = f.Value(r)
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s line: %w", f.Name, err)
	}
	return line, nil
}

// calendarTime maps a record to a fractional calendar year.
func calendarTime(purchaseYear int, r forecast.MonthRecord) float64 {
	return float64(purchaseYear+r.Year) + float64(r.Month)/constants.MonthsPerYear
}
