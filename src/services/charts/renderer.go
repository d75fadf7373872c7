// Package charts renders the PNG chart embedded above report tables.
package charts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"reports/src/schemas"
	"reports/src/services/analysis"
	"reports/src/utils"
	"reports/src/utils/format"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// maxProductBars caps the products chart to the best sellers by revenue.
const maxProductBars = 12

var ErrNothingToPlot = errors.New("nothing to plot")

// ChartRenderer produces a PNG for a chart-eligible report.
type ChartRenderer interface {
	RenderChart(ctx context.Context, payload schemas.ReportPayload, reportType schemas.ReportType, width, height int) ([]byte, error)
}

// Renderer draws bar charts with go-chart.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

type bar struct {
	label string
	value decimal.Decimal
	color string
}

func (r *Renderer) RenderChart(ctx context.Context, payload schemas.ReportPayload, reportType schemas.ReportType, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bars []bar
	switch p := payload.(type) {
	case *schemas.SalesPayload:
		bars = salesBars(p)
	case *schemas.IncomeExpensePayload:
		bars = incomeExpenseBars(p)
	case *schemas.ProductsPayload:
		bars = productBars(p)
	default:
		return nil, fmt.Errorf("no chart for %s reports", reportType)
	}

	if len(bars) == 0 {
		return nil, ErrNothingToPlot
	}
	allZero := true
	for _, b := range bars {
		if !b.value.IsZero() {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, ErrNothingToPlot
	}

	return renderBars(reportType.Title(), bars, width, height)
}

func salesBars(p *schemas.SalesPayload) []bar {
	days := analysis.DailyTotals(p.Data)
	bars := make([]bar, 0, len(days))
	for i, day := range days {
		label := day.Date
		if t, ok := format.ParseDate(day.Date); ok {
			label = t.Format("02/01")
		}
		bars = append(bars, bar{label: label, value: day.Total, color: utils.GetChartColor(i)})
	}
	return bars
}

func incomeExpenseBars(p *schemas.IncomeExpensePayload) []bar {
	return []bar{
		{label: "Pemasukan", value: p.Report.TotalIncome, color: "#a3d977"},
		{label: "Pengeluaran", value: p.Report.TotalExpense, color: "#ff8080"},
		{label: "Laba Bersih", value: p.Report.NetIncome, color: "#80b3ff"},
	}
}

func productBars(p *schemas.ProductsPayload) []bar {
	rows := make([]schemas.ProductRow, len(p.Data))
	copy(rows, p.Data)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})
	if len(rows) > maxProductBars {
		rows = rows[:maxProductBars]
	}

	bars := make([]bar, 0, len(rows))
	for i, row := range rows {
		label := row.Name
		if label == "" {
			label = row.Code
		}
		bars = append(bars, bar{label: label, value: row.Revenue, color: utils.GetChartColor(i)})
	}
	return bars
}

func renderBars(title string, bars []bar, width, height int) ([]byte, error) {
	slot := (width - 80) / len(bars)
	barWidth := slot * 2 / 3
	if barWidth < 4 {
		barWidth = 4
	}

	// The y range always spans zero.
	var lo, hi float64
	values := make([]chart.Value, 0, len(bars))
	for _, b := range bars {
		v := b.value.InexactFloat64()
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		color := drawing.ColorFromHex(strings.TrimPrefix(b.color, "#"))
		values = append(values, chart.Value{
			Label: b.label,
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: slot - barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Bars:       values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
