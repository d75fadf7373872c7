// Package pdf lays out report payloads as paginated A4 documents.
package pdf

import (
	"context"
	"fmt"
	"reports/src/schemas"
	"reports/src/services/charts"
	"reports/src/utils"
	"reports/src/utils/format"
	"time"
)

// Assembler turns a decoded payload into a paginated report document.
type Assembler struct {
	Charts    charts.ChartRenderer
	Formatter *format.Formatter
	Layout    Layout
	Now       func() time.Time
}

// NewAssembler returns an Assembler stamping footers with the current time.
func NewAssembler(renderer charts.ChartRenderer, formatter *format.Formatter, layout Layout) *Assembler {
	return &Assembler{
		Charts:    renderer,
		Formatter: formatter,
		Layout:    layout,
		Now:       time.Now,
	}
}

// GenerateReport returns the finished PDF for payload.
func (a *Assembler) GenerateReport(ctx context.Context, reportType schemas.ReportType, payload schemas.ReportPayload, dateRange schemas.DateRange) ([]byte, error) {
	doc, err := a.Generate(ctx, reportType, payload, dateRange)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// Generate builds the document. Chart failures are logged and the report is
// built without the chart; only document errors are returned.
func (a *Assembler) Generate(ctx context.Context, reportType schemas.ReportType, payload schemas.ReportPayload, dateRange schemas.DateRange) (*Document, error) {
	logger := utils.LoggerFromContext(ctx).WithField("report_type", reportType)
	if payload == nil {
		payload = schemas.NewPayload(reportType)
	}

	var chart []byte
	if reportType.ChartEligible() && a.Charts != nil {
		image, err := a.Charts.RenderChart(ctx, payload, reportType, a.Layout.ChartWidthPx, a.Layout.ChartHeightPx)
		if err != nil {
			logger.WithError(err).Warn("chart rendering failed, continuing without chart")
		} else {
			chart = image
		}
	}

	doc, err := a.build(reportType, payload, dateRange, chart)
	if err != nil && chart != nil {
		logger.WithError(err).Warn("chart could not be embedded, continuing without chart")
		doc, err = a.build(reportType, payload, dateRange, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s report: %w", reportType, err)
	}

	logger.WithField("pages", doc.PageCount()).Debug("report generated")
	return doc, nil
}

func (a *Assembler) build(reportType schemas.ReportType, payload schemas.ReportPayload, dateRange schemas.DateRange, chart []byte) (*Document, error) {
	b := NewBuilder(a.Layout)
	title := reportType.Title()

	b.SetMetadata(title, fmt.Sprintf("Periode: %s sampai %s", dateRange.StartDate, dateRange.EndDate))
	b.DrawHeader(reportType.Label(), fmt.Sprintf("Periode: %s sampai %s",
		a.Formatter.Date(dateRange.StartDate), a.Formatter.Date(dateRange.EndDate)))

	startY := a.Layout.ContentTop
	if chart != nil {
		if err := b.DrawChart(chart); err != nil {
			return nil, err
		}
		startY = a.Layout.ChartStartY
	}

	s := &sections{b: b, f: a.Formatter, layout: a.Layout, title: title}
	switch p := payload.(type) {
	case *schemas.SalesPayload:
		s.sales(p, startY)
	case *schemas.IncomeExpensePayload:
		s.incomeExpense(p, startY)
	case *schemas.ProductsPayload:
		s.products(p, startY)
	case *schemas.CustomersPayload:
		s.customers(p, startY)
	case *schemas.TransactionsPayload:
		s.transactions(p, startY)
	default:
		b.NoData("Tidak ada data tersedia")
	}

	b.StylePages()
	b.StampFooters(a.Formatter.Timestamp(a.now()))
	return b.Finish()
}

func (a *Assembler) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
