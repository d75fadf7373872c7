package services

import (
	"context"
	"encoding/json"
	"fmt"
	"reports/src/clients/backend"
	"reports/src/config"
	"reports/src/schemas"
	"reports/src/services/charts"
	"reports/src/services/pdf"
	"reports/src/services/xlsx"
	"reports/src/utils"
	"reports/src/utils/format"
)

// ReportGenerator turns a decoded payload into a finished file.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, reportType schemas.ReportType, payload schemas.ReportPayload, dateRange schemas.DateRange) ([]byte, error)
}

type ExportInput struct {
	ReportType schemas.ReportType
	Format     schemas.ExportFormat
	DateRange  schemas.DateRange
	// Token is forwarded to the backend when Payload is empty.
	Token   string
	Payload json.RawMessage
}

type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

type ReportServiceI interface {
	Export(ctx context.Context, input ExportInput) (*ExportResult, error)
}

type ReportService struct {
	Backend backend.ClientI
	PDF     ReportGenerator
	XLSX    ReportGenerator
}

// NewReportService wires the PDF and XLSX generators from the report settings.
// Chart images are cached in store.
func NewReportService(cfg *config.Config, client backend.ClientI, store charts.KeyValueStore) (*ReportService, error) {
	formatter, err := format.NewFormatter(cfg.Report.Locale, cfg.Report.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	layout := pdf.DefaultLayout()
	if cfg.Report.ChartWidth > 0 && cfg.Report.ChartHeight > 0 {
		layout.ChartWidthPx = cfg.Report.ChartWidth
		layout.ChartHeightPx = cfg.Report.ChartHeight
	}
	if cfg.Report.Layout.OverflowThreshold > 0 {
		layout.OverflowThreshold = cfg.Report.Layout.OverflowThreshold
	}
	if cfg.Report.Layout.CustomerChunkSize > 0 {
		layout.CustomerChunkSize = cfg.Report.Layout.CustomerChunkSize
	}

	var renderer charts.ChartRenderer = charts.NewRenderer()
	if store != nil {
		renderer = charts.NewCachedRenderer(renderer, store, cfg.Report.ChartCacheTTL)
	}

	return &ReportService{
		Backend: client,
		PDF:     pdf.NewAssembler(renderer, formatter, layout),
		XLSX:    xlsx.NewExporter(formatter),
	}, nil
}

// Export resolves the payload, fetching it when none was supplied, and
// renders it in the requested format.
func (rs *ReportService) Export(ctx context.Context, input ExportInput) (*ExportResult, error) {
	logger := utils.LoggerFromContext(ctx).WithField("report_type", input.ReportType)

	if _, _, err := utils.ParseDateRange(input.DateRange.StartDate, input.DateRange.EndDate); err != nil {
		return nil, utils.UnprocessableEntity(err.Error())
	}

	raw := input.Payload
	if len(raw) == 0 && input.ReportType.Known() {
		if rs.Backend == nil {
			return nil, utils.ServiceUnavailable("report backend is not configured")
		}
		fetched, err := rs.Backend.GetReportData(ctx, input.Token, input.ReportType, input.DateRange)
		if err != nil {
			return nil, err
		}
		raw = fetched
	}

	payload, err := schemas.DecodePayload(input.ReportType, raw)
	if err != nil {
		return nil, utils.UnprocessableEntity(fmt.Sprintf("invalid report payload: %v", err))
	}

	generator, contentType := rs.PDF, utils.ContentTypePDF
	if input.Format == schemas.FormatXLSX {
		generator, contentType = rs.XLSX, utils.ContentTypeXLSX
	}

	data, err := generator.GenerateReport(ctx, input.ReportType, payload, input.DateRange)
	if err != nil {
		logger.WithError(err).Error("report generation failed")
		return nil, err
	}

	return &ExportResult{
		Data:        data,
		Filename:    Filename(input.ReportType, input.Format, input.DateRange),
		ContentType: contentType,
	}, nil
}

// Filename is laporan-{type}-{start}-{end}.{ext}.
func Filename(reportType schemas.ReportType, exportFormat schemas.ExportFormat, dateRange schemas.DateRange) string {
	if exportFormat == "" {
		exportFormat = schemas.FormatPDF
	}
	return fmt.Sprintf("laporan-%s-%s-%s.%s", reportType, dateRange.StartDate, dateRange.EndDate, exportFormat.Extension())
}
