package controllers

import (
	"context"
	"reports/src/schemas"
	"reports/src/services"
	"reports/src/utils"

	"github.com/sirupsen/logrus"
)

type ReportControllerI interface {
	ExportReport(ctx context.Context, input services.ExportInput) (*services.ExportResult, error)
}

type ReportController struct {
	Service services.ReportServiceI
}

func NewReportController(service services.ReportServiceI) *ReportController {
	return &ReportController{Service: service}
}

// ExportReport renders the report described by input. Unknown report types are
// still exported as a "no data" document.
func (rc *ReportController) ExportReport(ctx context.Context, input services.ExportInput) (*services.ExportResult, error) {
	if rc.Service == nil {
		return nil, utils.ServiceUnavailable("report service is not configured")
	}
	if input.Format == "" {
		input.Format = schemas.FormatPDF
	}

	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"report_type": input.ReportType,
		"format":      input.Format,
		"start_date":  input.DateRange.StartDate,
		"end_date":    input.DateRange.EndDate,
	}).Info("exporting report")

	return rc.Service.Export(ctx, input)
}
