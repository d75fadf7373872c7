package controllers

import (
	"reports/src/services"

	"gorm.io/gorm"
)

type Controller struct {
	*ReportController
	*ReportScheduleController
}

// NewController wires the report and schedule controllers. db may be nil when
// no SQL database is configured; schedule operations then fail with 503.
func NewController(db *gorm.DB, reportService services.ReportServiceI) *Controller {
	return &Controller{
		ReportController:         NewReportController(reportService),
		ReportScheduleController: NewReportScheduleController(db),
	}
}
