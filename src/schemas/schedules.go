package schemas

import (
	"time"
)

// CreateReportScheduleRequest represents the request schema for creating a new report schedule.
type CreateReportScheduleRequest struct {
	ReportType string `json:"report_type" validate:"required"`
	Format     string `json:"format"`
	CronTime   string `json:"cron_time" validate:"required"`
	RangeDays  int    `json:"range_days"`
}

// UpdateReportScheduleRequest represents the request schema for updating an existing report schedule.
type UpdateReportScheduleRequest struct {
	ID         uint    `json:"id"`
	ReportType *string `json:"report_type"`
	Format     *string `json:"format"`
	CronTime   *string `json:"cron_time"`
	RangeDays  *int    `json:"range_days"`
	Active     *bool   `json:"active"`
}

// ReportScheduleResponse represents the response schema for report schedule data.
type ReportScheduleResponse struct {
	ID         uint       `json:"id"`
	ReportType string     `json:"report_type"`
	Format     string     `json:"format"`
	CronTime   string     `json:"cron_time"`
	RangeDays  int        `json:"range_days"`
	LastSentAt *time.Time `json:"last_sent_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Active     bool       `json:"active"`
}
