package models

import (
	"time"
)

type ReportSchedule struct {
	ID         uint       `gorm:"primaryKey;column:id"`
	ReportType string     `gorm:"column:report_type;not null"`
	Format     string     `gorm:"column:format;not null;default:pdf"`
	CronTime   string     `gorm:"column:cron_time;not null"`
	RangeDays  int        `gorm:"column:range_days;not null;default:1"`
	LastSentAt *time.Time `gorm:"column:last_sent_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	Active     bool       `gorm:"column:active;not null;default:true"`
}

func (ReportSchedule) TableName() string {
	return "report_schedules"
}
