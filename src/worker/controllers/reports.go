package controllers

import (
	"context"
	"errors"
	"fmt"
	"reports/src/models"
	"reports/src/scheduler"
	"reports/src/schemas"
	"reports/src/services"
	"reports/src/utils"
	"time"

	"github.com/sirupsen/logrus"
)

const runTimeout = 2 * time.Minute

// LoadAllReportSchedule registers every active schedule and drops the ones
// that were deactivated or deleted since the last load.
func (c *Controller) LoadAllReportSchedule(ctx context.Context) error {
	if c.Repo == nil {
		return utils.ServiceUnavailable("report schedules require a database")
	}

	reportSchedules, err := c.Repo.List(ctx, true)
	if err != nil {
		return err
	}

	active := make(map[uint]bool, len(reportSchedules))
	for _, reportSchedule := range reportSchedules {
		active[reportSchedule.ID] = true
		if err := c.ScheduleReport(ctx, reportSchedule, c.RunSchedule); err != nil {
			return fmt.Errorf("schedule %d: %w", reportSchedule.ID, err)
		}
	}
	for _, id := range c.ScheduledIDs() {
		if !active[id] {
			c.Unschedule(id)
		}
	}

	c.Logger.WithField("schedules", len(reportSchedules)).Info("report schedules loaded")
	return nil
}

// LoadReportScheduleByID registers one schedule, or removes it when inactive.
func (c *Controller) LoadReportScheduleByID(ctx context.Context, ID uint) error {
	if c.Repo == nil {
		return utils.ServiceUnavailable("report schedules require a database")
	}

	reportSchedule, err := c.Repo.GetByID(ctx, ID)
	if err != nil {
		return err
	}
	if !reportSchedule.Active {
		c.Unschedule(ID)
		return nil
	}
	return c.ScheduleReport(ctx, reportSchedule, c.RunSchedule)
}

// ScheduleReport handles the scheduling and re-scheduling of report tasks.
// The lock is held from removing the old task to storing the new one so
// concurrent calls for the same id never leave an orphaned task running.
func (c *Controller) ScheduleReport(_ context.Context, reportSchedule *models.ReportSchedule, taskFunc func(context.Context, *models.ReportSchedule) error) error {
	schedule := *reportSchedule
	logger := c.Logger.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"report_type": schedule.ReportType,
	})

	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	c.unscheduleLocked(schedule.ID)
	newTask, err := scheduler.NewScheduledTask(schedule.CronTime, c.Logger, func(ctx context.Context) {
		run := schedule
		if err := taskFunc(utils.WithLogger(ctx, logger), &run); err != nil {
			logger.WithError(err).Error("scheduled report failed")
		}
	})
	if err != nil {
		return err
	}
	c.Schedulers[schedule.ID] = newTask

	logger.WithField("next_run", newTask.Next()).Info("report scheduled")
	return nil
}

func (c *Controller) Unschedule(id uint) {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	c.unscheduleLocked(id)
}

// unscheduleLocked requires SchedulerMutex.
func (c *Controller) unscheduleLocked(id uint) {
	if existingTask, exists := c.Schedulers[id]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, id)
	}
}

// RunSchedule exports the trailing range of the schedule, archives the file
// and records the send time.
func (c *Controller) RunSchedule(ctx context.Context, reportSchedule *models.ReportSchedule) error {
	if c.ReportService == nil {
		return errors.New("report service is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	now := c.Now()
	start, end := utils.TrailingRange(now, reportSchedule.RangeDays)
	reportType, _ := schemas.ParseReportType(reportSchedule.ReportType)
	exportFormat, ok := schemas.ParseExportFormat(reportSchedule.Format)
	if !ok {
		exportFormat = schemas.FormatPDF
	}

	result, err := c.ReportService.Export(ctx, services.ExportInput{
		ReportType: reportType,
		Format:     exportFormat,
		DateRange: schemas.DateRange{
			StartDate: start.Format(utils.ShortDashDateLayout),
			EndDate:   end.Format(utils.ShortDashDateLayout),
		},
		Token: c.ServiceToken,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	logger := utils.LoggerFromContext(ctx).WithField("filename", result.Filename)
	if c.Archive != nil {
		key := ArchiveKey(reportType, exportFormat, now)
		location, err := c.Archive.Upload(ctx, key, result.ContentType, result.Data)
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		logger = logger.WithField("location", location)
	} else {
		logger.Warn("no report archive configured, report discarded")
	}

	if c.Repo != nil {
		if err := c.Repo.MarkSent(ctx, reportSchedule.ID, now); err != nil {
			return fmt.Errorf("update last_sent_at: %w", err)
		}
	}
	logger.Info("scheduled report sent")
	return nil
}

// ArchiveKey is reports/{type}/{date}.{ext}.
func ArchiveKey(reportType schemas.ReportType, exportFormat schemas.ExportFormat, at time.Time) string {
	return fmt.Sprintf("reports/%s/%s.%s", reportType, at.Format(utils.ShortDashDateLayout), exportFormat.Extension())
}
