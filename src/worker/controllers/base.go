package controllers

import (
	"context"
	"reports/src/repositories"
	"reports/src/scheduler"
	"reports/src/services"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportArchiver stores a generated report and returns its location.
type ReportArchiver interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Controller struct {
	Repo           repositories.ReportScheduleRepository
	ReportService  services.ReportServiceI
	Archive        ReportArchiver
	ServiceToken   string
	Logger         *logrus.Logger
	Now            func() time.Time
	SchedulerMutex sync.Mutex
	Schedulers     map[uint]*scheduler.ScheduledTask
}

func NewController(db *gorm.DB, reportService services.ReportServiceI, archive ReportArchiver, serviceToken string, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	var repo repositories.ReportScheduleRepository
	if db != nil {
		repo = repositories.NewReportScheduleRepository(db)
	}
	return &Controller{
		Repo:          repo,
		ReportService: reportService,
		Archive:       archive,
		ServiceToken:  serviceToken,
		Logger:        logger,
		Now:           time.Now,
		Schedulers:    map[uint]*scheduler.ScheduledTask{},
	}
}

// ScheduledIDs returns the ids of the schedules currently registered.
func (c *Controller) ScheduledIDs() []uint {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	ids := make([]uint, 0, len(c.Schedulers))
	for id := range c.Schedulers {
		ids = append(ids, id)
	}
	return ids
}

// Stop cancels every registered schedule.
func (c *Controller) Stop() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	for id, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, id)
	}
}
