package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ScheduledTask runs one job on its own cron instance until cancelled.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduledTask parses cronSpec (standard five fields or descriptors such
// as @daily) and starts running taskFunc. The context passed to taskFunc is
// cancelled by Cancel. Panics in taskFunc are recovered and logged.
func NewScheduledTask(cronSpec string, logger *logrus.Logger, taskFunc func(ctx context.Context)) (*ScheduledTask, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logger)),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	ctx, cancel := context.WithCancel(context.Background())
	task := &ScheduledTask{
		cron:   c,
		ctx:    ctx,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		if ctx.Err() != nil {
			return
		}
		taskFunc(ctx)
	})
	if err != nil {
		cancel()
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Next is the time of the next scheduled run.
func (s *ScheduledTask) Next() time.Time {
	return s.cron.Entry(s.cronID).Next
}

func (s *ScheduledTask) Cancel() {
	s.cancel()
	s.cron.Remove(s.cronID)
	s.cron.Stop()
}
