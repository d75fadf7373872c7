package scheduler_test

import (
	"context"
	"reports/src/scheduler"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledTaskRuns(t *testing.T) {
	ran := make(chan struct{}, 1)
	task, err := scheduler.NewScheduledTask("@every 1s", nil, func(ctx context.Context) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer task.Cancel()

	assert.WithinDuration(t, time.Now().Add(time.Second), task.Next(), 2*time.Second)

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run within 5 seconds")
	}
}

func TestScheduledTaskCancel(t *testing.T) {
	var runs int32
	task, err := scheduler.NewScheduledTask("@every 1s", nil, func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	})
	require.NoError(t, err)

	task.Cancel()
	time.Sleep(1500 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&runs))
}

func TestScheduledTaskInvalidCron(t *testing.T) {
	_, err := scheduler.NewScheduledTask("invalid-cron", nil, func(context.Context) {})
	assert.Error(t, err)
}
