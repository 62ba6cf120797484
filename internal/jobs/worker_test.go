package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWorkerRunsEnqueuedJobs(t *testing.T) {
	w := NewWorker(2)
	defer w.Shutdown()

	var ran int64
	for i := 0; i < 5; i++ {
		w.Enqueue(func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	waitFor(t, func() bool { return atomic.LoadInt64(&ran) == 5 })
	waitFor(t, func() bool { return w.GetStats().CompletedJobs == 5 })
	assert.Equal(t, int64(0), w.GetStats().FailedJobs)
}

func TestWorkerTracksFailures(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.Enqueue(func(ctx context.Context) error {
		return errors.New("boom")
	})

	waitFor(t, func() bool { return w.GetStats().FailedJobs == 1 })
	// failed jobs are never counted as completed
	assert.Equal(t, int64(0), w.GetStats().CompletedJobs)
}

func TestWorkerRecoversFromPanic(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.Enqueue(func(ctx context.Context) error {
		panic("unexpected")
	})
	w.Enqueue(func(ctx context.Context) error {
		return nil
	})

	waitFor(t, func() bool { return w.GetStats().CompletedJobs == 1 })
	assert.Equal(t, int64(1), w.GetStats().FailedJobs)
	assert.Equal(t, 0, w.GetStats().ActiveJobs)
}

func TestWorkerScheduleEvery(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	var runs int64
	w.ScheduleEvery(20*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	})

	waitFor(t, func() bool { return atomic.LoadInt64(&runs) >= 2 })
}

func TestWorkerShutdownStopsScheduler(t *testing.T) {
	w := NewWorker(1)

	var runs int64
	w.ScheduleEvery(10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	})

	waitFor(t, func() bool { return atomic.LoadInt64(&runs) >= 1 })
	w.Shutdown()

	after := atomic.LoadInt64(&runs)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&runs))
}
