package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/UpgradeDraft_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule("test", 10*time.Millisecond, job, false)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_RunNow(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 1)}
	sched.Schedule("test", time.Hour, job, true)

	select {
	case <-job.Done:
	case <-time.After(time.Second):
		t.Fatal("job did not run immediately")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&job.RunCount))
}

type fullQueue struct{ attempts int32 }

func (f *fullQueue) TryEnqueue(worker.Job) bool {
	atomic.AddInt32(&f.attempts, 1)
	return false
}

func TestScheduler_FullQueueDoesNotBlock(t *testing.T) {
	q := &fullQueue{}
	sched := New(q)

	sched.Schedule("test", 5*time.Millisecond, &MockJob{}, true)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&q.attempts) >= 3 }, time.Second, 5*time.Millisecond)

	sched.Stop()
	sched.Stop()
}
