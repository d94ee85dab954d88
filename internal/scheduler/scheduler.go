package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/UpgradeDraft_Go/internal/logger"
	"github.com/osse101/UpgradeDraft_Go/internal/worker"
)

const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgJobSkipped   = "Scheduled job skipped, worker queue full"
)

// Enqueuer is the part of the worker pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool Enqueuer
	quit       chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. With runNow the job
// is also handed to the pool once right away.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job, runNow bool) {
	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", name, "interval", interval.String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if runNow {
			s.submit(name, job)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.submit(name, job)
			case <-s.quit:
				return
			}
		}
	}()
}

// submit never blocks; a tick is dropped while the previous run is still queued
func (s *Scheduler) submit(name string, job worker.Job) {
	if !s.workerPool.TryEnqueue(job) {
		logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", name)
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}
