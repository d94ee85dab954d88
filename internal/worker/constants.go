package worker

import "time"

// DefaultJobTimeout bounds a single job run when the pool has no timeout set
const DefaultJobTimeout = 5 * time.Minute

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerJobCompleted = "Worker job completed"
	LogMsgWorkerPoolStarted  = "Worker pool started"
	LogMsgWorkerPoolStopped  = "Worker pool stopped"
	LogMsgWorkerQueueFull    = "Worker queue full, job dropped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
