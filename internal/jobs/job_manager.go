package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs   []Job
	logger *slog.Logger
}

// NewJobManager creates a manager for the given jobs. Nil jobs are skipped, so optional
// jobs can be passed unconditionally.
func NewJobManager(logger *slog.Logger, jobs ...Job) *JobManager {
	enabled := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j != nil {
			enabled = append(enabled, j)
		}
	}
	return &JobManager{jobs: enabled, logger: logger.With("component", "job_manager")}
}

// StartAll starts the jobs in order.
// If one fails to start, the already started ones are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start %s: %w", j.Name(), err)
		}
	}
	return nil
}

// StopAll stops all jobs gracefully, in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
