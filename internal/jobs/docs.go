// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - drains committed outbox events to the realtime publishers, woken by
// Postgres notifications and polled every 2 seconds as a fallback
// 2. AutoAssignJob - when enabled, assigns the oldest order waiting for a courier to the
// nearest available courier every 5 seconds
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger, relayJob, autoAssignJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The auto assign job logs expected outcomes (nothing waiting, no courier in range,
//     lost race) at debug level
//   - The relay stops a drain at the first publish failure; the event stays in the outbox
//     and is retried on the next run
//   - Failed job starts stop the jobs already running
package jobs
