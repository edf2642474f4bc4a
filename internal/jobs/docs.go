// Package jobs provides the scheduled background tasks of the service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-precision
// schedules:
//
//  1. NotificationDispatchJob delivers pending outbox events through the
//     Notifier port (OUTBOX_SCHEDULE, every five seconds by default).
//  2. ConservationAuditJob lists offers whose initial quantity differs from
//     available plus bought and logs each one (AUDIT_SCHEDULE, every ten
//     minutes by default).
//
// JobManager starts and stops both:
//
//	jobManager := jobs.NewJobManager(dispatchJob, auditJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Each job also exposes Run for a single synchronous pass.
package jobs
