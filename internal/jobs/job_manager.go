package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	dispatchJob *NotificationDispatchJob
	auditJob    *ConservationAuditJob
}

func NewJobManager(dispatchJob *NotificationDispatchJob, auditJob *ConservationAuditJob) *JobManager {
	return &JobManager{
		dispatchJob: dispatchJob,
		auditJob:    auditJob,
	}
}

// StartAll starts every job. If one fails to start, the ones already
// running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}

	if err := jm.auditJob.Start(); err != nil {
		jm.dispatchJob.Stop()
		return fmt.Errorf("failed to start conservation audit job: %w", err)
	}

	return nil
}

// StopAll stops every job and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.auditJob.Stop()
	jm.dispatchJob.Stop()
}
