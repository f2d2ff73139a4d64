// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. The only recurring task today is the refund
// reconciliation sweep; JobManager keeps the start/stop surface stable as
// more jobs arrive.
package jobs

import (
	"fmt"
	"log/slog"

	"fleetops/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	refundReconciliationJob *RefundReconciliationJob
}

// NewJobManager creates a job manager with every scheduled job wired to its
// command handler.
func NewJobManager(
	reconcileRefundsHandler commands.ReconcileRefundsCommandHandler,
	refundSweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		refundReconciliationJob: NewRefundReconciliationJob(
			reconcileRefundsHandler, refundSweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.refundReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start refund reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.refundReconciliationJob.Stop()
}
