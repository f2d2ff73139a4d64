package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fleetops/internal/core/application/usecases/commands"
)

// RefundReconciliationJob periodically sweeps cancelled deliveries whose
// refund never reached the customer wallet and settles them. The sweep is
// idempotent, so the schedule can be as aggressive as operations want.
type RefundReconciliationJob struct {
	handler  commands.ReconcileRefundsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewRefundReconciliationJob creates the reconciliation job. The schedule is
// a six-field cron expression with a seconds column.
func NewRefundReconciliationJob(
	handler commands.ReconcileRefundsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *RefundReconciliationJob {
	return &RefundReconciliationJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "refund_reconciliation_job"),
	}
}

// Start schedules the sweep and begins running it.
func (j *RefundReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		settled, handleErr := j.handler.Handle(ctx, commands.NewReconcileRefundsCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Refund reconciliation sweep failed", "error", handleErr)
			return
		}
		if settled > 0 {
			j.logger.InfoContext(ctx, "Refund reconciliation sweep settled refunds", "settled", settled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refund reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job. Waits for an in-flight sweep to finish.
func (j *RefundReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Refund reconciliation job stopped")
}
