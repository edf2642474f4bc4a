package jobs

import (
	"context"
	"log/slog"

	"oliveflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultAuditSchedule runs the audit every ten minutes.
const DefaultAuditSchedule = "0 */10 * * * *"

type UnbalancedOffersHandler interface {
	Handle(ctx context.Context, query queries.UnbalancedOffersQuery) ([]queries.OfferBalanceQueryResponse, error)
}

// AuditRecorder publishes the number of unbalanced offers.
type AuditRecorder interface {
	UnbalancedOffers(n int)
}

// ConservationAuditJob looks for offers whose initial quantity is not the
// sum of what is available and what was bought, and logs each of them.
type ConservationAuditJob struct {
	handler  UnbalancedOffersHandler
	recorder AuditRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewConservationAuditJob(
	handler UnbalancedOffersHandler,
	recorder AuditRecorder,
	schedule string,
	logger *slog.Logger,
) *ConservationAuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	return &ConservationAuditJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "conservation_audit_job"),
	}
}

func (j *ConservationAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Conservation audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit and returns the offers found unbalanced.
func (j *ConservationAuditJob) Run(ctx context.Context) []queries.OfferBalanceQueryResponse {
	unbalanced, err := j.handler.Handle(ctx, queries.NewUnbalancedOffersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Conservation audit job failed", "error", err)
		return nil
	}

	j.recorder.UnbalancedOffers(len(unbalanced))
	for _, b := range unbalanced {
		j.logger.WarnContext(ctx, "Offer quantities do not add up",
			"offer_id", b.OfferID,
			"code", b.Code,
			"status", b.Status,
			"initial", b.Initial,
			"available", b.Available,
			"bought", b.Bought,
		)
	}
	return unbalanced
}

func (j *ConservationAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Conservation audit job stopped")
}
