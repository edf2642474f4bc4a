package jobs

import (
	"context"
	"log/slog"

	"oliveflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule drains the outbox every five seconds.
const DefaultDispatchSchedule = "*/5 * * * * *"

// DefaultDispatchBatchSize bounds one outbox run.
const DefaultDispatchBatchSize = 100

type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (int, error)
}

// DispatchRecorder counts deliveries.
type DispatchRecorder interface {
	NotificationsDelivered(n int)
	NotificationFailed()
}

// NotificationDispatchJob hands pending outbox events to the notifier.
type NotificationDispatchJob struct {
	handler   DispatchHandler
	recorder  DispatchRecorder
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationDispatchJob(
	handler DispatchHandler,
	recorder DispatchRecorder,
	schedule string,
	logger *slog.Logger,
) *NotificationDispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	return &NotificationDispatchJob{
		handler:   handler,
		recorder:  recorder,
		schedule:  schedule,
		batchSize: DefaultDispatchBatchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "schedule", j.schedule)
	return nil
}

// Run performs one dispatch pass.
func (j *NotificationDispatchJob) Run(ctx context.Context) {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job misconfigured", "error", err)
		return
	}

	delivered, err := j.handler.Handle(ctx, cmd)
	if delivered > 0 {
		j.recorder.NotificationsDelivered(delivered)
		j.logger.DebugContext(ctx, "Notifications delivered", "count", delivered)
	}
	if err != nil {
		j.recorder.NotificationFailed()
		j.logger.ErrorContext(ctx, "Notification dispatch job failed", "delivered", delivered, "error", err)
	}
}

func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
