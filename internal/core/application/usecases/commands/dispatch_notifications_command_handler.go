package commands

import (
	"context"

	"oliveflow/internal/core/ports"
)

// DispatchNotificationsCommandHandler drains the outbox through the notifier.
//
// Events are delivered oldest first and marked delivered one by one. When the
// notifier fails, what was delivered so far is committed and the error is
// returned; the failed event stays pending for the next run.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns how many events were delivered.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.Pending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	delivered := 0
	var deliveryErr error
	for _, entry := range pending {
		if deliveryErr = h.notifier.Notify(ctx, entry.Event); deliveryErr != nil {
			break
		}
		if err = outbox.MarkDelivered(ctx, entry.ID); err != nil {
			return 0, err
		}
		delivered++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return delivered, deliveryErr
}
