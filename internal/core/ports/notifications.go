package ports

import (
	"context"
	"io"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
)

// OutboxEntry is a stored event waiting for delivery.
type OutboxEntry struct {
	ID    kernel.ID
	Event notification.Event
}

// OutboxRepository keeps notification events in the same transaction as the
// transition that raised them.
type OutboxRepository interface {
	Add(ctx context.Context, event notification.Event) error
	// Pending returns up to limit undelivered events, oldest first.
	Pending(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkDelivered(ctx context.Context, id kernel.ID) error
}

// Notifier delivers one event to its recipient.
type Notifier interface {
	Notify(ctx context.Context, event notification.Event) error
}

// ReportStore keeps the files attached to analysis operations.
type ReportStore interface {
	// Put stores body under key, replacing any previous object.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// Get opens the object stored under key. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
