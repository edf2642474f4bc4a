// Package ports defines the contracts between the olive workflow core and its
// infrastructure: repositories, the unit of work, notification delivery and
// report storage.
package ports

import (
	"context"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
)

// OfferRepository persists sale offers of olives and oil.
type OfferRepository interface {
	// Add inserts a new offer, assigns its identity and stamps its code in the
	// same transaction.
	Add(ctx context.Context, offer *trade.Offer) error

	// Update writes the offer back if the stored version still matches the one
	// it was read with, then bumps the version. A mismatch is a retryable
	// conflict and nothing is written.
	Update(ctx context.Context, offer *trade.Offer) error

	// Get returns the offer or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*trade.Offer, error)
}

// RequestRepository persists purchase requests placed on offers.
type RequestRepository interface {
	Add(ctx context.Context, request *trade.Request) error
	Update(ctx context.Context, request *trade.Request) error
	Get(ctx context.Context, id kernel.ID) (*trade.Request, error)

	// ListOpenByOffer returns the Pending and Approved requests of an offer,
	// oldest first.
	ListOpenByOffer(ctx context.Context, offerID kernel.ID) ([]*trade.Request, error)
}

type NeedRepository interface {
	Add(ctx context.Context, need *trade.Need) error
	Update(ctx context.Context, need *trade.Need) error
	Get(ctx context.Context, id kernel.ID) (*trade.Need, error)
}
