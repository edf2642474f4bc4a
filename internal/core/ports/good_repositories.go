package ports

import (
	"context"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
)

// HarvestRepository persists harvests together with their remaining stock.
type HarvestRepository interface {
	Add(ctx context.Context, harvest *good.Harvest) error
	// Update writes the remaining stock back.
	Update(ctx context.Context, harvest *good.Harvest) error
	Get(ctx context.Context, id kernel.ID) (*good.Harvest, error)
}

// PurchasedOliveRepository persists the olives a mill bought.
type PurchasedOliveRepository interface {
	Add(ctx context.Context, olives *good.PurchasedOlive) error
	// Update records the operation that consumed the olives. It fails with a
	// conflict when another operation consumed them first.
	Update(ctx context.Context, olives *good.PurchasedOlive) error
	Get(ctx context.Context, id kernel.ID) (*good.PurchasedOlive, error)
	GetByRequest(ctx context.Context, requestID kernel.ID) (*good.PurchasedOlive, error)
}

type OilProductRepository interface {
	Add(ctx context.Context, product *good.OilProduct) error
	Update(ctx context.Context, product *good.OilProduct) error
	Get(ctx context.Context, id kernel.ID) (*good.OilProduct, error)
}
