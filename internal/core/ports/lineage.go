package ports

import (
	"context"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/services"
)

// LineageReader loads the part of the lineage graph an oil product depends
// on: its mother chain, their operations and everything those operations
// were sourced from.
type LineageReader interface {
	Load(ctx context.Context, productID kernel.ID) (*services.Arena, error)
}
