package ports

import (
	"context"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
)

type MillRepository interface {
	Add(ctx context.Context, mill *facility.OilMill) error
	Get(ctx context.Context, id kernel.ID) (*facility.OilMill, error)

	// GetByManager returns the mill run by the given actor. A manager runs at
	// most one mill.
	GetByManager(ctx context.Context, managerID kernel.UUID) (*facility.OilMill, error)
}

type GroveRepository interface {
	Add(ctx context.Context, grove *facility.OliveGrove) error
	Get(ctx context.Context, id kernel.ID) (*facility.OliveGrove, error)
}

type MachineRepository interface {
	Add(ctx context.Context, machine *facility.Machine) error
	Get(ctx context.Context, id kernel.ID) (*facility.Machine, error)
	Delete(ctx context.Context, id kernel.ID) error
}

type StorageAreaRepository interface {
	Add(ctx context.Context, area *facility.StorageArea) error
	Get(ctx context.Context, id kernel.ID) (*facility.StorageArea, error)
}
