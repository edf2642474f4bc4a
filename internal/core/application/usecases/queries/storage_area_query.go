package queries

import (
	"errors"
	"fmt"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"
)

var ErrListStorageAreasQueryIsNotConstructed = errors.New(
	"ListStorageAreasQuery must be created via NewListStorageAreasQuery constructor",
)

// ListStorageAreasQuery lists the storage areas of a mill or of a farmer.
type ListStorageAreasQuery struct {
	owner kernel.Party

	guard guard.ConstructorGuard
}

func NewListStorageAreasQuery(owner kernel.Party) (ListStorageAreasQuery, error) {
	if err := owner.Validate(); err != nil {
		return ListStorageAreasQuery{}, err
	}
	if owner.Kind() != kernel.MillParty && owner.Kind() != kernel.FarmerParty {
		return ListStorageAreasQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"storage area owner", fmt.Errorf("a %s has no storage areas", owner.Kind()))
	}
	return ListStorageAreasQuery{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStorageAreasQuery) Validate() error {
	return q.guard.Validate(ErrListStorageAreasQueryIsNotConstructed)
}

func (q ListStorageAreasQuery) Owner() kernel.Party { return q.owner }

type StorageAreaView struct {
	ID             kernel.ID
	Owner          kernel.Party
	LocalType      string
	Address        string
	Location       *facility.Coordinates
	ContainerType  string
	ContainerCount int
}
