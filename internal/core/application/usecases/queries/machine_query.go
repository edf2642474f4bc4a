package queries

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var (
	ErrListMachinesQueryIsNotConstructed = errors.New(
		"ListMachinesQuery must be created via NewListMachinesQuery constructor",
	)
	ErrGetMachineQueryIsNotConstructed = errors.New(
		"GetMachineQuery must be created via NewGetMachineQuery constructor",
	)
)

// ListMachinesQuery lists the machines installed at one mill.
type ListMachinesQuery struct {
	millID kernel.ID

	guard guard.ConstructorGuard
}

func NewListMachinesQuery(millID kernel.ID) (ListMachinesQuery, error) {
	if err := millID.Validate(); err != nil {
		return ListMachinesQuery{}, err
	}
	return ListMachinesQuery{millID: millID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMachinesQuery) Validate() error {
	return q.guard.Validate(ErrListMachinesQueryIsNotConstructed)
}

func (q ListMachinesQuery) MillID() kernel.ID { return q.millID }

type GetMachineQuery struct {
	machineID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetMachineQuery(machineID kernel.ID) (GetMachineQuery, error) {
	if err := machineID.Validate(); err != nil {
		return GetMachineQuery{}, err
	}
	return GetMachineQuery{machineID: machineID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMachineQuery) Validate() error {
	return q.guard.Validate(ErrGetMachineQueryIsNotConstructed)
}

func (q GetMachineQuery) MachineID() kernel.ID { return q.machineID }

// MachineListItem is a row of a mill's machine list.
type MachineListItem struct {
	ID        kernel.ID
	Reference string
	Type      facility.MachineType
	Capacity  int
}

// MachineDetail is everything known about one machine, with the name of the
// mill it is installed at.
type MachineDetail struct {
	ID           kernel.ID
	MillID       kernel.ID
	MillName     string
	Reference    string
	Brand        string
	Manufacturer string
	PurchaseDate time.Time
	Capacity     int
	Type         facility.MachineType
}
