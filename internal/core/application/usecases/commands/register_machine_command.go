package commands

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrRegisterMachineCommandIsNotConstructed = errors.New(
	"RegisterMachineCommand must be created via NewRegisterMachineCommand constructor",
)

// RegisterMachineCommand installs a machine at the mill the actor manages.
type RegisterMachineCommand struct {
	actor        kernel.Actor
	reference    string
	brand        string
	manufacturer string
	purchaseDate time.Time
	capacity     int
	machineType  facility.MachineType

	guard guard.ConstructorGuard
}

func NewRegisterMachineCommand(
	actor kernel.Actor,
	reference string,
	brand string,
	manufacturer string,
	purchaseDate time.Time,
	capacity int,
	machineType facility.MachineType,
) (RegisterMachineCommand, error) {
	if err := errors.Join(actor.Validate(), machineType.Validate()); err != nil {
		return RegisterMachineCommand{}, err
	}
	return RegisterMachineCommand{
		actor:        actor,
		reference:    reference,
		brand:        brand,
		manufacturer: manufacturer,
		purchaseDate: purchaseDate,
		capacity:     capacity,
		machineType:  machineType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterMachineCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMachineCommandIsNotConstructed)
}

func (c RegisterMachineCommand) Actor() kernel.Actor        { return c.actor }
func (c RegisterMachineCommand) Reference() string          { return c.reference }
func (c RegisterMachineCommand) Brand() string              { return c.brand }
func (c RegisterMachineCommand) Manufacturer() string       { return c.manufacturer }
func (c RegisterMachineCommand) PurchaseDate() time.Time    { return c.purchaseDate }
func (c RegisterMachineCommand) Capacity() int              { return c.capacity }
func (c RegisterMachineCommand) Type() facility.MachineType { return c.machineType }
