package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrRetireMachineCommandIsNotConstructed = errors.New(
	"RetireMachineCommand must be created via NewRetireMachineCommand constructor",
)

// RetireMachineCommand removes a machine from the registry.
type RetireMachineCommand struct {
	actor     kernel.Actor
	machineID kernel.ID

	guard guard.ConstructorGuard
}

func NewRetireMachineCommand(actor kernel.Actor, machineID kernel.ID) (RetireMachineCommand, error) {
	if err := errors.Join(actor.Validate(), machineID.Validate()); err != nil {
		return RetireMachineCommand{}, err
	}
	return RetireMachineCommand{
		actor:     actor,
		machineID: machineID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RetireMachineCommand) Validate() error {
	return c.guard.Validate(ErrRetireMachineCommandIsNotConstructed)
}

func (c RetireMachineCommand) Actor() kernel.Actor  { return c.actor }
func (c RetireMachineCommand) MachineID() kernel.ID { return c.machineID }
