package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrCancelServiceRequestCommandIsNotConstructed = errors.New(
	"CancelServiceRequestCommand must be created via NewCancelServiceRequestCommand constructor",
)

type CancelServiceRequestCommand struct {
	actor     kernel.Actor
	requestID kernel.ID

	guard guard.ConstructorGuard
}

func NewCancelServiceRequestCommand(actor kernel.Actor, requestID kernel.ID) (CancelServiceRequestCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return CancelServiceRequestCommand{}, err
	}
	return CancelServiceRequestCommand{
		actor:     actor,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelServiceRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelServiceRequestCommandIsNotConstructed)
}

func (c CancelServiceRequestCommand) Actor() kernel.Actor  { return c.actor }
func (c CancelServiceRequestCommand) RequestID() kernel.ID { return c.requestID }
