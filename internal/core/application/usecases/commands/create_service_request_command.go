package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/guard"
)

var ErrCreateServiceRequestCommandIsNotConstructed = errors.New(
	"CreateServiceRequestCommand must be created via NewCreateServiceRequestCommand constructor",
)

// CreateServiceRequestCommand asks mills to perform a service on one of the
// farmer's goods: a harvest for extraction, an oil product otherwise.
type CreateServiceRequestCommand struct {
	actor      kernel.Actor
	kind       service.Kind
	subjectID  kernel.ID
	considered kernel.Quantity
	price      kernel.Money
	details    service.Details

	guard guard.ConstructorGuard
}

func NewCreateServiceRequestCommand(
	actor kernel.Actor,
	kind service.Kind,
	subjectID kernel.ID,
	considered kernel.Quantity,
	price kernel.Money,
	details service.Details,
) (CreateServiceRequestCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		kind.Validate(),
		subjectID.Validate(),
		considered.ValidatePositive("considered quantity"),
		price.Validate(),
	); err != nil {
		return CreateServiceRequestCommand{}, err
	}
	return CreateServiceRequestCommand{
		actor:      actor,
		kind:       kind,
		subjectID:  subjectID,
		considered: considered,
		price:      price,
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateServiceRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceRequestCommandIsNotConstructed)
}

func (c CreateServiceRequestCommand) Actor() kernel.Actor         { return c.actor }
func (c CreateServiceRequestCommand) Kind() service.Kind          { return c.kind }
func (c CreateServiceRequestCommand) SubjectID() kernel.ID        { return c.subjectID }
func (c CreateServiceRequestCommand) Considered() kernel.Quantity { return c.considered }
func (c CreateServiceRequestCommand) Price() kernel.Money         { return c.price }
func (c CreateServiceRequestCommand) Details() service.Details    { return c.details }
