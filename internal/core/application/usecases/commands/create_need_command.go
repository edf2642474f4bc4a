package commands

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/guard"
)

var ErrCreateNeedCommandIsNotConstructed = errors.New(
	"CreateNeedCommand must be created via NewCreateNeedCommand constructor",
)

// CreateNeedCommand publishes what a mill or a consumer wants to buy.
type CreateNeedCommand struct {
	actor       kernel.Actor
	kind        trade.Kind
	quantity    kernel.Quantity
	maxPrice    kernel.Money
	needDate    time.Time
	description string

	guard guard.ConstructorGuard
}

func NewCreateNeedCommand(
	actor kernel.Actor,
	kind trade.Kind,
	quantity kernel.Quantity,
	maxPrice kernel.Money,
	needDate time.Time,
	description string,
) (CreateNeedCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		kind.Validate(),
		quantity.ValidatePositive("needed quantity"),
		maxPrice.Validate(),
	); err != nil {
		return CreateNeedCommand{}, err
	}
	return CreateNeedCommand{
		actor:       actor,
		kind:        kind,
		quantity:    quantity,
		maxPrice:    maxPrice,
		needDate:    needDate,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateNeedCommand) Validate() error {
	return c.guard.Validate(ErrCreateNeedCommandIsNotConstructed)
}

func (c CreateNeedCommand) Actor() kernel.Actor       { return c.actor }
func (c CreateNeedCommand) Kind() trade.Kind          { return c.kind }
func (c CreateNeedCommand) Quantity() kernel.Quantity { return c.quantity }
func (c CreateNeedCommand) MaxPrice() kernel.Money    { return c.maxPrice }
func (c CreateNeedCommand) NeedDate() time.Time       { return c.needDate }
func (c CreateNeedCommand) Description() string       { return c.description }
