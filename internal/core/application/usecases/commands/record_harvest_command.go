package commands

import (
	"errors"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"
)

var ErrRecordHarvestCommandIsNotConstructed = errors.New(
	"RecordHarvestCommand must be created via NewRecordHarvestCommand constructor",
)

// RecordHarvestCommand records olives picked from one of the actor's groves.
// An empty variety falls back to the grove's variety.
type RecordHarvestCommand struct {
	actor    kernel.Actor
	groveID  kernel.ID
	date     time.Time
	quantity kernel.Quantity
	variety  string

	guard guard.ConstructorGuard
}

func NewRecordHarvestCommand(
	actor kernel.Actor,
	groveID kernel.ID,
	date time.Time,
	quantity kernel.Quantity,
	variety string,
) (RecordHarvestCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		groveID.Validate(),
		quantity.ValidatePositive("harvest quantity"),
	); err != nil {
		return RecordHarvestCommand{}, err
	}
	if date.IsZero() {
		return RecordHarvestCommand{}, errs.NewValueIsRequiredError("harvest date")
	}
	return RecordHarvestCommand{
		actor:    actor,
		groveID:  groveID,
		date:     date,
		quantity: quantity,
		variety:  strings.TrimSpace(variety),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RecordHarvestCommand) Validate() error {
	return c.guard.Validate(ErrRecordHarvestCommandIsNotConstructed)
}

func (c RecordHarvestCommand) Actor() kernel.Actor       { return c.actor }
func (c RecordHarvestCommand) GroveID() kernel.ID        { return c.groveID }
func (c RecordHarvestCommand) Date() time.Time           { return c.date }
func (c RecordHarvestCommand) Quantity() kernel.Quantity { return c.quantity }
func (c RecordHarvestCommand) Variety() string           { return c.variety }
