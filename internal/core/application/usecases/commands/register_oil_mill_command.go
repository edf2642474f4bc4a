package commands

import (
	"errors"
	"strings"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"
)

var ErrRegisterOilMillCommandIsNotConstructed = errors.New(
	"RegisterOilMillCommand must be created via NewRegisterOilMillCommand constructor",
)

// RegisterOilMillCommand registers an oil mill and the actor who manages it.
type RegisterOilMillCommand struct {
	actor       kernel.Actor
	name        string
	managerID   kernel.UUID
	hasLab      bool
	hasPackUnit bool

	guard guard.ConstructorGuard
}

func NewRegisterOilMillCommand(
	actor kernel.Actor,
	name string,
	managerID kernel.UUID,
	hasLab bool,
	hasPackUnit bool,
) (RegisterOilMillCommand, error) {
	if err := errors.Join(actor.Validate(), managerID.Validate()); err != nil {
		return RegisterOilMillCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RegisterOilMillCommand{}, errs.NewValueIsRequiredError("name")
	}
	return RegisterOilMillCommand{
		actor:       actor,
		name:        strings.TrimSpace(name),
		managerID:   managerID,
		hasLab:      hasLab,
		hasPackUnit: hasPackUnit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterOilMillCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOilMillCommandIsNotConstructed)
}

func (c RegisterOilMillCommand) Actor() kernel.Actor    { return c.actor }
func (c RegisterOilMillCommand) Name() string           { return c.name }
func (c RegisterOilMillCommand) ManagerID() kernel.UUID { return c.managerID }
func (c RegisterOilMillCommand) HasLab() bool           { return c.hasLab }
func (c RegisterOilMillCommand) HasPackUnit() bool      { return c.hasPackUnit }
