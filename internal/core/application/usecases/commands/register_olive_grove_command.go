package commands

import (
	"errors"
	"strings"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"
)

var ErrRegisterOliveGroveCommandIsNotConstructed = errors.New(
	"RegisterOliveGroveCommand must be created via NewRegisterOliveGroveCommand constructor",
)

// RegisterOliveGroveCommand registers a grove owned by the acting farmer.
type RegisterOliveGroveCommand struct {
	actor   kernel.Actor
	name    string
	variety string

	guard guard.ConstructorGuard
}

func NewRegisterOliveGroveCommand(actor kernel.Actor, name string, variety string) (RegisterOliveGroveCommand, error) {
	if err := actor.Validate(); err != nil {
		return RegisterOliveGroveCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RegisterOliveGroveCommand{}, errs.NewValueIsRequiredError("name")
	}
	return RegisterOliveGroveCommand{
		actor:   actor,
		name:    strings.TrimSpace(name),
		variety: strings.TrimSpace(variety),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterOliveGroveCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOliveGroveCommandIsNotConstructed)
}

func (c RegisterOliveGroveCommand) Actor() kernel.Actor { return c.actor }
func (c RegisterOliveGroveCommand) Name() string        { return c.name }
func (c RegisterOliveGroveCommand) Variety() string     { return c.variety }
