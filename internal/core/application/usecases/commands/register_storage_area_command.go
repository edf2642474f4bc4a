package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrRegisterStorageAreaCommandIsNotConstructed = errors.New(
	"RegisterStorageAreaCommand must be created via NewRegisterStorageAreaCommand constructor",
)

// RegisterStorageAreaCommand declares a storage area owned by the acting
// party: the farmer, or the mill of a manager.
type RegisterStorageAreaCommand struct {
	actor          kernel.Actor
	localType      string
	address        string
	location       *facility.Coordinates
	containerType  string
	containerCount int

	guard guard.ConstructorGuard
}

func NewRegisterStorageAreaCommand(
	actor kernel.Actor,
	localType string,
	address string,
	location *facility.Coordinates,
	containerType string,
	containerCount int,
) (RegisterStorageAreaCommand, error) {
	if err := actor.Validate(); err != nil {
		return RegisterStorageAreaCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return RegisterStorageAreaCommand{}, err
		}
	}
	return RegisterStorageAreaCommand{
		actor:          actor,
		localType:      localType,
		address:        address,
		location:       location,
		containerType:  containerType,
		containerCount: containerCount,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterStorageAreaCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStorageAreaCommandIsNotConstructed)
}

func (c RegisterStorageAreaCommand) Actor() kernel.Actor             { return c.actor }
func (c RegisterStorageAreaCommand) LocalType() string               { return c.localType }
func (c RegisterStorageAreaCommand) Address() string                 { return c.address }
func (c RegisterStorageAreaCommand) Location() *facility.Coordinates { return c.location }
func (c RegisterStorageAreaCommand) ContainerType() string           { return c.containerType }
func (c RegisterStorageAreaCommand) ContainerCount() int             { return c.containerCount }
