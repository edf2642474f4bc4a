package commands

import (
	"context"
	"fmt"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/ports"
	"oliveflow/internal/pkg/errs"
)

// Created identifies the entity a command created. Code is zero for
// entities that carry no traceability code.
type Created struct {
	ID   kernel.ID
	Code kernel.Code
}

// actingParty is the trading party an actor acts as: farmers and consumers
// act as themselves, a mill manager acts as the mill they run.
func actingParty(ctx context.Context, actor kernel.Actor, mills ports.MillRepository) (kernel.Party, error) {
	if err := actor.Validate(); err != nil {
		return kernel.Party{}, err
	}
	switch actor.Role() {
	case kernel.FarmerRole:
		return kernel.NewFarmer(actor.ID())
	case kernel.ConsumerRole:
		return kernel.NewConsumer(actor.ID())
	case kernel.MillManagerRole:
		mill, err := mills.GetByManager(ctx, actor.ID())
		if err != nil {
			return kernel.Party{}, err
		}
		return mill.Party()
	default:
		return kernel.Party{}, errs.NewPermissionDeniedError("trade", actor.String())
	}
}

func denied(action string, code kernel.Code, actor kernel.Actor) error {
	return errs.NewPermissionDeniedError(fmt.Sprintf("%s %s", action, code), actor.String())
}
