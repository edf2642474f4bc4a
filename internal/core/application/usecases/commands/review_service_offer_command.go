package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrReviewServiceOfferCommandIsNotConstructed = errors.New(
	"ReviewServiceOfferCommand must be created via NewApproveServiceOfferCommand or NewRejectServiceOfferCommand",
)

// ReviewServiceOfferCommand is the farmer's answer to a mill's offer.
type ReviewServiceOfferCommand struct {
	actor   kernel.Actor
	offerID kernel.ID
	approve bool

	guard guard.ConstructorGuard
}

func NewApproveServiceOfferCommand(actor kernel.Actor, offerID kernel.ID) (ReviewServiceOfferCommand, error) {
	return newReviewServiceOfferCommand(actor, offerID, true)
}

func NewRejectServiceOfferCommand(actor kernel.Actor, offerID kernel.ID) (ReviewServiceOfferCommand, error) {
	return newReviewServiceOfferCommand(actor, offerID, false)
}

func newReviewServiceOfferCommand(actor kernel.Actor, offerID kernel.ID, approve bool) (ReviewServiceOfferCommand, error) {
	if err := errors.Join(actor.Validate(), offerID.Validate()); err != nil {
		return ReviewServiceOfferCommand{}, err
	}
	return ReviewServiceOfferCommand{
		actor:   actor,
		offerID: offerID,
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewServiceOfferCommand) Validate() error {
	return c.guard.Validate(ErrReviewServiceOfferCommandIsNotConstructed)
}

func (c ReviewServiceOfferCommand) Actor() kernel.Actor { return c.actor }
func (c ReviewServiceOfferCommand) OfferID() kernel.ID  { return c.offerID }
func (c ReviewServiceOfferCommand) Approve() bool       { return c.approve }
