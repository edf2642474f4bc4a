package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrReviewRequestCommandIsNotConstructed = errors.New(
	"ReviewRequestCommand must be created via NewApproveRequestCommand or NewRejectRequestCommand",
)

// ReviewRequestCommand is the seller's answer to a Pending request.
type ReviewRequestCommand struct {
	actor     kernel.Actor
	requestID kernel.ID
	approve   bool

	guard guard.ConstructorGuard
}

func NewApproveRequestCommand(actor kernel.Actor, requestID kernel.ID) (ReviewRequestCommand, error) {
	return newReviewRequestCommand(actor, requestID, true)
}

func NewRejectRequestCommand(actor kernel.Actor, requestID kernel.ID) (ReviewRequestCommand, error) {
	return newReviewRequestCommand(actor, requestID, false)
}

func newReviewRequestCommand(actor kernel.Actor, requestID kernel.ID, approve bool) (ReviewRequestCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return ReviewRequestCommand{}, err
	}
	return ReviewRequestCommand{
		actor:     actor,
		requestID: requestID,
		approve:   approve,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewRequestCommand) Validate() error {
	return c.guard.Validate(ErrReviewRequestCommandIsNotConstructed)
}

func (c ReviewRequestCommand) Actor() kernel.Actor  { return c.actor }
func (c ReviewRequestCommand) RequestID() kernel.ID { return c.requestID }
func (c ReviewRequestCommand) Approve() bool        { return c.approve }
