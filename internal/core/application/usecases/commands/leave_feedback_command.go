package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrLeaveFeedbackCommandIsNotConstructed = errors.New(
	"LeaveFeedbackCommand must be created via NewLeaveFeedbackCommand constructor",
)

// LeaveFeedbackCommand rates a bought request. The range of appreciation is
// checked by the request itself.
type LeaveFeedbackCommand struct {
	actor        kernel.Actor
	requestID    kernel.ID
	appreciation int
	feedback     string

	guard guard.ConstructorGuard
}

func NewLeaveFeedbackCommand(
	actor kernel.Actor,
	requestID kernel.ID,
	appreciation int,
	feedback string,
) (LeaveFeedbackCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return LeaveFeedbackCommand{}, err
	}
	return LeaveFeedbackCommand{
		actor:        actor,
		requestID:    requestID,
		appreciation: appreciation,
		feedback:     feedback,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c LeaveFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrLeaveFeedbackCommandIsNotConstructed)
}

func (c LeaveFeedbackCommand) Actor() kernel.Actor  { return c.actor }
func (c LeaveFeedbackCommand) RequestID() kernel.ID { return c.requestID }
func (c LeaveFeedbackCommand) Appreciation() int    { return c.appreciation }
func (c LeaveFeedbackCommand) Feedback() string     { return c.feedback }
