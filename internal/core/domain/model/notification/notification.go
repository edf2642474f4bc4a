// Package notification defines the events the workflow raises for the
// parties involved. Delivery is not part of the domain: events are stored in
// an outbox with the state change that raised them and handed to a Notifier
// later.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// Kind is the semantic event behind a notification.
type Kind string

const (
	RequestPlaced           Kind = "request_placed"
	RequestApproved         Kind = "request_approved"
	RequestRejected         Kind = "request_rejected"
	PurchaseConfirmed       Kind = "purchase_confirmed"
	OfferCancelled          Kind = "offer_cancelled"
	NeedAnswered            Kind = "need_answered"
	ServiceOffered          Kind = "service_offered"
	ServiceOfferApproved    Kind = "service_offer_approved"
	ServiceOfferRejected    Kind = "service_offer_rejected"
	ServiceRequestCancelled Kind = "service_request_cancelled"
	OperationCompleted      Kind = "operation_completed"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Event is one message for one recipient.
type Event struct {
	kind       Kind
	recipient  kernel.Party
	subject    kernel.Code
	message    string
	occurredAt time.Time
}

func NewEvent(kind Kind, recipient kernel.Party, subject kernel.Code, message string, occurredAt time.Time) (Event, error) {
	if err := recipient.Validate(); err != nil {
		return Event{}, errs.NewValueIsRequiredErrorWithCause("recipient", err)
	}
	if kind == "" {
		return Event{}, errs.NewValueIsRequiredError("event kind")
	}
	if strings.TrimSpace(message) == "" {
		return Event{}, errs.NewValueIsRequiredError("message")
	}
	if occurredAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("occurred at")
	}
	return Event{
		kind:       kind,
		recipient:  recipient,
		subject:    subject,
		message:    message,
		occurredAt: occurredAt,
	}, nil
}

func (e Event) Validate() error {
	if e.kind == "" {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e Event) Kind() Kind {
	return e.kind
}

func (e Event) Recipient() kernel.Party {
	return e.recipient
}

// Subject is the code of the entity the event is about.
func (e Event) Subject() kernel.Code {
	return e.subject
}

func (e Event) Message() string {
	return e.message
}

func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}

// Address renders a party as an inbox address: "mill:12" or "actor:<uuid>".
func Address(p kernel.Party) string {
	if id := p.MillID(); id != nil {
		return fmt.Sprintf("mill:%d", int64(*id))
	}
	if id := p.ActorID(); id != nil {
		return "actor:" + id.String()
	}
	return ""
}
