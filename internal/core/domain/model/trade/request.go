package trade

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

const (
	MinAppreciation = 1
	MaxAppreciation = 5
)

var (
	// ErrRequestIsNotConstructed is returned when a Request was not created
	// through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

// Request is a buyer's bid for part of an offer.
//
// A request does not touch the offer's quantity until it is bought; the
// PurchaseConfirmer domain service performs the reservation and the Buy
// transition together.
type Request struct {
	identity         kernel.Identity
	kind             Kind
	offerID          kernel.ID
	buyer            kernel.Party
	requested        kernel.Quantity
	price            kernel.Money
	requestDate      time.Time
	status           RequestStatus
	statusUpdateDate time.Time
	appreciation     *int
	feedback         string
	version          int64

	isConstructed bool
}

// RequestState is the persisted form of a Request.
type RequestState struct {
	ID               kernel.ID
	Code             kernel.Code
	Kind             Kind
	OfferID          kernel.ID
	Buyer            kernel.Party
	Requested        kernel.Quantity
	Price            kernel.Money
	RequestDate      time.Time
	Status           RequestStatus
	StatusUpdateDate time.Time
	Appreciation     *int
	Feedback         string
	Version          int64
}

// NewRequest places a Pending request for requested of offer.
//
// Errors:
//   - ObjectNotFoundError if offer is nil or no longer Available
//   - ValueIsInvalidError if the buyer may not buy this kind of good, or is
//     the seller itself
//   - ValueIsOutOfRangeError if requested exceeds the available quantity
func NewRequest(
	offer *Offer,
	buyer kernel.Party,
	requested kernel.Quantity,
	price kernel.Money,
	requestDate time.Time,
) (*Request, error) {
	if offer.Validate() != nil || !offer.IsAvailable() {
		id := kernel.ID(0)
		if offer != nil {
			id = offer.ID()
		}
		return nil, errs.NewObjectNotFoundError("offer", id)
	}

	r := &Request{
		kind:          offer.Kind(),
		offerID:       offer.ID(),
		status:        RequestPending,
		version:       1,
		isConstructed: true,
	}
	if err := errors.Join(
		offer.Kind().validateBuyer(buyer),
		requested.ValidatePositive("requested quantity"),
		price.Validate(),
		r.setRequestDate(requestDate),
	); err != nil {
		return nil, err
	}
	if offer.IsOwnedBy(buyer) {
		return nil, errs.NewValueIsInvalidErrorWithCause("buyer", errors.New("a seller cannot buy its own offer"))
	}
	over, err := requested.GreaterThan(offer.Available())
	if err != nil {
		return nil, err
	}
	if over {
		return nil, errs.NewValueIsOutOfRangeError("requested quantity", requested, 0, offer.Available())
	}

	r.buyer = buyer
	r.requested = requested
	r.price = price
	return r, nil
}

// RestoreRequest rebuilds a request from storage.
func RestoreRequest(s RequestState) (*Request, error) {
	r := &Request{
		isConstructed: true,
	}
	if err := errors.Join(
		s.Kind.Validate(),
		s.Kind.validateBuyer(s.Buyer),
		s.Requested.ValidatePositive("requested quantity"),
		s.Price.Validate(),
		s.Status.Validate(),
		s.OfferID.Validate(),
		r.setRequestDate(s.RequestDate),
	); err != nil {
		return nil, err
	}
	var err error
	if r.identity, err = kernel.RestoreIdentity(s.ID, s.Code); err != nil {
		return nil, err
	}

	r.kind = s.Kind
	r.offerID = s.OfferID
	r.buyer = s.Buyer
	r.requested = s.Requested
	r.price = s.Price
	r.status = s.Status
	r.statusUpdateDate = s.StatusUpdateDate
	if s.Appreciation != nil {
		a := *s.Appreciation
		r.appreciation = &a
	}
	r.feedback = s.Feedback
	r.version = s.Version
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// AssignIdentity stamps the request with its storage ID and code.
func (r *Request) AssignIdentity(id kernel.ID) error {
	return r.identity.Assign(r.kind.RequestTag(), r.requestDate, id)
}

func (r *Request) ID() kernel.ID {
	return r.identity.ID()
}

func (r *Request) Code() kernel.Code {
	return r.identity.Code()
}

func (r *Request) Kind() Kind {
	return r.kind
}

func (r *Request) OfferID() kernel.ID {
	return r.offerID
}

func (r *Request) Buyer() kernel.Party {
	return r.buyer
}

func (r *Request) Requested() kernel.Quantity {
	return r.requested
}

func (r *Request) Price() kernel.Money {
	return r.price
}

func (r *Request) RequestDate() time.Time {
	return r.requestDate
}

func (r *Request) Status() RequestStatus {
	return r.status
}

func (r *Request) StatusUpdateDate() time.Time {
	return r.statusUpdateDate
}

// Appreciation is the buyer's 1..5 rating, nil until feedback is left.
func (r *Request) Appreciation() *int {
	if r.appreciation == nil {
		return nil
	}
	a := *r.appreciation
	return &a
}

func (r *Request) Feedback() string {
	return r.feedback
}

func (r *Request) Version() int64 {
	return r.version
}

// IsPlacedBy reports whether party is the buyer.
func (r *Request) IsPlacedBy(party kernel.Party) bool {
	return r.buyer.IsEqual(party)
}

// Approve is the seller accepting the request. No quantity moves yet.
func (r *Request) Approve(at time.Time) error {
	status, err := r.status.Approve()
	if err != nil {
		return err
	}
	r.setStatus(status, at)
	return nil
}

// Reject is the seller declining the request.
func (r *Request) Reject(at time.Time) error {
	status, err := r.status.Reject()
	if err != nil {
		return err
	}
	r.setStatus(status, at)
	return nil
}

// ValidateBuy checks the request may be bought without changing it. Olive
// requests must be approved first; oil requests may also be bought straight
// from Pending.
func (r *Request) ValidateBuy() error {
	return r.status.ValidateBuy(r.kind.allowsDirectPurchase())
}

// MarkBought records a confirmed purchase. Use PurchaseConfirmer, which
// reserves the quantity in the same step.
func (r *Request) MarkBought(at time.Time) error {
	status, err := r.status.Buy(r.kind.allowsDirectPurchase())
	if err != nil {
		return err
	}
	r.setStatus(status, at)
	return nil
}

// LeaveFeedback stores the buyer's rating of a completed purchase. It can be
// left once.
func (r *Request) LeaveFeedback(appreciation int, feedback string) error {
	if r.status != RequestBought {
		return errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to leave feedback", r.status),
		)
	}
	if r.appreciation != nil {
		return errs.NewConflictError("feedback", errors.New("feedback was already left"))
	}
	if appreciation < MinAppreciation || appreciation > MaxAppreciation {
		return errs.NewValueIsOutOfRangeError("appreciation", appreciation, MinAppreciation, MaxAppreciation)
	}
	r.appreciation = &appreciation
	r.feedback = strings.TrimSpace(feedback)
	return nil
}

func (r *Request) setStatus(status RequestStatus, at time.Time) {
	r.status = status
	r.statusUpdateDate = at
}

func (r *Request) setRequestDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("request date")
	}
	r.requestDate = date
	r.statusUpdateDate = date
	return nil
}
