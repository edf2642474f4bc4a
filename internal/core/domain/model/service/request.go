package service

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrRequestIsNotConstructed = errors.New("service Request must be created via NewRequest constructor")

// Request is a farmer asking mills for a service on one of their goods.
type Request struct {
	identity         kernel.Identity
	kind             Kind
	farmerID         kernel.UUID
	subjectID        kernel.ID
	considered       kernel.Quantity
	price            kernel.Money
	requestDate      time.Time
	status           RequestStatus
	statusUpdateDate time.Time
	details          Details
	version          int64

	isConstructed bool
}

// RequestState is the persisted form of a Request.
type RequestState struct {
	ID               kernel.ID
	Code             kernel.Code
	Kind             Kind
	FarmerID         kernel.UUID
	SubjectID        kernel.ID
	Considered       kernel.Quantity
	Price            kernel.Money
	RequestDate      time.Time
	Status           RequestStatus
	StatusUpdateDate time.Time
	Details          Details
	Version          int64
}

// NewRequest posts a Pending request. subjectID is a harvest for extraction
// and an oil product for the other kinds.
func NewRequest(
	kind Kind,
	farmerID kernel.UUID,
	subjectID kernel.ID,
	considered kernel.Quantity,
	price kernel.Money,
	requestDate time.Time,
	details Details,
) (*Request, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(
		farmerID.Validate(),
		subjectID.Validate(),
		considered.ValidatePositive("considered quantity"),
		price.Validate(),
		validateDetails(kind, details),
	); err != nil {
		return nil, err
	}
	if requestDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("request date")
	}
	return &Request{
		kind:             kind,
		farmerID:         farmerID,
		subjectID:        subjectID,
		considered:       considered,
		price:            price,
		requestDate:      requestDate,
		status:           RequestPending,
		statusUpdateDate: requestDate,
		details:          details,
		version:          1,
		isConstructed:    true,
	}, nil
}

func RestoreRequest(s RequestState) (*Request, error) {
	r, err := NewRequest(s.Kind, s.FarmerID, s.SubjectID, s.Considered, s.Price, s.RequestDate, s.Details)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if r.identity, err = kernel.RestoreIdentity(s.ID, s.Code); err != nil {
		return nil, err
	}
	r.status = s.Status
	r.statusUpdateDate = s.StatusUpdateDate
	r.version = s.Version
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// AssignIdentity stamps the request; the tag is the lower-cased kind name,
// e.g. "packagingrequest-20241103-000012".
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

func (r *Request) FarmerID() kernel.UUID {
	return r.farmerID
}

// SubjectID is the harvest or oil product the service is about.
func (r *Request) SubjectID() kernel.ID {
	return r.subjectID
}

func (r *Request) Considered() kernel.Quantity {
	return r.considered
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

func (r *Request) Details() Details {
	return r.details
}

func (r *Request) Version() int64 {
	return r.version
}

func (r *Request) IsRequestedBy(farmerID kernel.UUID) bool {
	return r.farmerID.IsEqual(farmerID)
}

// Respond records that a mill made an offer.
func (r *Request) Respond(at time.Time) error {
	return r.transition(r.status.Respond, at)
}

// Confirm records that the farmer approved an offer.
func (r *Request) Confirm(at time.Time) error {
	return r.transition(r.status.Confirm, at)
}

// Cancel withdraws the request while no offer is approved.
func (r *Request) Cancel(at time.Time) error {
	return r.transition(r.status.Cancel, at)
}

func (r *Request) transition(next func() (RequestStatus, error), at time.Time) error {
	status, err := next()
	if err != nil {
		return err
	}
	r.status = status
	r.statusUpdateDate = at
	return nil
}
