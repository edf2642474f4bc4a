package service

import (
	"errors"
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrOfferIsNotConstructed = errors.New("service Offer must be created via NewOffer constructor")

// Offer is a mill's answer to a service request.
type Offer struct {
	identity         kernel.Identity
	kind             Kind
	millID           kernel.ID
	requestID        kernel.ID
	price            kernel.Money
	offerDate        time.Time
	negotiable       bool
	status           OfferStatus
	statusUpdateDate time.Time
	version          int64

	isConstructed bool
}

// OfferState is the persisted form of an Offer.
type OfferState struct {
	ID               kernel.ID
	Code             kernel.Code
	Kind             Kind
	MillID           kernel.ID
	RequestID        kernel.ID
	Price            kernel.Money
	OfferDate        time.Time
	Negotiable       bool
	Status           OfferStatus
	StatusUpdateDate time.Time
	Version          int64
}

// NewOffer answers request on behalf of mill and marks the request Responded.
//
// The mill must be able to perform the service: packaging needs a packaging
// unit and analysis needs a laboratory.
func NewOffer(
	request *Request,
	mill *facility.OilMill,
	price kernel.Money,
	offerDate time.Time,
	negotiable bool,
) (*Offer, error) {
	if err := errors.Join(request.Validate(), mill.Validate(), price.Validate()); err != nil {
		return nil, err
	}
	if !request.identity.IsAssigned() {
		return nil, errs.NewValueIsRequiredError("service request")
	}
	if offerDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("offer date")
	}
	if err := validateCapability(request.kind, mill); err != nil {
		return nil, err
	}
	if err := request.Respond(offerDate); err != nil {
		return nil, err
	}
	return &Offer{
		kind:             request.kind,
		millID:           mill.ID(),
		requestID:        request.ID(),
		price:            price,
		offerDate:        offerDate,
		negotiable:       negotiable,
		status:           OfferPending,
		statusUpdateDate: offerDate,
		version:          1,
		isConstructed:    true,
	}, nil
}

func RestoreOffer(s OfferState) (*Offer, error) {
	if err := errors.Join(
		s.Kind.Validate(),
		s.MillID.Validate(),
		s.RequestID.Validate(),
		s.Price.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	identity, err := kernel.RestoreIdentity(s.ID, s.Code)
	if err != nil {
		return nil, err
	}
	return &Offer{
		identity:         identity,
		kind:             s.Kind,
		millID:           s.MillID,
		requestID:        s.RequestID,
		price:            s.Price,
		offerDate:        s.OfferDate,
		negotiable:       s.Negotiable,
		status:           s.Status,
		statusUpdateDate: s.StatusUpdateDate,
		version:          s.Version,
		isConstructed:    true,
	}, nil
}

func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

func (o *Offer) AssignIdentity(id kernel.ID) error {
	return o.identity.Assign(o.kind.OfferTag(), o.offerDate, id)
}

func (o *Offer) ID() kernel.ID {
	return o.identity.ID()
}

func (o *Offer) Code() kernel.Code {
	return o.identity.Code()
}

func (o *Offer) Kind() Kind {
	return o.kind
}

func (o *Offer) MillID() kernel.ID {
	return o.millID
}

func (o *Offer) RequestID() kernel.ID {
	return o.requestID
}

func (o *Offer) Price() kernel.Money {
	return o.price
}

func (o *Offer) OfferDate() time.Time {
	return o.offerDate
}

func (o *Offer) Negotiable() bool {
	return o.negotiable
}

func (o *Offer) Status() OfferStatus {
	return o.status
}

func (o *Offer) StatusUpdateDate() time.Time {
	return o.statusUpdateDate
}

func (o *Offer) Version() int64 {
	return o.version
}

// IsProvidedBy reports whether millID made the offer.
func (o *Offer) IsProvidedBy(millID kernel.ID) bool {
	return o.millID == millID
}

// Approve accepts the offer and confirms request, which must be the one the
// offer answers.
func (o *Offer) Approve(request *Request, at time.Time) error {
	if err := request.Validate(); err != nil {
		return err
	}
	if request.ID() != o.requestID {
		return errs.NewValueIsInvalidErrorWithCause(
			"service request", fmt.Errorf("offer %s does not answer request %s", o.Code(), request.Code()))
	}
	status, err := o.status.Approve()
	if err != nil {
		return err
	}
	if err = request.Confirm(at); err != nil {
		return err
	}
	o.status = status
	o.statusUpdateDate = at
	return nil
}

func (o *Offer) Reject(at time.Time) error {
	status, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.status = status
	o.statusUpdateDate = at
	return nil
}

// Complete moves an Approved offer to its kind's completed status.
func (o *Offer) Complete(at time.Time) error {
	status, err := o.status.Complete(o.kind)
	if err != nil {
		return err
	}
	o.status = status
	o.statusUpdateDate = at
	return nil
}

func validateCapability(kind Kind, mill *facility.OilMill) error {
	switch {
	case kind == Packaging && !mill.HasPackUnit():
		return errs.NewValueIsInvalidErrorWithCause("oil mill", fmt.Errorf("%s has no packaging unit", mill.Name()))
	case kind == Analysis && !mill.HasLab():
		return errs.NewValueIsInvalidErrorWithCause("oil mill", fmt.Errorf("%s has no laboratory", mill.Name()))
	}
	return nil
}
