package service

import (
	"errors"
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrOperationIsNotConstructed = errors.New("Operation must be created via NewOperation constructor")

// Operation is the recorded physical work done at a mill.
//
// Extraction turns olives into a new oil product (OutputProductID). The other
// kinds act on an existing oil product (SubjectProductID) and are always the
// completion of a service offer.
type Operation struct {
	identity         kernel.Identity
	kind             Kind
	millID           kernel.ID
	source           Source
	subjectProductID *kernel.ID
	outputProductID  *kernel.ID
	record           Record

	isConstructed bool
}

// OperationState is the persisted form of an Operation.
type OperationState struct {
	ID               kernel.ID
	Code             kernel.Code
	Kind             Kind
	MillID           kernel.ID
	Source           Source
	SubjectProductID *kernel.ID
	OutputProductID  *kernel.ID
	Record           Record
}

func NewOperation(kind Kind, millID kernel.ID, source Source, subjectProductID *kernel.ID, record Record) (*Operation, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(millID.Validate(), validateRecord(kind, record)); err != nil {
		return nil, err
	}
	if source.Kind() == UnknownSource {
		return nil, errs.NewValueIsInvalidErrorWithCause("operation source", errors.New("no source given"))
	}

	op := &Operation{
		kind:          kind,
		millID:        millID,
		source:        source,
		record:        record,
		isConstructed: true,
	}
	if kind == Extraction {
		if subjectProductID != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"oil product", errors.New("extraction produces a product, it does not act on one"))
		}
		return op, nil
	}

	if source.Kind() != ServiceOfferSource {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"operation source", fmt.Errorf("%s is only performed as a service", kind))
	}
	if subjectProductID == nil {
		return nil, errs.NewValueIsRequiredError("oil product")
	}
	if err := subjectProductID.Validate(); err != nil {
		return nil, err
	}
	id := *subjectProductID
	op.subjectProductID = &id
	return op, nil
}

func RestoreOperation(s OperationState) (*Operation, error) {
	op, err := NewOperation(s.Kind, s.MillID, s.Source, s.SubjectProductID, s.Record)
	if err != nil {
		return nil, err
	}
	if op.identity, err = kernel.RestoreIdentity(s.ID, s.Code); err != nil {
		return nil, err
	}
	if s.OutputProductID != nil {
		if err = op.AttachOutput(*s.OutputProductID); err != nil {
			return nil, err
		}
	}
	return op, nil
}

func (o *Operation) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOperationIsNotConstructed
	}
	return nil
}

// AssignIdentity stamps the operation, dated by its record.
func (o *Operation) AssignIdentity(id kernel.ID) error {
	return o.identity.Assign(o.kind.OperationTag(), o.record.Date(), id)
}

func (o *Operation) ID() kernel.ID {
	return o.identity.ID()
}

func (o *Operation) Code() kernel.Code {
	return o.identity.Code()
}

func (o *Operation) Kind() Kind {
	return o.kind
}

func (o *Operation) MillID() kernel.ID {
	return o.millID
}

func (o *Operation) Source() Source {
	return o.source
}

func (o *Operation) Date() time.Time {
	return o.record.Date()
}

func (o *Operation) Record() Record {
	return o.record
}

func (o *Operation) SubjectProductID() *kernel.ID {
	if o.subjectProductID == nil {
		return nil
	}
	id := *o.subjectProductID
	return &id
}

func (o *Operation) OutputProductID() *kernel.ID {
	if o.outputProductID == nil {
		return nil
	}
	id := *o.outputProductID
	return &id
}

// OwnerCategory is the category of the owner of the oil an extraction
// produces: the farmer for their own olives, the mill for olives it bought.
func (o *Operation) OwnerCategory() kernel.PartyKind {
	if o.kind != Extraction {
		return kernel.UnknownParty
	}
	if o.source.Kind() == PurchasedOlivesSource {
		return kernel.MillParty
	}
	return kernel.FarmerParty
}

// AttachOutput links an extraction to the oil product it produced.
func (o *Operation) AttachOutput(productID kernel.ID) error {
	if o.kind != Extraction {
		return errs.NewValueIsInvalidErrorWithCause(
			"output product", fmt.Errorf("%s does not produce a product", o.kind))
	}
	if o.outputProductID != nil {
		return errs.NewConflictError("output product", fmt.Errorf("%s already produced %s", o.Code(), o.outputProductID))
	}
	if err := productID.Validate(); err != nil {
		return err
	}
	o.outputProductID = &productID
	return nil
}
