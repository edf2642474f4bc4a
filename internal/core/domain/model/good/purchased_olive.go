package good

import (
	"errors"
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrPurchasedOliveIsNotConstructed = errors.New("PurchasedOlive must be created via NewPurchasedOlive constructor")

// PurchasedOlive is the transfer record created when a mill confirms an olive
// purchase. It is consumed whole by exactly one extraction operation.
type PurchasedOlive struct {
	id           kernel.ID
	requestID    kernel.ID
	millID       kernel.ID
	quantity     kernel.Quantity
	purchaseDate time.Time
	variety      string
	operationID  *kernel.ID

	isConstructed bool
}

func NewPurchasedOlive(
	requestID kernel.ID,
	millID kernel.ID,
	quantity kernel.Quantity,
	purchaseDate time.Time,
	variety string,
) (*PurchasedOlive, error) {
	p := &PurchasedOlive{
		variety:       variety,
		isConstructed: true,
	}
	if err := errors.Join(
		requestID.Validate(),
		millID.Validate(),
		quantity.ValidatePositive("purchased quantity"),
	); err != nil {
		return nil, err
	}
	if purchaseDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("purchase date")
	}
	p.requestID = requestID
	p.millID = millID
	p.quantity = quantity
	p.purchaseDate = purchaseDate
	return p, nil
}

func RestorePurchasedOlive(
	id kernel.ID,
	requestID kernel.ID,
	millID kernel.ID,
	quantity kernel.Quantity,
	purchaseDate time.Time,
	variety string,
	operationID *kernel.ID,
) (*PurchasedOlive, error) {
	p, err := NewPurchasedOlive(requestID, millID, quantity, purchaseDate, variety)
	if err != nil {
		return nil, err
	}
	if err = p.AssignID(id); err != nil {
		return nil, err
	}
	if operationID != nil {
		if err = p.Consume(*operationID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *PurchasedOlive) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPurchasedOliveIsNotConstructed
	}
	return nil
}

func (p *PurchasedOlive) AssignID(id kernel.ID) error {
	if !p.id.IsZero() {
		return errs.NewConflictError("purchased olive", kernel.ErrIdentityAlreadyAssigned)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PurchasedOlive) ID() kernel.ID {
	return p.id
}

func (p *PurchasedOlive) RequestID() kernel.ID {
	return p.requestID
}

func (p *PurchasedOlive) MillID() kernel.ID {
	return p.millID
}

func (p *PurchasedOlive) Quantity() kernel.Quantity {
	return p.quantity
}

func (p *PurchasedOlive) PurchaseDate() time.Time {
	return p.purchaseDate
}

func (p *PurchasedOlive) Variety() string {
	return p.variety
}

// OperationID is the extraction that consumed these olives, nil while unused.
func (p *PurchasedOlive) OperationID() *kernel.ID {
	if p.operationID == nil {
		return nil
	}
	id := *p.operationID
	return &id
}

func (p *PurchasedOlive) IsConsumed() bool {
	return p.operationID != nil
}

// Consume records that operationID used these olives.
func (p *PurchasedOlive) Consume(operationID kernel.ID) error {
	if err := operationID.Validate(); err != nil {
		return err
	}
	if p.operationID != nil {
		return errs.NewConflictError("purchased olive",
			fmt.Errorf("already consumed by operation %s", p.operationID))
	}
	p.operationID = &operationID
	return nil
}
