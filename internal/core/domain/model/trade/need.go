package trade

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrNeedIsNotConstructed = errors.New("Need must be created via NewNeed constructor")

// Need is a standing demand posted by a buyer. It is not tied to any offer;
// sellers answer it by creating offers that reference it.
type Need struct {
	identity         kernel.Identity
	kind             Kind
	creator          kernel.Party
	quantity         kernel.Quantity
	maxPrice         kernel.Money
	needDate         time.Time
	description      string
	status           NeedStatus
	statusUpdateDate time.Time

	isConstructed bool
}

// NeedState is the persisted form of a Need.
type NeedState struct {
	ID               kernel.ID
	Code             kernel.Code
	Kind             Kind
	Creator          kernel.Party
	Quantity         kernel.Quantity
	MaxPrice         kernel.Money
	NeedDate         time.Time
	Description      string
	Status           NeedStatus
	StatusUpdateDate time.Time
}

// NewNeed posts a Pending need. Olive needs come from mills; oil needs from a
// mill or a consumer, never both.
func NewNeed(
	kind Kind,
	creator kernel.Party,
	quantity kernel.Quantity,
	maxPrice kernel.Money,
	needDate time.Time,
	description string,
) (*Need, error) {
	if err := errors.Join(
		kind.Validate(),
		quantity.ValidatePositive("needed quantity"),
		maxPrice.Validate(),
	); err != nil {
		return nil, err
	}
	if err := kind.validateNeedCreator(creator); err != nil {
		return nil, err
	}
	if needDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("need date")
	}
	return &Need{
		kind:             kind,
		creator:          creator,
		quantity:         quantity,
		maxPrice:         maxPrice,
		needDate:         needDate,
		description:      description,
		status:           NeedPending,
		statusUpdateDate: needDate,
		isConstructed:    true,
	}, nil
}

func RestoreNeed(s NeedState) (*Need, error) {
	n, err := NewNeed(s.Kind, s.Creator, s.Quantity, s.MaxPrice, s.NeedDate, s.Description)
	if err != nil {
		return nil, err
	}
	if s.Status != NeedPending && s.Status != NeedResponded {
		return nil, errs.NewValueIsInvalidError("need status")
	}
	if n.identity, err = kernel.RestoreIdentity(s.ID, s.Code); err != nil {
		return nil, err
	}
	n.status = s.Status
	n.statusUpdateDate = s.StatusUpdateDate
	return n, nil
}

func (n *Need) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNeedIsNotConstructed
	}
	return nil
}

func (n *Need) AssignIdentity(id kernel.ID) error {
	return n.identity.Assign(n.kind.NeedTag(), n.needDate, id)
}

func (n *Need) ID() kernel.ID {
	return n.identity.ID()
}

func (n *Need) Code() kernel.Code {
	return n.identity.Code()
}

func (n *Need) Kind() Kind {
	return n.kind
}

func (n *Need) Creator() kernel.Party {
	return n.creator
}

func (n *Need) Quantity() kernel.Quantity {
	return n.quantity
}

func (n *Need) MaxPrice() kernel.Money {
	return n.maxPrice
}

func (n *Need) NeedDate() time.Time {
	return n.needDate
}

func (n *Need) Description() string {
	return n.description
}

func (n *Need) Status() NeedStatus {
	return n.status
}

func (n *Need) StatusUpdateDate() time.Time {
	return n.statusUpdateDate
}

// Respond records that a seller answered the need.
func (n *Need) Respond(at time.Time) error {
	if !n.identity.IsAssigned() {
		return errs.NewValueIsRequiredError("need identity")
	}
	status, err := n.status.Respond()
	if err != nil {
		return err
	}
	n.status = status
	n.statusUpdateDate = at
	return nil
}
