package good

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// HarvestTag prefixes harvest codes.
const HarvestTag = "harvest"

var ErrHarvestIsNotConstructed = errors.New("Harvest must be created via NewHarvest constructor")

// Harvest is a batch of olives picked from one grove on one day. Its owner is
// the grove's farmer.
type Harvest struct {
	identity kernel.Identity
	groveID  kernel.ID
	date     time.Time
	variety  string
	stock    Stock

	isConstructed bool
}

func NewHarvest(groveID kernel.ID, date time.Time, quantity kernel.Quantity, variety string) (*Harvest, error) {
	h := &Harvest{
		variety:       variety,
		isConstructed: true,
	}
	if err := errors.Join(
		h.setGroveID(groveID),
		h.setDate(date),
		h.setStock(quantity),
	); err != nil {
		return nil, err
	}
	return h, nil
}

func RestoreHarvest(
	id kernel.ID,
	code kernel.Code,
	groveID kernel.ID,
	date time.Time,
	variety string,
	initial kernel.Quantity,
	remaining kernel.Quantity,
) (*Harvest, error) {
	h, err := NewHarvest(groveID, date, initial, variety)
	if err != nil {
		return nil, err
	}
	if h.identity, err = kernel.RestoreIdentity(id, code); err != nil {
		return nil, err
	}
	if h.stock, err = RestoreStock(initial, remaining); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Harvest) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHarvestIsNotConstructed
	}
	return nil
}

// AssignIdentity stamps the harvest with its storage ID and code.
func (h *Harvest) AssignIdentity(id kernel.ID) error {
	return h.identity.Assign(HarvestTag, h.date, id)
}

func (h *Harvest) ID() kernel.ID {
	return h.identity.ID()
}

func (h *Harvest) Code() kernel.Code {
	return h.identity.Code()
}

func (h *Harvest) GroveID() kernel.ID {
	return h.groveID
}

func (h *Harvest) Date() time.Time {
	return h.date
}

func (h *Harvest) Variety() string {
	return h.variety
}

func (h *Harvest) Initial() kernel.Quantity {
	return h.stock.Initial()
}

func (h *Harvest) Remaining() kernel.Quantity {
	return h.stock.Remaining()
}

// Allocate commits amount of the harvest to an offer or an extraction.
func (h *Harvest) Allocate(amount kernel.Quantity) error {
	s, err := h.stock.Allocate(amount)
	if err != nil {
		return err
	}
	h.stock = s
	return nil
}

// Release returns amount that an offer no longer needs.
func (h *Harvest) Release(amount kernel.Quantity) error {
	s, err := h.stock.Release(amount)
	if err != nil {
		return err
	}
	h.stock = s
	return nil
}

func (h *Harvest) setGroveID(groveID kernel.ID) error {
	if err := groveID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("grove", err)
	}
	h.groveID = groveID
	return nil
}

func (h *Harvest) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("harvest date")
	}
	h.date = date
	return nil
}

func (h *Harvest) setStock(quantity kernel.Quantity) error {
	s, err := NewStock(quantity)
	if err != nil {
		return err
	}
	h.stock = s
	return nil
}
