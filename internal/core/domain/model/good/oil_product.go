package good

import (
	"errors"
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrOilProductIsNotConstructed = errors.New("OilProduct must be created via NewExtractedProduct or NewBoughtProduct")

// OilProduct is a quantity of oil with a traceable origin.
//
// An extracted product points at its extraction operation and belongs to the
// category of whoever owned the olives (a farmer when the extraction was a
// service, a mill when it pressed its own purchased olives). A bought product
// points at its mother product and records the buyer directly.
//
// The owner of an extracted product is not stored: it is derived from the
// lineage on read.
type OilProduct struct {
	identity       kernel.Identity
	cause          CreationCause
	operationID    *kernel.ID
	motherID       *kernel.ID
	ownerCategory  kernel.PartyKind
	acquiredBy     *kernel.Party
	productionDate time.Time
	stock          Stock
	quality        Quality
	isAnalysed     bool
	isPackaged     bool
	isStored       bool

	isConstructed bool
}

// OilProductState is the persisted form of an OilProduct.
type OilProductState struct {
	ID             kernel.ID
	Code           kernel.Code
	Cause          CreationCause
	OperationID    *kernel.ID
	MotherID       *kernel.ID
	OwnerCategory  kernel.PartyKind
	AcquiredBy     *kernel.Party
	ProductionDate time.Time
	Produced       kernel.Quantity
	Remaining      kernel.Quantity
	Quality        Quality
	IsAnalysed     bool
	IsPackaged     bool
	IsStored       bool
}

// NewExtractedProduct creates the oil produced by an extraction operation.
func NewExtractedProduct(
	operationID kernel.ID,
	ownerCategory kernel.PartyKind,
	produced kernel.Quantity,
	productionDate time.Time,
) (*OilProduct, error) {
	if err := operationID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("extraction operation", err)
	}
	if ownerCategory != kernel.FarmerParty && ownerCategory != kernel.MillParty {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"owner category",
			fmt.Errorf("extracted oil cannot belong to a %s", ownerCategory),
		)
	}
	p, err := newOilProduct(Extraction, ownerCategory, produced, productionDate)
	if err != nil {
		return nil, err
	}
	p.operationID = &operationID
	return p, nil
}

// NewBoughtProduct creates the buyer's share of mother after an oil purchase.
// The new product inherits the mother's quality.
func NewBoughtProduct(
	mother *OilProduct,
	buyer kernel.Party,
	quantity kernel.Quantity,
	purchaseDate time.Time,
) (*OilProduct, error) {
	if err := mother.Validate(); err != nil {
		return nil, err
	}
	if !mother.identity.IsAssigned() {
		return nil, errs.NewValueIsRequiredError("mother product")
	}
	if err := buyer.Validate(); err != nil {
		return nil, err
	}
	p, err := newOilProduct(Buying, buyer.Kind(), quantity, purchaseDate)
	if err != nil {
		return nil, err
	}
	motherID := mother.ID()
	p.motherID = &motherID
	p.acquiredBy = &buyer
	p.quality = mother.quality
	p.isAnalysed = mother.isAnalysed
	p.isPackaged = mother.isPackaged
	return p, nil
}

func RestoreOilProduct(s OilProductState) (*OilProduct, error) {
	if err := errors.Join(s.Cause.Validate(), s.OwnerCategory.Validate(), s.Quality.Validate()); err != nil {
		return nil, err
	}
	p, err := newOilProduct(s.Cause, s.OwnerCategory, s.Produced, s.ProductionDate)
	if err != nil {
		return nil, err
	}
	if p.identity, err = kernel.RestoreIdentity(s.ID, s.Code); err != nil {
		return nil, err
	}
	if p.stock, err = RestoreStock(s.Produced, s.Remaining); err != nil {
		return nil, err
	}
	p.operationID = copyID(s.OperationID)
	p.motherID = copyID(s.MotherID)
	if s.AcquiredBy != nil {
		buyer := *s.AcquiredBy
		p.acquiredBy = &buyer
	}
	p.quality = s.Quality
	p.isAnalysed = s.IsAnalysed
	p.isPackaged = s.IsPackaged
	p.isStored = s.IsStored
	return p, nil
}

func newOilProduct(
	cause CreationCause,
	ownerCategory kernel.PartyKind,
	produced kernel.Quantity,
	productionDate time.Time,
) (*OilProduct, error) {
	if productionDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("production date")
	}
	if err := cause.Validate(); err != nil {
		return nil, err
	}
	stock, err := NewStock(produced)
	if err != nil {
		return nil, err
	}
	return &OilProduct{
		cause:          cause,
		ownerCategory:  ownerCategory,
		productionDate: productionDate,
		stock:          stock,
		quality:        NotDefined,
		isConstructed:  true,
	}, nil
}

func (p *OilProduct) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrOilProductIsNotConstructed
	}
	return nil
}

// AssignIdentity stamps the product; the code tag is the creation cause.
func (p *OilProduct) AssignIdentity(id kernel.ID) error {
	return p.identity.Assign(p.cause.Tag(), p.productionDate, id)
}

func (p *OilProduct) ID() kernel.ID {
	return p.identity.ID()
}

func (p *OilProduct) Code() kernel.Code {
	return p.identity.Code()
}

func (p *OilProduct) Cause() CreationCause {
	return p.cause
}

// OperationID is the extraction that produced the oil, nil for bought oil.
func (p *OilProduct) OperationID() *kernel.ID {
	return copyID(p.operationID)
}

// MotherID is the product this one was split from, nil for extracted oil.
func (p *OilProduct) MotherID() *kernel.ID {
	return copyID(p.motherID)
}

func (p *OilProduct) OwnerCategory() kernel.PartyKind {
	return p.ownerCategory
}

// AcquiredBy is the buyer of a bought product.
func (p *OilProduct) AcquiredBy() (kernel.Party, bool) {
	if p.acquiredBy == nil {
		return kernel.Party{}, false
	}
	return *p.acquiredBy, true
}

func (p *OilProduct) ProductionDate() time.Time {
	return p.productionDate
}

func (p *OilProduct) Produced() kernel.Quantity {
	return p.stock.Initial()
}

func (p *OilProduct) Remaining() kernel.Quantity {
	return p.stock.Remaining()
}

func (p *OilProduct) Quality() Quality {
	return p.quality
}

func (p *OilProduct) IsAnalysed() bool {
	return p.isAnalysed
}

func (p *OilProduct) IsPackaged() bool {
	return p.isPackaged
}

func (p *OilProduct) IsStored() bool {
	return p.isStored
}

func (p *OilProduct) Allocate(amount kernel.Quantity) error {
	s, err := p.stock.Allocate(amount)
	if err != nil {
		return err
	}
	p.stock = s
	return nil
}

func (p *OilProduct) Release(amount kernel.Quantity) error {
	s, err := p.stock.Release(amount)
	if err != nil {
		return err
	}
	p.stock = s
	return nil
}

// MarkPackaged records a completed packaging operation.
func (p *OilProduct) MarkPackaged() error {
	if p.isPackaged {
		return errs.NewConflictError("oil product", fmt.Errorf("%s is already packaged", p.Code()))
	}
	p.isPackaged = true
	return nil
}

// MarkStored records a completed storage operation. Stored oil may be moved
// and stored again.
func (p *OilProduct) MarkStored() {
	p.isStored = true
}

// ApplyAnalysis sets the quality measured by a laboratory.
func (p *OilProduct) ApplyAnalysis(quality Quality) error {
	if err := quality.Validate(); err != nil {
		return err
	}
	p.quality = quality
	p.isAnalysed = true
	return nil
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
