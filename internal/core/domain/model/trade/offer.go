package trade

import (
	"errors"
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var (
	// ErrOfferIsNotConstructed is returned when an Offer was not created
	// through NewOffer or RestoreOffer.
	ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")
)

// Offer advertises a quantity of a good for sale.
//
// Offer follows these invariants:
//   - 0 <= available <= initial, in the unit of initial
//   - available only decreases, and only through Reserve
//   - Closed if and only if available reached zero through reservations
//   - the code is assigned once, after the first insert
//
// The version is the optimistic concurrency token of the stored row. Offer
// reads it but never changes it; the repository bumps it on every update.
type Offer struct {
	identity      kernel.Identity
	kind          Kind
	goodID        kernel.ID
	seller        kernel.Party
	initial       kernel.Quantity
	available     kernel.Quantity
	price         kernel.Money
	creationDate  time.Time
	updateDate    time.Time
	status        OfferStatus
	needID        *kernel.ID
	motherOfferID *kernel.ID
	transport     Transport
	version       int64

	isConstructed bool
}

// OfferState is the persisted form of an Offer.
type OfferState struct {
	ID            kernel.ID
	Code          kernel.Code
	Kind          Kind
	GoodID        kernel.ID
	Seller        kernel.Party
	Initial       kernel.Quantity
	Available     kernel.Quantity
	Price         kernel.Money
	CreationDate  time.Time
	UpdateDate    time.Time
	Status        OfferStatus
	NeedID        *kernel.ID
	MotherOfferID *kernel.ID
	Transport     Transport
	Version       int64
}

// NewOffer creates an Available offer for initial of good goodID.
//
// The good is a harvest for olive offers and an oil product for oil offers.
// Checking that the seller owns that good is the caller's job; NewOffer only
// checks that this kind of party may sell this kind of good.
//
// Example:
//
//	seller, _ := kernel.NewFarmer(actorID)
//	offer, err := trade.NewOffer(trade.Olive, harvest.ID(), seller, quantity, price, now)
func NewOffer(
	kind Kind,
	goodID kernel.ID,
	seller kernel.Party,
	initial kernel.Quantity,
	price kernel.Money,
	creationDate time.Time,
) (*Offer, error) {
	o := &Offer{
		status:        OfferAvailable,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setKind(kind),
		o.setGoodID(goodID),
		o.setInitial(initial),
		price.Validate(),
		o.setCreationDate(creationDate),
	); err != nil {
		return nil, err
	}
	if err := kind.validateSeller(seller); err != nil {
		return nil, err
	}

	o.seller = seller
	o.price = price
	return o, nil
}

// RestoreOffer rebuilds an offer from storage, re-checking its invariants.
func RestoreOffer(s OfferState) (*Offer, error) {
	o, err := NewOffer(s.Kind, s.GoodID, s.Seller, s.Initial, s.Price, s.CreationDate)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(s.Status.Validate(), s.Transport.Validate()); err != nil {
		return nil, err
	}
	over, err := s.Available.GreaterThan(s.Initial)
	if err != nil {
		return nil, err
	}
	if over {
		return nil, errs.NewValueIsOutOfRangeError("available quantity", s.Available, 0, s.Initial)
	}
	if o.identity, err = kernel.RestoreIdentity(s.ID, s.Code); err != nil {
		return nil, err
	}

	o.available = s.Available
	o.updateDate = s.UpdateDate
	o.status = s.Status
	o.needID = copyID(s.NeedID)
	o.motherOfferID = copyID(s.MotherOfferID)
	o.transport = s.Transport
	o.version = s.Version
	return o, nil
}

// Validate ensures the Offer was built through a constructor.
func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

// AssignIdentity stamps the offer with its storage ID and the code derived
// from the kind tag and the creation date.
func (o *Offer) AssignIdentity(id kernel.ID) error {
	return o.identity.Assign(o.kind.OfferTag(), o.creationDate, id)
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

// GoodID is the harvest (olive) or oil product (oil) on offer.
func (o *Offer) GoodID() kernel.ID {
	return o.goodID
}

func (o *Offer) Seller() kernel.Party {
	return o.seller
}

func (o *Offer) Initial() kernel.Quantity {
	return o.initial
}

func (o *Offer) Available() kernel.Quantity {
	return o.available
}

func (o *Offer) Price() kernel.Money {
	return o.price
}

func (o *Offer) CreationDate() time.Time {
	return o.creationDate
}

func (o *Offer) UpdateDate() time.Time {
	return o.updateDate
}

func (o *Offer) Status() OfferStatus {
	return o.status
}

// NeedID is the need the offer answers, if any.
func (o *Offer) NeedID() *kernel.ID {
	return copyID(o.needID)
}

// MotherOfferID is the oil offer this one was derived from, if any.
func (o *Offer) MotherOfferID() *kernel.ID {
	return copyID(o.motherOfferID)
}

// Transport is UnspecifiedTransport until the seller arranges one.
func (o *Offer) Transport() Transport {
	return o.transport
}

func (o *Offer) Version() int64 {
	return o.version
}

// IsOwnedBy reports whether party is the seller.
func (o *Offer) IsOwnedBy(party kernel.Party) bool {
	return o.seller.IsEqual(party)
}

// IsAvailable reports whether the offer still accepts requests.
func (o *Offer) IsAvailable() bool {
	return o.status == OfferAvailable
}

// AnswerNeed links the offer to need and marks the need Responded.
// Only an unsaved offer can be linked, and the kinds must match.
func (o *Offer) AnswerNeed(need *Need, at time.Time) error {
	if err := need.Validate(); err != nil {
		return err
	}
	if o.identity.IsAssigned() {
		return errs.NewConflictError("offer", errors.New("an offer is linked to a need only at creation"))
	}
	if need.Kind() != o.kind {
		return errs.NewValueIsInvalidErrorWithCause(
			"need", fmt.Errorf("a %s offer cannot answer a %s need", o.kind, need.Kind()))
	}
	if err := need.Respond(at); err != nil {
		return err
	}
	id := need.ID()
	o.needID = &id
	return nil
}

// ArrangeTransport states how the goods reach the buyer. A closed or
// cancelled offer keeps its arrangement.
func (o *Offer) ArrangeTransport(t Transport) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t == UnspecifiedTransport {
		return errs.NewValueIsRequiredError("transport")
	}
	if !o.IsAvailable() {
		return errs.NewConflictError("offer", fmt.Errorf("%s is %s", o.Code(), o.status))
	}
	o.transport = t
	return nil
}

// DeriveFrom records the oil offer this one was split from.
//
// The mother must be an oil offer of the same seller, selling either the
// same oil product or the product this offer's good was split from.
// goodMotherID is the mother product of this offer's good, nil if it has none.
func (o *Offer) DeriveFrom(mother *Offer, goodMotherID *kernel.ID) error {
	if err := mother.Validate(); err != nil {
		return err
	}
	if o.kind != Oil || mother.kind != Oil {
		return errs.NewValueIsInvalidErrorWithCause("mother offer", errors.New("only oil offers derive from one another"))
	}
	if o.identity.IsAssigned() && mother.ID() == o.ID() {
		return errs.NewValueIsInvalidErrorWithCause("mother offer", errors.New("an offer cannot derive from itself"))
	}
	id := mother.ID()
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("mother offer", err)
	}
	if !mother.seller.IsEqual(o.seller) {
		return errs.NewValueIsInvalidErrorWithCause(
			"mother offer", fmt.Errorf("%s is sold by %s, not %s", mother.Code(), mother.seller, o.seller))
	}
	if mother.goodID != o.goodID && (goodMotherID == nil || *goodMotherID != mother.goodID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"mother offer", fmt.Errorf("%s sells another oil product", mother.Code()))
	}
	o.motherOfferID = &id
	return nil
}

// Reserve takes amount out of the available quantity and returns what is
// left. It is all or nothing: on any error the offer is unchanged.
//
// Reserve does not close the offer; the caller decides with Close once the
// returned quantity is zero.
//
// Errors:
//   - ConflictError if the offer is not Available
//   - ValueIsInvalidError if amount is not positive or in another unit
//   - InsufficientQuantityError if amount > available
func (o *Offer) Reserve(amount kernel.Quantity, at time.Time) (kernel.Quantity, error) {
	if err := o.status.ValidateReserve(); err != nil {
		return kernel.Quantity{}, err
	}
	if err := amount.ValidatePositive("reserved quantity"); err != nil {
		return kernel.Quantity{}, err
	}
	available, err := o.available.Sub(amount)
	if err != nil {
		var insufficient *errs.InsufficientQuantityError
		if errors.As(err, &insufficient) {
			return kernel.Quantity{}, errs.NewInsufficientQuantityError("offer", amount, o.available)
		}
		return kernel.Quantity{}, err
	}

	o.available = available
	o.updateDate = at
	return available, nil
}

// Close marks a sold-out offer Closed. An offer with quantity left stays open.
func (o *Offer) Close(at time.Time) error {
	if !o.available.IsZero() {
		return errs.NewConflictError(
			"offer",
			fmt.Errorf("%s still has %s available", o.Code(), o.available),
		)
	}
	status, err := o.status.Close()
	if err != nil {
		return err
	}
	o.status = status
	o.updateDate = at
	return nil
}

// Cancel withdraws the offer and returns the quantity that was still
// available, which the caller gives back to the good.
func (o *Offer) Cancel(at time.Time) (kernel.Quantity, error) {
	status, err := o.status.Cancel()
	if err != nil {
		return kernel.Quantity{}, err
	}
	o.status = status
	o.updateDate = at
	return o.available, nil
}

func (o *Offer) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Offer) setGoodID(goodID kernel.ID) error {
	if err := goodID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("good", err)
	}
	o.goodID = goodID
	return nil
}

func (o *Offer) setInitial(initial kernel.Quantity) error {
	if err := initial.ValidatePositive("initial quantity"); err != nil {
		return err
	}
	o.initial = initial
	o.available = initial
	return nil
}

func (o *Offer) setCreationDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("creation date")
	}
	o.creationDate = date
	o.updateDate = date
	return nil
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
