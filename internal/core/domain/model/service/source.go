package service

import (
	"errors"
	"fmt"
	"slices"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// SourceKind names the single origin of an operation.
type SourceKind int

const (
	UnknownSource SourceKind = iota
	HarvestSource
	PurchasedOlivesSource
	ServiceOfferSource
)

func (k SourceKind) String() string {
	switch k {
	case HarvestSource:
		return "harvest"
	case PurchasedOlivesSource:
		return "purchased olives"
	case ServiceOfferSource:
		return "service offer"
	default:
		return "unknown"
	}
}

// Source is where an operation's input comes from: a harvest, a set of
// purchased olives, or an approved service offer. Exactly one is set.
type Source struct {
	harvestID         *kernel.ID
	purchasedOliveIDs []kernel.ID
	serviceOfferID    *kernel.ID
}

// NewSource fails with a validation error unless exactly one origin is given.
func NewSource(harvestID *kernel.ID, purchasedOliveIDs []kernel.ID, serviceOfferID *kernel.ID) (Source, error) {
	given := 0
	if harvestID != nil {
		given++
	}
	if len(purchasedOliveIDs) > 0 {
		given++
	}
	if serviceOfferID != nil {
		given++
	}
	if given != 1 {
		return Source{}, errs.NewValueIsInvalidErrorWithCause(
			"operation source",
			fmt.Errorf("exactly one of harvest, purchased olives or service offer is required, got %d", given),
		)
	}

	var err error
	s := Source{}
	switch {
	case harvestID != nil:
		err = harvestID.Validate()
		id := *harvestID
		s.harvestID = &id
	case serviceOfferID != nil:
		err = serviceOfferID.Validate()
		id := *serviceOfferID
		s.serviceOfferID = &id
	default:
		ids := slices.Clone(purchasedOliveIDs)
		slices.Sort(ids)
		if len(slices.Compact(ids)) != len(purchasedOliveIDs) {
			err = errs.NewValueIsInvalidErrorWithCause("purchased olives", errors.New("the same purchase is listed twice"))
		}
		for _, id := range ids {
			err = errors.Join(err, id.Validate())
		}
		s.purchasedOliveIDs = ids
	}
	if err != nil {
		return Source{}, err
	}
	return s, nil
}

func FromHarvest(harvestID kernel.ID) (Source, error) {
	return NewSource(&harvestID, nil, nil)
}

func FromPurchasedOlives(ids ...kernel.ID) (Source, error) {
	return NewSource(nil, ids, nil)
}

func FromServiceOffer(offerID kernel.ID) (Source, error) {
	return NewSource(nil, nil, &offerID)
}

func (s Source) Kind() SourceKind {
	switch {
	case s.harvestID != nil:
		return HarvestSource
	case len(s.purchasedOliveIDs) > 0:
		return PurchasedOlivesSource
	case s.serviceOfferID != nil:
		return ServiceOfferSource
	default:
		return UnknownSource
	}
}

func (s Source) HarvestID() (kernel.ID, bool) {
	if s.harvestID == nil {
		return 0, false
	}
	return *s.harvestID, true
}

func (s Source) PurchasedOliveIDs() []kernel.ID {
	return slices.Clone(s.purchasedOliveIDs)
}

func (s Source) ServiceOfferID() (kernel.ID, bool) {
	if s.serviceOfferID == nil {
		return 0, false
	}
	return *s.serviceOfferID, true
}
