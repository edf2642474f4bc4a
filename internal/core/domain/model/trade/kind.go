package trade

import (
	"fmt"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// Kind is the good being traded.
type Kind int

const (
	UnknownKind Kind = iota
	Olive
	Oil
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "unknown",
		Olive:       "olive",
		Oil:         "oil",
	}
}

func ParseKind(s string) (Kind, error) {
	for k, str := range getKindStrings() {
		if k != UnknownKind && str == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a traded good", s))
}

func (k Kind) Validate() error {
	if k != Olive && k != Oil {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a traded good", k))
	}
	return nil
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// GoodName is how messages refer to the traded good.
func (k Kind) GoodName() string {
	if k == Olive {
		return "olives"
	}
	return k.String()
}

// OfferTag, RequestTag and NeedTag prefix the codes of each trade entity.
func (k Kind) OfferTag() string {
	return k.String() + " selling"
}

func (k Kind) RequestTag() string {
	return k.String() + " purchase"
}

func (k Kind) NeedTag() string {
	return k.String() + " need"
}

// validateSeller: olives are sold by farmers, oil by a mill or a farmer.
func (k Kind) validateSeller(seller kernel.Party) error {
	if err := seller.Validate(); err != nil {
		return err
	}
	switch {
	case k == Olive && seller.Kind() == kernel.FarmerParty:
		return nil
	case k == Oil && (seller.Kind() == kernel.MillParty || seller.Kind() == kernel.FarmerParty):
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("seller", fmt.Errorf("a %s cannot sell %s", seller.Kind(), k))
}

// validateBuyer: olives are bought by mills, oil by a mill or a consumer.
func (k Kind) validateBuyer(buyer kernel.Party) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	switch {
	case k == Olive && buyer.Kind() == kernel.MillParty:
		return nil
	case k == Oil && (buyer.Kind() == kernel.MillParty || buyer.Kind() == kernel.ConsumerParty):
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("buyer", fmt.Errorf("a %s cannot buy %s", buyer.Kind(), k))
}

// validateNeedCreator: an olive need is posted by a mill, an oil need by a
// mill or a consumer.
func (k Kind) validateNeedCreator(creator kernel.Party) error {
	if err := k.validateBuyer(creator); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("need creator", err)
	}
	return nil
}

// allowsDirectPurchase reports whether a Pending request may be bought
// without prior approval.
func (k Kind) allowsDirectPurchase() bool {
	return k == Oil
}
