package services

import (
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/errs"
)

// Purchase is the outcome of a confirmed purchase.
type Purchase struct {
	// Remaining is what the offer still has available.
	Remaining kernel.Quantity
	// Closed is true when this purchase sold the offer out.
	Closed bool
}

// PurchaseConfirmer performs the confirmPurchase transition across an offer
// and one of its requests.
//
// Business rules:
//   - the request must belong to the offer
//   - the request must be in a status its trade kind may buy from
//   - the requested quantity is re-checked against what is available now
//   - the offer closes when the purchase takes its last unit
//
// Everything is checked before anything changes, so a failed confirmation
// leaves both aggregates as they were.
type PurchaseConfirmer struct{}

func NewPurchaseConfirmer() PurchaseConfirmer {
	return PurchaseConfirmer{}
}

// Confirm reserves the request's quantity from the offer, closes the offer if
// it is sold out and marks the request Bought.
func (PurchaseConfirmer) Confirm(offer *trade.Offer, request *trade.Request, at time.Time) (Purchase, error) {
	if err := offer.Validate(); err != nil {
		return Purchase{}, err
	}
	if err := request.Validate(); err != nil {
		return Purchase{}, err
	}
	if request.OfferID() != offer.ID() {
		return Purchase{}, errs.NewValueIsInvalidErrorWithCause(
			"request", fmt.Errorf("%s was not placed on %s", request.Code(), offer.Code()))
	}
	if err := request.ValidateBuy(); err != nil {
		return Purchase{}, err
	}

	remaining, err := offer.Reserve(request.Requested(), at)
	if err != nil {
		return Purchase{}, err
	}

	closed := remaining.IsZero()
	if closed {
		if err = offer.Close(at); err != nil {
			return Purchase{}, err
		}
	}
	if err = request.MarkBought(at); err != nil {
		return Purchase{}, err
	}

	return Purchase{Remaining: remaining, Closed: closed}, nil
}

// OliveTransfer builds the PurchasedOlive record of a bought olive request.
func (PurchaseConfirmer) OliveTransfer(request *trade.Request, harvest *good.Harvest, at time.Time) (*good.PurchasedOlive, error) {
	if err := harvest.Validate(); err != nil {
		return nil, err
	}
	if request.Kind() != trade.Olive || request.Status() != trade.RequestBought {
		return nil, errs.NewConflictError("request", fmt.Errorf("%s is not a bought olive request", request.Code()))
	}
	millID := request.Buyer().MillID()
	if millID == nil {
		return nil, errs.NewValueIsRequiredError("buying mill")
	}
	return good.NewPurchasedOlive(request.ID(), *millID, request.Requested(), at, harvest.Variety())
}

// OilTransfer builds the buyer's new oil product of a bought oil request.
func (PurchaseConfirmer) OilTransfer(request *trade.Request, mother *good.OilProduct, at time.Time) (*good.OilProduct, error) {
	if request.Kind() != trade.Oil || request.Status() != trade.RequestBought {
		return nil, errs.NewConflictError("request", fmt.Errorf("%s is not a bought oil request", request.Code()))
	}
	return good.NewBoughtProduct(mother, request.Buyer(), request.Requested(), at)
}
