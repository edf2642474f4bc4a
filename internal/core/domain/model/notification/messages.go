package notification

import (
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
)

// The constructors below fix the wording of each event.

func RequestPlacedEvent(seller kernel.Party, offer kernel.Code, requested kernel.Quantity, at time.Time) (Event, error) {
	return NewEvent(RequestPlaced, seller, offer,
		fmt.Sprintf("A purchase request for %s was placed on your offer %s.", requested, offer), at)
}

func RequestApprovedEvent(buyer kernel.Party, request kernel.Code, requested kernel.Quantity, good string, at time.Time) (Event, error) {
	return NewEvent(RequestApproved, buyer, request,
		fmt.Sprintf("Your %s purchase request for %s has been approved by the seller.", good, requested), at)
}

func RequestRejectedEvent(buyer kernel.Party, request kernel.Code, requested kernel.Quantity, good string, at time.Time) (Event, error) {
	return NewEvent(RequestRejected, buyer, request,
		fmt.Sprintf("Your %s purchase request for %s has been rejected by the seller.", good, requested), at)
}

// PurchaseConfirmedEvent tells the seller whether the offer sold out.
func PurchaseConfirmedEvent(
	seller kernel.Party,
	offer kernel.Code,
	bought kernel.Quantity,
	good string,
	closed bool,
	at time.Time,
) (Event, error) {
	state := "is remaining available"
	if closed {
		state = "is closed"
	}
	return NewEvent(PurchaseConfirmed, seller, offer,
		fmt.Sprintf("The purchase of %s of %s has been confirmed and your sale offer %s.", bought, good, state), at)
}

func OfferCancelledEvent(buyer kernel.Party, offer kernel.Code, at time.Time) (Event, error) {
	return NewEvent(OfferCancelled, buyer, offer,
		fmt.Sprintf("The sale offer %s you requested from has been cancelled.", offer), at)
}

func NeedAnsweredEvent(creator kernel.Party, need kernel.Code, offer kernel.Code, at time.Time) (Event, error) {
	return NewEvent(NeedAnswered, creator, need,
		fmt.Sprintf("Your need %s has a new offer: %s.", need, offer), at)
}

func ServiceOfferedEvent(farmer kernel.Party, request kernel.Code, price kernel.Money, at time.Time) (Event, error) {
	return NewEvent(ServiceOffered, farmer, request,
		fmt.Sprintf("An oil mill offered to serve your request %s for %s.", request, price), at)
}

func ServiceOfferApprovedEvent(mill kernel.Party, offer kernel.Code, at time.Time) (Event, error) {
	return NewEvent(ServiceOfferApproved, mill, offer,
		fmt.Sprintf("Your service offer %s has been approved by the farmer.", offer), at)
}

func ServiceOfferRejectedEvent(mill kernel.Party, offer kernel.Code, at time.Time) (Event, error) {
	return NewEvent(ServiceOfferRejected, mill, offer,
		fmt.Sprintf("Your service offer %s has been rejected.", offer), at)
}

func ServiceRequestCancelledEvent(mill kernel.Party, request kernel.Code, at time.Time) (Event, error) {
	return NewEvent(ServiceRequestCancelled, mill, request,
		fmt.Sprintf("The service request %s has been cancelled by the farmer.", request), at)
}

func OperationCompletedEvent(farmer kernel.Party, operation kernel.Code, kind string, at time.Time) (Event, error) {
	return NewEvent(OperationCompleted, farmer, operation,
		fmt.Sprintf("The %s of your oil has been completed: %s.", kind, operation), at)
}
