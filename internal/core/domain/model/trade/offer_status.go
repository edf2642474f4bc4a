package trade

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// OfferStatus is the lifecycle state of an offer. Closed and Cancelled are
// terminal.
type OfferStatus int

const (
	// OfferUnknown catches uninitialized values.
	OfferUnknown OfferStatus = iota

	// OfferAvailable accepts requests and reservations.
	OfferAvailable

	// OfferClosed is reached when the available quantity hits zero.
	OfferClosed

	// OfferCancelled is set by the seller.
	OfferCancelled
)

func getOfferStatusStrings() map[OfferStatus]string {
	return map[OfferStatus]string{
		OfferUnknown:   "Unknown",
		OfferAvailable: "Available",
		OfferClosed:    "Closed",
		OfferCancelled: "Cancelled",
	}
}

// ParseOfferStatus is the inverse of String for valid statuses.
func ParseOfferStatus(s string) (OfferStatus, error) {
	for status, str := range getOfferStatusStrings() {
		if status != OfferUnknown && str == s {
			return status, nil
		}
	}
	return OfferUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid offer status", s))
}

func (s OfferStatus) Validate() error {
	if _, ok := getOfferStatusStrings()[s]; !ok || s == OfferUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s OfferStatus) String() string {
	if str, ok := getOfferStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateReserve checks that quantity may still be taken from the offer.
func (s OfferStatus) ValidateReserve() error {
	if s != OfferAvailable {
		return errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reserve from", s),
		)
	}
	return nil
}

// Close transitions Available -> Closed.
func (s OfferStatus) Close() (OfferStatus, error) {
	if s != OfferAvailable {
		return OfferUnknown, errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to close", s),
		)
	}
	return OfferClosed, nil
}

// Cancel transitions Available -> Cancelled.
func (s OfferStatus) Cancel() (OfferStatus, error) {
	if s != OfferAvailable {
		return OfferUnknown, errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return OfferCancelled, nil
}
