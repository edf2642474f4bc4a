package trade

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// Transport says how the goods of an offer reach the buyer.
type Transport int

const (
	UnspecifiedTransport Transport = iota
	// Delivered by the seller.
	Delivered
	// Pickup means the buyer recovers the goods locally.
	Pickup
)

func getTransportStrings() map[Transport]string {
	return map[Transport]string{
		UnspecifiedTransport: "unspecified",
		Delivered:            "delivered",
		Pickup:               "pickup",
	}
}

func ParseTransport(s string) (Transport, error) {
	for t, str := range getTransportStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnspecifiedTransport, errs.NewValueIsInvalidErrorWithCause("transport", fmt.Errorf("%q is not a transport", s))
}

func (t Transport) Validate() error {
	if t < UnspecifiedTransport || t > Pickup {
		return errs.NewValueIsInvalidErrorWithCause("transport", fmt.Errorf("%d is not a transport", t))
	}
	return nil
}

func (t Transport) String() string {
	if s, ok := getTransportStrings()[t]; ok {
		return s
	}
	return "unspecified"
}
