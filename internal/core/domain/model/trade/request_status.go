package trade

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// RequestStatus is the lifecycle state of a purchase request. Bought and
// Rejected are terminal.
type RequestStatus int

const (
	RequestUnknown RequestStatus = iota
	RequestPending
	RequestApproved
	RequestRejected
	RequestBought
)

func getRequestStatusStrings() map[RequestStatus]string {
	return map[RequestStatus]string{
		RequestUnknown:  "Unknown",
		RequestPending:  "Pending",
		RequestApproved: "Approved",
		RequestRejected: "Rejected",
		RequestBought:   "Bought",
	}
}

func ParseRequestStatus(s string) (RequestStatus, error) {
	for status, str := range getRequestStatusStrings() {
		if status != RequestUnknown && str == s {
			return status, nil
		}
	}
	return RequestUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid request status", s))
}

func (s RequestStatus) Validate() error {
	if _, ok := getRequestStatusStrings()[s]; !ok || s == RequestUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s RequestStatus) String() string {
	if str, ok := getRequestStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestBought || s == RequestRejected
}

// IsOpen reports whether the request still waits on the seller or the buyer.
func (s RequestStatus) IsOpen() bool {
	return s == RequestPending || s == RequestApproved
}

// Approve transitions Pending -> Approved.
func (s RequestStatus) Approve() (RequestStatus, error) {
	if s != RequestPending {
		return RequestUnknown, errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s),
		)
	}
	return RequestApproved, nil
}

// Reject transitions Pending -> Rejected.
func (s RequestStatus) Reject() (RequestStatus, error) {
	if s != RequestPending {
		return RequestUnknown, errs.NewConflictError(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s),
		)
	}
	return RequestRejected, nil
}

// ValidateBuy checks the purchase entry point: Approved always, Pending only
// when direct is true.
func (s RequestStatus) ValidateBuy(direct bool) error {
	if s == RequestApproved || (direct && s == RequestPending) {
		return nil
	}
	return errs.NewConflictError(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to buy", s),
	)
}

// Buy transitions to Bought after ValidateBuy.
func (s RequestStatus) Buy(direct bool) (RequestStatus, error) {
	if err := s.ValidateBuy(direct); err != nil {
		return RequestUnknown, err
	}
	return RequestBought, nil
}
