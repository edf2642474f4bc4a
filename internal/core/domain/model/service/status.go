package service

import (
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// RequestStatus is the lifecycle state of a service request.
type RequestStatus int

const (
	RequestUnknown RequestStatus = iota
	RequestPending
	RequestResponded
	RequestConfirmed
	RequestCancelled
)

func getRequestStatusStrings() map[RequestStatus]string {
	return map[RequestStatus]string{
		RequestUnknown:   "Unknown",
		RequestPending:   "Pending",
		RequestResponded: "Responded",
		RequestConfirmed: "Confirmed",
		RequestCancelled: "Cancelled",
	}
}

func ParseRequestStatus(s string) (RequestStatus, error) {
	for status, str := range getRequestStatusStrings() {
		if status != RequestUnknown && str == s {
			return status, nil
		}
	}
	return RequestUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid service request status", s))
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

// IsOpen reports whether mills may still make offers.
func (s RequestStatus) IsOpen() bool {
	return s == RequestPending || s == RequestResponded
}

// Respond: Pending|Responded -> Responded, on every new offer.
func (s RequestStatus) Respond() (RequestStatus, error) {
	if !s.IsOpen() {
		return RequestUnknown, errs.NewConflictError(
			"status is invalid", fmt.Errorf("%s is not a valid status to respond to", s))
	}
	return RequestResponded, nil
}

// Confirm: Responded -> Confirmed, when the farmer approves an offer.
func (s RequestStatus) Confirm() (RequestStatus, error) {
	if s != RequestResponded {
		return RequestUnknown, errs.NewConflictError(
			"status is invalid", fmt.Errorf("%s is not a valid status to confirm", s))
	}
	return RequestConfirmed, nil
}

// Cancel: Pending|Responded -> Cancelled.
func (s RequestStatus) Cancel() (RequestStatus, error) {
	if !s.IsOpen() {
		return RequestUnknown, errs.NewConflictError(
			"status is invalid", fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return RequestCancelled, nil
}

// OfferStatus is the lifecycle state of a service offer. Rejected and the
// four completed statuses are terminal.
type OfferStatus int

const (
	OfferUnknown OfferStatus = iota
	OfferPending
	OfferApproved
	OfferRejected
	OfferExtracted
	OfferPackaged
	OfferStored
	OfferAnalysed
)

func getOfferStatusStrings() map[OfferStatus]string {
	return map[OfferStatus]string{
		OfferUnknown:   "Unknown",
		OfferPending:   "Pending",
		OfferApproved:  "Approved",
		OfferRejected:  "Rejected",
		OfferExtracted: "Extracted",
		OfferPackaged:  "Packaged",
		OfferStored:    "Stored",
		OfferAnalysed:  "Analysed",
	}
}

func ParseOfferStatus(s string) (OfferStatus, error) {
	for status, str := range getOfferStatusStrings() {
		if status != OfferUnknown && str == s {
			return status, nil
		}
	}
	return OfferUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid service offer status", s))
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

// IsCompleted reports whether the work behind the offer is done.
func (s OfferStatus) IsCompleted() bool {
	return s == OfferExtracted || s == OfferPackaged || s == OfferStored || s == OfferAnalysed
}

func (s OfferStatus) Approve() (OfferStatus, error) {
	if s != OfferPending {
		return OfferUnknown, errs.NewConflictError(
			"status is invalid", fmt.Errorf("%s is not a valid status to approve", s))
	}
	return OfferApproved, nil
}

func (s OfferStatus) Reject() (OfferStatus, error) {
	if s != OfferPending {
		return OfferUnknown, errs.NewConflictError(
			"status is invalid", fmt.Errorf("%s is not a valid status to reject", s))
	}
	return OfferRejected, nil
}

// ValidateComplete checks the offer was approved and not yet completed.
func (s OfferStatus) ValidateComplete() error {
	if s != OfferApproved {
		return errs.NewConflictError(
			"status is invalid", fmt.Errorf("%s is not a valid status to complete", s))
	}
	return nil
}

// Complete moves an Approved offer to the completed status of kind.
func (s OfferStatus) Complete(kind Kind) (OfferStatus, error) {
	if err := kind.Validate(); err != nil {
		return OfferUnknown, err
	}
	if err := s.ValidateComplete(); err != nil {
		return OfferUnknown, err
	}
	return kind.CompletedStatus(), nil
}
