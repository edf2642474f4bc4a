package service

import (
	"fmt"
	"strings"

	"oliveflow/internal/pkg/errs"
)

// Kind discriminates the four services.
type Kind int

const (
	UnknownKind Kind = iota
	Extraction
	Packaging
	Storage
	Analysis
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "Unknown",
		Extraction:  "Extraction",
		Packaging:   "Packaging",
		Storage:     "Storage",
		Analysis:    "Analysis",
	}
}

func ParseKind(s string) (Kind, error) {
	for k, str := range getKindStrings() {
		if k != UnknownKind && strings.EqualFold(str, s) {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a service", s))
}

func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok || k == UnknownKind {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a service", k))
	}
	return nil
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}

// RequestTag is the code tag of a request, e.g. "extractionrequest".
func (k Kind) RequestTag() string {
	return strings.ToLower(k.String()) + "request"
}

// OfferTag is the code tag of an offer, e.g. "storageoffer".
func (k Kind) OfferTag() string {
	return strings.ToLower(k.String()) + "offer"
}

// OperationTag is the code tag of the operation record of this kind.
func (k Kind) OperationTag() string {
	switch k {
	case Extraction:
		return "extractionoperation"
	case Packaging:
		return "packaging"
	case Storage:
		return "oilstorage"
	case Analysis:
		return "oilanalysis"
	default:
		return ""
	}
}

// CompletedStatus is the terminal offer status reached when the work is done.
func (k Kind) CompletedStatus() OfferStatus {
	switch k {
	case Extraction:
		return OfferExtracted
	case Packaging:
		return OfferPackaged
	case Storage:
		return OfferStored
	case Analysis:
		return OfferAnalysed
	default:
		return OfferUnknown
	}
}

// ActsOnHarvest reports whether the subject of the service is a harvest
// rather than an oil product.
func (k Kind) ActsOnHarvest() bool {
	return k == Extraction
}
