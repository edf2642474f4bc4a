package service

import (
	"errors"
	"fmt"
	"strings"

	"oliveflow/internal/pkg/errs"
)

// PackagingType is the container oil is packed into.
type PackagingType string

const (
	DarkGlassBottle        PackagingType = "DGbt"
	TransparentGlassBottle PackagingType = "TGbt"
	PlasticBottle          PackagingType = "Pbt"
	TinCan                 PackagingType = "T"
	BagInBox               PackagingType = "Bx"
	CeramicJar             PackagingType = "C"
)

func (t PackagingType) Validate() error {
	switch t {
	case DarkGlassBottle, TransparentGlassBottle, PlasticBottle, TinCan, BagInBox, CeramicJar:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("packaging type", fmt.Errorf("%q is not a packaging type", string(t)))
}

// AnalysisType is one laboratory measurement.
type AnalysisType string

const (
	FattyAcid     AnalysisType = "F"
	PeroxideValue AnalysisType = "P"
	UVAbsorbance  AnalysisType = "U"
	Acidity       AnalysisType = "A"
)

func (t AnalysisType) Validate() error {
	switch t {
	case FattyAcid, PeroxideValue, UVAbsorbance, Acidity:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("analysis type", fmt.Errorf("%q is not an analysis type", string(t)))
}

// Details is the kind-specific part of a service request. The concrete types
// are ExtractionDetails, PackagingDetails, StorageDetails and AnalysisDetails.
type Details interface {
	Kind() Kind
	validate() error
}

type ExtractionDetails struct {
	Method string
}

func (ExtractionDetails) Kind() Kind { return Extraction }

func (d ExtractionDetails) validate() error {
	if strings.TrimSpace(d.Method) == "" {
		return errs.NewValueIsRequiredError("extraction method")
	}
	return nil
}

type PackagingDetails struct {
	Type   PackagingType
	Volume string
}

func (PackagingDetails) Kind() Kind { return Packaging }

func (d PackagingDetails) validate() error {
	return d.Type.Validate()
}

type StorageDetails struct {
	Condition string
}

func (StorageDetails) Kind() Kind { return Storage }

func (StorageDetails) validate() error { return nil }

// AnalysisDetails lists the requested measurements, at most one of each.
type AnalysisDetails struct {
	Types []AnalysisType
}

func (AnalysisDetails) Kind() Kind { return Analysis }

func (d AnalysisDetails) validate() error {
	if len(d.Types) == 0 {
		return errs.NewValueIsRequiredError("analysis types")
	}
	seen := make(map[AnalysisType]bool, len(d.Types))
	var err error
	for _, t := range d.Types {
		if seen[t] {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"analysis types", fmt.Errorf("%q is listed twice", string(t))))
		}
		seen[t] = true
		err = errors.Join(err, t.Validate())
	}
	return err
}

func validateDetails(kind Kind, d Details) error {
	if d == nil {
		return errs.NewValueIsRequiredError(strings.ToLower(kind.String()) + " details")
	}
	if d.Kind() != kind {
		return errs.NewValueIsInvalidErrorWithCause(
			"details", fmt.Errorf("%s details given for a %s request", d.Kind(), kind))
	}
	return d.validate()
}
