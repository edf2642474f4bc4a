package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Record is what a mill reports when it completes an operation. The concrete
// types are ExtractionRecord, PackagingRecord, StorageRecord and
// AnalysisRecord.
type Record interface {
	Kind() Kind
	// Date is the day the operation happened; it dates the operation's code.
	Date() time.Time
	validate() error
}

type ExtractionRecord struct {
	ReceptionDate    time.Time
	StartDate        time.Time
	FinishDate       time.Time
	OlivesQuantity   kernel.Quantity
	ProducedQuantity kernel.Quantity
	Method           string
	WaterPer100Kg    int
	MixingMinutes    int
	PressTemperature decimal.Decimal
	Filtration       bool
}

func (ExtractionRecord) Kind() Kind { return Extraction }

func (r ExtractionRecord) Date() time.Time { return r.FinishDate }

func (r ExtractionRecord) validate() error {
	err := errors.Join(
		r.OlivesQuantity.ValidatePositive("olives quantity"),
		r.ProducedQuantity.ValidatePositive("produced quantity"),
	)
	if r.StartDate.IsZero() || r.FinishDate.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("extraction dates"))
	} else if r.FinishDate.Before(r.StartDate) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"finish date", fmt.Errorf("%s is before the start date", r.FinishDate.Format(time.DateOnly))))
	}
	if !r.ReceptionDate.IsZero() && r.StartDate.Before(r.ReceptionDate) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"start date", errors.New("olives cannot be pressed before they are received")))
	}
	if r.ProducedQuantity.Unit() == kernel.Tonnes {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"produced quantity", errors.New("oil is measured in kilograms or liters")))
	}
	return err
}

type PackagingRecord struct {
	Reference   string
	PackingDate time.Time
	Quantity    kernel.Quantity
	Type        PackagingType
	Volume      string
	Factory     string
}

func (PackagingRecord) Kind() Kind { return Packaging }

func (r PackagingRecord) Date() time.Time { return r.PackingDate }

func (r PackagingRecord) validate() error {
	err := errors.Join(r.Quantity.ValidatePositive("packaged quantity"), r.Type.Validate())
	if strings.TrimSpace(r.Reference) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("packaging reference"))
	}
	if r.PackingDate.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("packaging date"))
	}
	return err
}

// StorageRecord places the oil in one of the registered storage areas.
type StorageRecord struct {
	StorageDate    time.Time
	StoredQuantity kernel.Quantity
	AreaID         kernel.ID
}

func (StorageRecord) Kind() Kind { return Storage }

func (r StorageRecord) Date() time.Time { return r.StorageDate }

func (r StorageRecord) validate() error {
	err := r.StoredQuantity.ValidatePositive("stored quantity")
	if r.AreaID.Validate() != nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("storage area"))
	}
	if r.StorageDate.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("storage date"))
	}
	return err
}

// AnalysisRecord carries the laboratory results. ReportKey is the object key
// of the uploaded report, empty when no file was provided.
type AnalysisRecord struct {
	Reference     string
	AnalysisDate  time.Time
	LabName       string
	Quality       good.Quality
	FattyAcid     string
	Acidity       string
	PeroxideValue string
	UVAbsorbance  string
	ReportKey     string
}

func (AnalysisRecord) Kind() Kind { return Analysis }

func (r AnalysisRecord) Date() time.Time { return r.AnalysisDate }

func (r AnalysisRecord) validate() error {
	err := r.Quality.Validate()
	if strings.TrimSpace(r.Reference) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("analysis reference"))
	}
	if strings.TrimSpace(r.LabName) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("lab name"))
	}
	if r.AnalysisDate.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("analysis date"))
	}
	return err
}

func validateRecord(kind Kind, r Record) error {
	if r == nil {
		return errs.NewValueIsRequiredError("operation record")
	}
	if r.Kind() != kind {
		return errs.NewValueIsInvalidErrorWithCause(
			"operation record", fmt.Errorf("a %s record cannot complete a %s operation", r.Kind(), kind))
	}
	return r.validate()
}
