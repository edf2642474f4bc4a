package services

import (
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/errs"
)

// OperationCompleter turns an approved service offer into an operation.
//
// Complete checks the offer and the acting mill and builds the operation.
// After the operation is stored, Extract creates the oil of an extraction and
// Apply records packaging, storage or analysis on the subject product.
type OperationCompleter struct{}

func NewOperationCompleter() OperationCompleter {
	return OperationCompleter{}
}

// Complete validates that mill provides the Approved offer, builds the
// operation linked to the offer and moves the offer to its completed status.
func (OperationCompleter) Complete(
	offer *service.Offer,
	request *service.Request,
	mill *facility.OilMill,
	record service.Record,
	at time.Time,
) (*service.Operation, error) {
	if err := offer.Validate(); err != nil {
		return nil, err
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if err := mill.Validate(); err != nil {
		return nil, err
	}
	if !offer.IsProvidedBy(mill.ID()) {
		return nil, errs.NewPermissionDeniedError("complete "+offer.Code().String(), mill.ManagerID())
	}
	if request.ID() != offer.RequestID() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"service request", fmt.Errorf("offer %s does not answer request %s", offer.Code(), request.Code()))
	}
	if err := offer.Status().ValidateComplete(); err != nil {
		return nil, err
	}

	source, err := service.FromServiceOffer(offer.ID())
	if err != nil {
		return nil, err
	}
	var subject *kernel.ID
	if !offer.Kind().ActsOnHarvest() {
		subject = kernel.OptionalID(request.SubjectID())
	}
	op, err := service.NewOperation(offer.Kind(), mill.ID(), source, subject, record)
	if err != nil {
		return nil, err
	}
	if err = offer.Complete(at); err != nil {
		return nil, err
	}
	return op, nil
}

// Extract creates the oil product of a stored extraction operation.
func (OperationCompleter) Extract(op *service.Operation) (*good.OilProduct, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	record, ok := op.Record().(service.ExtractionRecord)
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"operation", fmt.Errorf("%s is not an extraction", op.Kind()))
	}
	return good.NewExtractedProduct(op.ID(), op.OwnerCategory(), record.ProducedQuantity, record.FinishDate)
}

// Apply records a packaging, storage or analysis operation on its product.
func (OperationCompleter) Apply(op *service.Operation, product *good.OilProduct) error {
	if err := op.Validate(); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}
	subject := op.SubjectProductID()
	if subject == nil || *subject != product.ID() {
		return errs.NewValueIsInvalidErrorWithCause(
			"oil product", fmt.Errorf("%s was not the subject of %s", product.Code(), op.Code()))
	}

	switch record := op.Record().(type) {
	case service.PackagingRecord:
		return product.MarkPackaged()
	case service.StorageRecord:
		product.MarkStored()
		return nil
	case service.AnalysisRecord:
		return product.ApplyAnalysis(record.Quality)
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"operation", fmt.Errorf("%s does not act on a product", op.Kind()))
	}
}
