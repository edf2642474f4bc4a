package commands

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/core/ports"
	"oliveflow/internal/pkg/errs"
)

// CompleteOperationCommandHandler turns an approved service offer into an
// operation.
//
// Extraction creates the farmer's oil product and links it to the operation.
// Packaging, storage and analysis update the product the request was about.
// An analysis report is uploaded before the transaction commits, so a failed
// upload leaves the offer Approved.
type CompleteOperationCommandHandler struct {
	uowFactory ServiceUoWFactory
	reports    ports.ReportStore
	completer  services.OperationCompleter
}

func NewCompleteOperationCommandHandler(
	uowFactory ServiceUoWFactory,
	reports ports.ReportStore,
) CompleteOperationCommandHandler {
	return CompleteOperationCommandHandler{
		uowFactory: uowFactory,
		reports:    reports,
		completer:  services.NewOperationCompleter(),
	}
}

func (h CompleteOperationCommandHandler) Handle(ctx context.Context, cmd CompleteOperationCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("complete an operation", kernel.MillManagerRole); err != nil {
		return Created{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Created{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mill, err := uow.MillRepository().GetByManager(ctx, cmd.Actor().ID())
	if err != nil {
		return Created{}, err
	}
	offer, err := uow.ServiceOfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return Created{}, err
	}
	request, err := uow.ServiceRequestRepository().Get(ctx, offer.RequestID())
	if err != nil {
		return Created{}, err
	}

	record := cmd.Record()
	report := cmd.Report()
	if analysis, ok := record.(service.AnalysisRecord); ok {
		analysis.ReportKey = ""
		if report != nil {
			analysis.ReportKey = reportKey(offer.Code(), report.Name)
		}
		record = analysis
	}

	now := time.Now().UTC()
	op, err := h.completer.Complete(offer, request, mill, record, now)
	if err != nil {
		return Created{}, err
	}
	if storage, ok := record.(service.StorageRecord); ok {
		if err = checkStorageArea(ctx, uow, mill, storage); err != nil {
			return Created{}, err
		}
	}
	if err = uow.OperationRepository().Add(ctx, op); err != nil {
		return Created{}, err
	}
	if err = h.applyOutcome(ctx, uow, op); err != nil {
		return Created{}, err
	}
	if err = uow.ServiceOfferRepository().Update(ctx, offer); err != nil {
		return Created{}, err
	}

	farmer, err := kernel.NewFarmer(request.FarmerID())
	if err != nil {
		return Created{}, err
	}
	event, err := notification.OperationCompletedEvent(farmer, op.Code(), op.Kind().String(), now)
	if err != nil {
		return Created{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return Created{}, err
	}

	if analysis, ok := record.(service.AnalysisRecord); ok && report != nil {
		if err = h.reports.Put(ctx, analysis.ReportKey, bytes.NewReader(report.Body), report.ContentType); err != nil {
			return Created{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: op.ID(), Code: op.Code()}, nil
}

func (h CompleteOperationCommandHandler) applyOutcome(ctx context.Context, uow ServiceUoW, op *service.Operation) error {
	if op.Kind() == service.Extraction {
		return extract(ctx, uow, h.completer, op)
	}

	product, err := uow.OilProductRepository().Get(ctx, *op.SubjectProductID())
	if err != nil {
		return err
	}
	if err = h.completer.Apply(op, product); err != nil {
		return err
	}
	return uow.OilProductRepository().Update(ctx, product)
}

// checkStorageArea makes sure the oil is kept in an area of the mill that
// stores it.
func checkStorageArea(ctx context.Context, uow ServiceUoW, mill *facility.OilMill, record service.StorageRecord) error {
	area, err := uow.StorageAreaRepository().Get(ctx, record.AreaID)
	if err != nil {
		return err
	}
	owner, err := mill.Party()
	if err != nil {
		return err
	}
	if !area.IsOwnedBy(owner) {
		return errs.NewValueIsInvalidErrorWithCause(
			"storage area", fmt.Errorf("area %d is not a storage area of mill %d", area.ID(), mill.ID()))
	}
	return nil
}

// extract stores the oil of a stored extraction operation and links it back.
func extract(ctx context.Context, uow ServiceUoW, completer services.OperationCompleter, op *service.Operation) error {
	product, err := completer.Extract(op)
	if err != nil {
		return err
	}
	if err = uow.OilProductRepository().Add(ctx, product); err != nil {
		return err
	}
	if err = op.AttachOutput(product.ID()); err != nil {
		return err
	}
	return uow.OperationRepository().Update(ctx, op)
}

func reportKey(offer kernel.Code, name string) string {
	base := path.Base(path.Clean("/" + name))
	if base == "/" || base == "." {
		base = "report"
	}
	return fmt.Sprintf("analysis/%s/%s", offer, base)
}
