package http

import (
	"errors"
	"net/http"

	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func (s *Server) CreateServiceRequest(ctx echo.Context, params ActorParams) error {
	const op = "CreateServiceRequest"
	var body NewServiceRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	kind, err := service.ParseKind(body.Kind)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	considered, err := body.Quantity.toDomain("quantity")
	if err != nil {
		return s.fail(ctx, op, err)
	}
	price, err := body.Price.toDomain("price")
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewCreateServiceRequestCommand(
		actor, kind, kernel.ID(body.SubjectID), considered, price, body.details(kind))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CreateServiceRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (r NewServiceRequest) details(kind service.Kind) service.Details {
	switch kind {
	case service.Extraction:
		return service.ExtractionDetails{Method: r.Method}
	case service.Packaging:
		return service.PackagingDetails{Type: service.PackagingType(r.PackagingType), Volume: r.Volume}
	case service.Storage:
		return service.StorageDetails{Condition: r.Condition}
	case service.Analysis:
		types := make([]service.AnalysisType, len(r.AnalysisTypes))
		for i, t := range r.AnalysisTypes {
			types[i] = service.AnalysisType(t)
		}
		return service.AnalysisDetails{Types: types}
	}
	return nil
}

func (s *Server) CancelServiceRequest(ctx echo.Context, id int64, params ActorParams) error {
	const op = "CancelServiceRequest"
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := commands.NewCancelServiceRequestCommand(actor, kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err = s.handlers.CancelServiceRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CreateServiceOffer(ctx echo.Context, id int64, params ActorParams) error {
	const op = "CreateServiceOffer"
	var body NewServiceOffer
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	price, err := body.Price.toDomain("price")
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewCreateServiceOfferCommand(actor, kernel.ID(id), price, body.Negotiable)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CreateServiceOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) ApproveServiceOffer(ctx echo.Context, id int64, params ActorParams) error {
	return s.reviewServiceOffer(ctx, "ApproveServiceOffer", id, params, commands.NewApproveServiceOfferCommand)
}

func (s *Server) RejectServiceOffer(ctx echo.Context, id int64, params ActorParams) error {
	return s.reviewServiceOffer(ctx, "RejectServiceOffer", id, params, commands.NewRejectServiceOfferCommand)
}

func (s *Server) reviewServiceOffer(
	ctx echo.Context,
	op string,
	id int64,
	params ActorParams,
	newCommand func(kernel.Actor, kernel.ID) (commands.ReviewServiceOfferCommand, error),
) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := newCommand(actor, kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err = s.handlers.ReviewServiceOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CompleteOperation(ctx echo.Context, id int64, params ActorParams) error {
	const op = "CompleteOperation"
	var body Completion
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	record, err := body.record()
	if err != nil {
		return s.fail(ctx, op, err)
	}
	var report *commands.Report
	if body.Report != nil {
		report = &commands.Report{
			Name:        body.Report.Name,
			ContentType: body.Report.ContentType,
			Body:        body.Report.Content,
		}
	}

	cmd, err := commands.NewCompleteOperationCommand(actor, kernel.ID(id), record, report)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CompleteOperation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

// record picks the single record present in the completion.
func (c Completion) record() (service.Record, error) {
	var (
		records []service.Record
		err     error
	)
	if c.Extraction != nil {
		r, e := c.Extraction.toDomain()
		records, err = append(records, r), errors.Join(err, e)
	}
	if c.Packaging != nil {
		r, e := c.Packaging.toDomain()
		records, err = append(records, r), errors.Join(err, e)
	}
	if c.Storage != nil {
		r, e := c.Storage.toDomain()
		records, err = append(records, r), errors.Join(err, e)
	}
	if c.Analysis != nil {
		r, e := c.Analysis.toDomain()
		records, err = append(records, r), errors.Join(err, e)
	}
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"completion", errors.New("exactly one of extraction, packaging, storage or analysis is required"))
	}
	return records[0], nil
}

func (e Extraction) toDomain() (service.ExtractionRecord, error) {
	reception, errReception := parseDate("reception date", e.ReceptionDate)
	start, errStart := parseDate("start date", e.StartDate)
	finish, errFinish := parseDate("finish date", e.FinishDate)
	olives, errOlives := e.OlivesQuantity.toDomain("olives quantity")
	produced, errProduced := e.ProducedQuantity.toDomain("produced quantity")
	temperature := decimal.Zero
	var errTemperature error
	if e.PressTemperature != "" {
		temperature, errTemperature = decimal.NewFromString(e.PressTemperature)
		if errTemperature != nil {
			errTemperature = errs.NewValueIsInvalidErrorWithCause("press temperature", errTemperature)
		}
	}
	if err := errors.Join(errReception, errStart, errFinish, errOlives, errProduced, errTemperature); err != nil {
		return service.ExtractionRecord{}, err
	}
	return service.ExtractionRecord{
		ReceptionDate:    reception,
		StartDate:        start,
		FinishDate:       finish,
		OlivesQuantity:   olives,
		ProducedQuantity: produced,
		Method:           e.Method,
		WaterPer100Kg:    e.WaterPer100Kg,
		MixingMinutes:    e.MixingMinutes,
		PressTemperature: temperature,
		Filtration:       e.Filtration,
	}, nil
}

func (p Packaging) toDomain() (service.PackagingRecord, error) {
	date, errDate := parseDate("packing date", p.PackingDate)
	quantity, errQuantity := p.Quantity.toDomain("packaged quantity")
	if err := errors.Join(errDate, errQuantity); err != nil {
		return service.PackagingRecord{}, err
	}
	return service.PackagingRecord{
		Reference:   p.Reference,
		PackingDate: date,
		Quantity:    quantity,
		Type:        service.PackagingType(p.PackagingType),
		Volume:      p.Volume,
		Factory:     p.Factory,
	}, nil
}

func (s Storage) toDomain() (service.StorageRecord, error) {
	date, errDate := parseDate("storage date", s.StorageDate)
	stored, errStored := s.StoredQuantity.toDomain("stored quantity")
	if err := errors.Join(errDate, errStored); err != nil {
		return service.StorageRecord{}, err
	}
	return service.StorageRecord{StorageDate: date, StoredQuantity: stored, AreaID: kernel.ID(s.AreaID)}, nil
}

func (a Analysis) toDomain() (service.AnalysisRecord, error) {
	date, errDate := parseDate("analysis date", a.AnalysisDate)
	quality, errQuality := good.ParseQuality(a.Quality)
	if err := errors.Join(errDate, errQuality); err != nil {
		return service.AnalysisRecord{}, err
	}
	return service.AnalysisRecord{
		Reference:     a.Reference,
		AnalysisDate:  date,
		LabName:       a.LabName,
		Quality:       quality,
		FattyAcid:     a.FattyAcid,
		Acidity:       a.Acidity,
		PeroxideValue: a.PeroxideValue,
		UVAbsorbance:  a.UVAbsorbance,
	}, nil
}

func (s *Server) CreateOperation(ctx echo.Context, params ActorParams) error {
	const op = "CreateOperation"
	var body NewOperation
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	millID, err := optionalID(body.MillID)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	harvestID, err := optionalID(body.HarvestID)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	purchased := make([]kernel.ID, len(body.PurchasedOliveIDs))
	for i, v := range body.PurchasedOliveIDs {
		purchased[i] = kernel.ID(v)
	}
	record, err := body.Extraction.toDomain()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewCreateOperationCommand(actor, millID, harvestID, purchased, record)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CreateOperation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}
