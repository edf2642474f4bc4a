package http

import (
	"net/http"
	"time"

	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterOilMill(ctx echo.Context, params ActorParams) error {
	const op = "RegisterOilMill"
	var body NewOilMill
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	managerID, err := kernel.UUIDFromString(body.ManagerID)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewRegisterOilMillCommand(actor, body.Name, managerID, body.HasLab, body.HasPackUnit)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.RegisterOilMill.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) RegisterOliveGrove(ctx echo.Context, params ActorParams) error {
	const op = "RegisterOliveGrove"
	var body NewOliveGrove
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewRegisterOliveGroveCommand(actor, body.Name, body.Variety)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.RegisterOliveGrove.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) RecordHarvest(ctx echo.Context, id int64, params ActorParams) error {
	const op = "RecordHarvest"
	var body NewHarvest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	date, err := parseDate("harvest date", body.Date)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	quantity, err := body.Quantity.toDomain("quantity")
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewRecordHarvestCommand(actor, kernel.ID(id), date, quantity, body.Variety)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.RecordHarvest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) RegisterMachine(ctx echo.Context, params ActorParams) error {
	const op = "RegisterMachine"
	var body NewMachine
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	purchaseDate, err := parseDate("purchase date", body.PurchaseDate)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	machineType, err := facility.ParseMachineType(body.Type)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewRegisterMachineCommand(
		actor, body.Reference, body.Brand, body.Manufacturer, purchaseDate, body.Capacity, machineType)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.RegisterMachine.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) RetireMachine(ctx echo.Context, id int64, params ActorParams) error {
	const op = "RetireMachine"
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := commands.NewRetireMachineCommand(actor, kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err = s.handlers.RetireMachine.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ListMachines(ctx echo.Context, id int64) error {
	const op = "ListMachines"
	query, err := queries.NewListMachinesQuery(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	machines, err := s.handlers.ListMachines.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	response := make([]MachineListItem, len(machines))
	for i, m := range machines {
		response[i] = MachineListItem{
			ID:        m.ID.Int64(),
			Reference: m.Reference,
			Type:      m.Type.String(),
			Capacity:  m.Capacity,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) GetMachine(ctx echo.Context, id int64) error {
	const op = "GetMachine"
	query, err := queries.NewGetMachineQuery(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	m, err := s.handlers.GetMachine.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, Machine{
		ID:           m.ID.Int64(),
		MillID:       m.MillID.Int64(),
		MillName:     m.MillName,
		Reference:    m.Reference,
		Brand:        m.Brand,
		Manufacturer: m.Manufacturer,
		PurchaseDate: m.PurchaseDate.Format(time.DateOnly),
		Capacity:     m.Capacity,
		Type:         m.Type.String(),
	})
}

func (s *Server) RegisterStorageArea(ctx echo.Context, params ActorParams) error {
	const op = "RegisterStorageArea"
	var body NewStorageArea
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	var location *facility.Coordinates
	if body.Location != nil {
		location = &facility.Coordinates{Latitude: body.Location.Latitude, Longitude: body.Location.Longitude}
	}

	cmd, err := commands.NewRegisterStorageAreaCommand(
		actor, body.LocalType, body.Address, location, body.ContainerType, body.ContainerCount)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.RegisterStorageArea.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) ListStorageAreas(ctx echo.Context, params ListStorageAreasParams) error {
	const op = "ListStorageAreas"
	owner, err := storageOwnerFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	query, err := queries.NewListStorageAreasQuery(owner)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	areas, err := s.handlers.ListStorageAreas.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	response := make([]StorageArea, len(areas))
	for i, a := range areas {
		response[i] = StorageArea{
			ID:             a.ID.Int64(),
			Owner:          *partyFrom(&a.Owner),
			LocalType:      a.LocalType,
			Address:        a.Address,
			ContainerType:  a.ContainerType,
			ContainerCount: a.ContainerCount,
		}
		if a.Location != nil {
			response[i].Location = &Coordinates{Latitude: a.Location.Latitude, Longitude: a.Location.Longitude}
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// storageOwnerFrom requires exactly one of millId and farmerId.
func storageOwnerFrom(params ListStorageAreasParams) (kernel.Party, error) {
	switch {
	case params.MillID != nil && params.FarmerID == nil:
		return kernel.NewMill(kernel.ID(*params.MillID))
	case params.FarmerID != nil && params.MillID == nil:
		farmerID, err := kernel.UUIDFromString(params.FarmerID.String())
		if err != nil {
			return kernel.Party{}, err
		}
		return kernel.NewFarmer(farmerID)
	default:
		return kernel.Party{}, errs.NewValueIsRequiredError("exactly one of millId and farmerId")
	}
}
