package http

import (
	"net/http"
	"time"

	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) GetProductOwner(ctx echo.Context, id int64) error {
	const op = "GetProductOwner"
	query, err := queries.NewResolveOwnerQuery(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	owner, err := s.handlers.ResolveOwner.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, Ownership{
		ProductID:     owner.ProductID.Int64(),
		OwnerCategory: owner.OwnerCategory.String(),
		Owner:         partyFrom(owner.Owner),
		Holder:        partyFrom(owner.Holder),
	})
}

func (s *Server) GetProductLineage(ctx echo.Context, id int64) error {
	const op = "GetProductLineage"
	query, err := queries.NewProductLineageQuery(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	chain, err := s.handlers.ProductLineage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	response := make([]LineageLink, len(chain))
	for i, link := range chain {
		response[i] = LineageLink{
			ID:             link.ID.Int64(),
			Code:           link.Code.String(),
			Cause:          link.Cause.String(),
			ProductionDate: link.ProductionDate.Format(time.DateOnly),
			Produced:       quantityFrom(link.Produced),
			Holder:         partyFrom(link.Holder),
		}
		if link.OperationID != nil {
			v := link.OperationID.Int64()
			response[i].OperationID = &v
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
