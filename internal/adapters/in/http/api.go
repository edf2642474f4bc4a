package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ActorParams are the identity headers every write operation carries.
type ActorParams struct {
	XActorID   openapi_types.UUID
	XActorRole string
}

// GetInboxParams defines parameters for GetInbox.
type GetInboxParams struct {
	Recipient string
	Limit     *int
}

// ListStorageAreasParams defines parameters for ListStorageAreas.
type ListStorageAreasParams struct {
	MillID   *int64
	FarmerID *openapi_types.UUID
}

// SearchOffersParams defines parameters for SearchOffers.
type SearchOffersParams struct {
	Kind        *string
	MinPrice    *string
	MaxPrice    *string
	MinQuantity *string
	MaxQuantity *string
	Transport   *string
	Variety     *string
	Sort        *string
	Limit       *int
	Offset      *int
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /mills)
	RegisterOilMill(ctx echo.Context, params ActorParams) error
	// (POST /groves)
	RegisterOliveGrove(ctx echo.Context, params ActorParams) error
	// (POST /groves/{id}/harvests)
	RecordHarvest(ctx echo.Context, id int64, params ActorParams) error
	// (GET /mills/{id}/machines)
	ListMachines(ctx echo.Context, id int64) error
	// (POST /machines)
	RegisterMachine(ctx echo.Context, params ActorParams) error
	// (GET /machines/{id})
	GetMachine(ctx echo.Context, id int64) error
	// (DELETE /machines/{id})
	RetireMachine(ctx echo.Context, id int64, params ActorParams) error
	// (GET /storage-areas)
	ListStorageAreas(ctx echo.Context, params ListStorageAreasParams) error
	// (POST /storage-areas)
	RegisterStorageArea(ctx echo.Context, params ActorParams) error

	// (POST /needs)
	CreateNeed(ctx echo.Context, params ActorParams) error
	// (GET /offers)
	SearchOffers(ctx echo.Context, params SearchOffersParams) error
	// (POST /offers)
	CreateOffer(ctx echo.Context, params ActorParams) error
	// (GET /offers/unbalanced)
	GetUnbalancedOffers(ctx echo.Context) error
	// (GET /offers/{id}/balance)
	GetOfferBalance(ctx echo.Context, id int64) error
	// (POST /offers/{id}/cancel)
	CancelOffer(ctx echo.Context, id int64, params ActorParams) error
	// (POST /offers/{id}/requests)
	CreateRequest(ctx echo.Context, id int64, params ActorParams) error
	// (POST /requests/{id}/approve)
	ApproveRequest(ctx echo.Context, id int64, params ActorParams) error
	// (POST /requests/{id}/reject)
	RejectRequest(ctx echo.Context, id int64, params ActorParams) error
	// (POST /requests/{id}/confirm)
	ConfirmPurchase(ctx echo.Context, id int64, params ActorParams) error
	// (POST /requests/{id}/feedback)
	LeaveFeedback(ctx echo.Context, id int64, params ActorParams) error

	// (POST /service-requests)
	CreateServiceRequest(ctx echo.Context, params ActorParams) error
	// (POST /service-requests/{id}/cancel)
	CancelServiceRequest(ctx echo.Context, id int64, params ActorParams) error
	// (POST /service-requests/{id}/offers)
	CreateServiceOffer(ctx echo.Context, id int64, params ActorParams) error
	// (POST /service-offers/{id}/approve)
	ApproveServiceOffer(ctx echo.Context, id int64, params ActorParams) error
	// (POST /service-offers/{id}/reject)
	RejectServiceOffer(ctx echo.Context, id int64, params ActorParams) error
	// (POST /service-offers/{id}/complete)
	CompleteOperation(ctx echo.Context, id int64, params ActorParams) error
	// (POST /operations)
	CreateOperation(ctx echo.Context, params ActorParams) error

	// (GET /products/{id}/owner)
	GetProductOwner(ctx echo.Context, id int64) error
	// (GET /products/{id}/lineage)
	GetProductLineage(ctx echo.Context, id int64) error

	// (GET /inbox)
	GetInbox(ctx echo.Context, params GetInboxParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

type (
	withActor      func(ctx echo.Context, params ActorParams) error
	withID         func(ctx echo.Context, id int64) error
	withIDAndActor func(ctx echo.Context, id int64, params ActorParams) error
)

func (w *ServerInterfaceWrapper) actor(h withActor) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		params, err := bindActor(ctx)
		if err != nil {
			return err
		}
		return h(ctx, params)
	}
}

func (w *ServerInterfaceWrapper) id(h withID) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindID(ctx)
		if err != nil {
			return err
		}
		return h(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) idAndActor(h withIDAndActor) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindID(ctx)
		if err != nil {
			return err
		}
		params, err := bindActor(ctx)
		if err != nil {
			return err
		}
		return h(ctx, id, params)
	}
}

// GetInbox converts echo context to params.
func (w *ServerInterfaceWrapper) GetInbox(ctx echo.Context) error {
	var params GetInboxParams

	err := runtime.BindQueryParameter("form", true, true, "recipient", ctx.QueryParams(), &params.Recipient)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter recipient: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetInbox(ctx, params)
}

// ListStorageAreas converts echo context to params.
func (w *ServerInterfaceWrapper) ListStorageAreas(ctx echo.Context) error {
	var params ListStorageAreasParams

	err := runtime.BindQueryParameter("form", true, false, "millId", ctx.QueryParams(), &params.MillID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter millId: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "farmerId", ctx.QueryParams(), &params.FarmerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter farmerId: %s", err))
	}

	return w.Handler.ListStorageAreas(ctx, params)
}

// SearchOffers converts echo context to params.
func (w *ServerInterfaceWrapper) SearchOffers(ctx echo.Context) error {
	var params SearchOffersParams

	for name, dst := range map[string]any{
		"kind":        &params.Kind,
		"minPrice":    &params.MinPrice,
		"maxPrice":    &params.MaxPrice,
		"minQuantity": &params.MinQuantity,
		"maxQuantity": &params.MaxQuantity,
		"transport":   &params.Transport,
		"variety":     &params.Variety,
		"sort":        &params.Sort,
		"limit":       &params.Limit,
		"offset":      &params.Offset,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dst); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	return w.Handler.SearchOffers(ctx, params)
}

func bindID(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func bindActor(ctx echo.Context) (ActorParams, error) {
	var params ActorParams
	headers := ctx.Request().Header

	value := headers.Get("X-Actor-ID")
	if value == "" {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Actor-ID is required, but not found")
	}
	err := runtime.BindStyledParameterWithOptions("simple", "X-Actor-ID", value, &params.XActorID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Actor-ID: %s", err))
	}

	params.XActorRole = headers.Get("X-Actor-Role")
	if params.XActorRole == "" {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Actor-Role is required, but not found")
	}
	return params, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/mills", w.actor(si.RegisterOilMill))
	router.POST(baseURL+"/groves", w.actor(si.RegisterOliveGrove))
	router.POST(baseURL+"/groves/:id/harvests", w.idAndActor(si.RecordHarvest))
	router.GET(baseURL+"/mills/:id/machines", w.id(si.ListMachines))
	router.POST(baseURL+"/machines", w.actor(si.RegisterMachine))
	router.GET(baseURL+"/machines/:id", w.id(si.GetMachine))
	router.DELETE(baseURL+"/machines/:id", w.idAndActor(si.RetireMachine))
	router.GET(baseURL+"/storage-areas", w.ListStorageAreas)
	router.POST(baseURL+"/storage-areas", w.actor(si.RegisterStorageArea))

	router.POST(baseURL+"/needs", w.actor(si.CreateNeed))
	router.GET(baseURL+"/offers", w.SearchOffers)
	router.POST(baseURL+"/offers", w.actor(si.CreateOffer))
	router.GET(baseURL+"/offers/unbalanced", si.GetUnbalancedOffers)
	router.GET(baseURL+"/offers/:id/balance", w.id(si.GetOfferBalance))
	router.POST(baseURL+"/offers/:id/cancel", w.idAndActor(si.CancelOffer))
	router.POST(baseURL+"/offers/:id/requests", w.idAndActor(si.CreateRequest))
	router.POST(baseURL+"/requests/:id/approve", w.idAndActor(si.ApproveRequest))
	router.POST(baseURL+"/requests/:id/reject", w.idAndActor(si.RejectRequest))
	router.POST(baseURL+"/requests/:id/confirm", w.idAndActor(si.ConfirmPurchase))
	router.POST(baseURL+"/requests/:id/feedback", w.idAndActor(si.LeaveFeedback))

	router.POST(baseURL+"/service-requests", w.actor(si.CreateServiceRequest))
	router.POST(baseURL+"/service-requests/:id/cancel", w.idAndActor(si.CancelServiceRequest))
	router.POST(baseURL+"/service-requests/:id/offers", w.idAndActor(si.CreateServiceOffer))
	router.POST(baseURL+"/service-offers/:id/approve", w.idAndActor(si.ApproveServiceOffer))
	router.POST(baseURL+"/service-offers/:id/reject", w.idAndActor(si.RejectServiceOffer))
	router.POST(baseURL+"/service-offers/:id/complete", w.idAndActor(si.CompleteOperation))
	router.POST(baseURL+"/operations", w.actor(si.CreateOperation))

	router.GET(baseURL+"/products/:id/owner", w.id(si.GetProductOwner))
	router.GET(baseURL+"/products/:id/lineage", w.id(si.GetProductLineage))

	router.GET(baseURL+"/inbox", w.GetInbox)
}
