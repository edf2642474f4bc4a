package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"oliveflow/internal/adapters/out/inbox"
	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CommandHandler is satisfied by the command handlers that return a result.
type CommandHandler[C any, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// VoidCommandHandler is satisfied by the command handlers without a result.
type VoidCommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by the query handlers.
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// InboxReader lists delivered notifications.
type InboxReader interface {
	List(ctx context.Context, recipient string, limit int) ([]inbox.Message, error)
}

// FailureRecorder counts failed operations.
type FailureRecorder interface {
	OperationFailed(operation string, err error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	RegisterOilMill    CommandHandler[commands.RegisterOilMillCommand, commands.Created]
	RegisterOliveGrove CommandHandler[commands.RegisterOliveGroveCommand, commands.Created]
	RecordHarvest      CommandHandler[commands.RecordHarvestCommand, commands.Created]

	RegisterMachine     CommandHandler[commands.RegisterMachineCommand, commands.Created]
	RetireMachine       VoidCommandHandler[commands.RetireMachineCommand]
	RegisterStorageArea CommandHandler[commands.RegisterStorageAreaCommand, commands.Created]
	ListMachines        QueryHandler[queries.ListMachinesQuery, []queries.MachineListItem]
	GetMachine          QueryHandler[queries.GetMachineQuery, queries.MachineDetail]
	ListStorageAreas    QueryHandler[queries.ListStorageAreasQuery, []queries.StorageAreaView]

	CreateNeed      CommandHandler[commands.CreateNeedCommand, commands.Created]
	CreateOffer     CommandHandler[commands.CreateOfferCommand, commands.Created]
	CancelOffer     VoidCommandHandler[commands.CancelOfferCommand]
	CreateRequest   CommandHandler[commands.CreateRequestCommand, commands.Created]
	ReviewRequest   VoidCommandHandler[commands.ReviewRequestCommand]
	ConfirmPurchase CommandHandler[commands.ConfirmPurchaseCommand, services.Purchase]
	LeaveFeedback   VoidCommandHandler[commands.LeaveFeedbackCommand]

	CreateServiceRequest CommandHandler[commands.CreateServiceRequestCommand, commands.Created]
	CancelServiceRequest VoidCommandHandler[commands.CancelServiceRequestCommand]
	CreateServiceOffer   CommandHandler[commands.CreateServiceOfferCommand, commands.Created]
	ReviewServiceOffer   VoidCommandHandler[commands.ReviewServiceOfferCommand]
	CompleteOperation    CommandHandler[commands.CompleteOperationCommand, commands.Created]
	CreateOperation      CommandHandler[commands.CreateOperationCommand, commands.Created]

	ResolveOwner     QueryHandler[queries.ResolveOwnerQuery, queries.ResolveOwnerQueryResponse]
	ProductLineage   QueryHandler[queries.ProductLineageQuery, []queries.ProductLineageQueryResponse]
	OfferBalance     QueryHandler[queries.OfferBalanceQuery, queries.OfferBalanceQueryResponse]
	UnbalancedOffers QueryHandler[queries.UnbalancedOffersQuery, []queries.OfferBalanceQueryResponse]
	SearchOffers     QueryHandler[queries.SearchOffersQuery, []queries.OfferListing]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	inbox    InboxReader
	failures FailureRecorder
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, inbox InboxReader, failures FailureRecorder, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		inbox:    inbox,
		failures: failures,
		logger:   logger.With("component", "http_server"),
	}
}

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 100
)

// GetInbox lists the latest messages of a recipient. The limit is clamped
// to 1..100 even when the request skipped document validation.
func (s *Server) GetInbox(ctx echo.Context, params GetInboxParams) error {
	limit := defaultInboxLimit
	if params.Limit != nil {
		limit = min(max(*params.Limit, 1), maxInboxLimit)
	}
	messages, err := s.inbox.List(ctx.Request().Context(), params.Recipient, limit)
	if err != nil {
		return s.fail(ctx, "GetInbox", err)
	}

	response := make([]Message, len(messages))
	for i, m := range messages {
		response[i] = Message{
			ID:         m.ID,
			Recipient:  m.Recipient,
			Kind:       string(m.Kind),
			Subject:    m.Subject,
			Text:       m.Text,
			OccurredAt: m.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func actorFrom(params ActorParams) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(params.XActorID.String())
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(params.XActorRole)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(id, role)
}

func created(ctx echo.Context, c commands.Created) error {
	return ctx.JSON(http.StatusCreated, Created{ID: c.ID.Int64(), Code: c.Code.String()})
}

// StatusOf maps the error taxonomy onto HTTP status codes.
func StatusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsConflict(err):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response of a failed operation.
func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	if s.failures != nil {
		s.failures.OperationFailed(operation, err)
	}
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "operation failed", "operation", operation, "error", err)
		message = "internal error"
	}
	return ctx.JSON(status, Error{Code: status, Message: message})
}
