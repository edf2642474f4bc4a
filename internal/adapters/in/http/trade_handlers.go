package http

import (
	"net/http"

	"oliveflow/internal/core/application/usecases/commands"
	"oliveflow/internal/core/application/usecases/queries"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateNeed(ctx echo.Context, params ActorParams) error {
	const op = "CreateNeed"
	var body NewNeed
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	kind, err := trade.ParseKind(body.Kind)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	quantity, err := body.Quantity.toDomain("quantity")
	if err != nil {
		return s.fail(ctx, op, err)
	}
	maxPrice, err := body.MaxPrice.toDomain("max price")
	if err != nil {
		return s.fail(ctx, op, err)
	}
	needDate, err := parseDate("need date", body.NeedDate)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewCreateNeedCommand(actor, kind, quantity, maxPrice, needDate, body.Description)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CreateNeed.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) CreateOffer(ctx echo.Context, params ActorParams) error {
	const op = "CreateOffer"
	var body NewOffer
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	kind, err := trade.ParseKind(body.Kind)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	initial, err := body.Quantity.toDomain("quantity")
	if err != nil {
		return s.fail(ctx, op, err)
	}
	price, err := body.Price.toDomain("price")
	if err != nil {
		return s.fail(ctx, op, err)
	}
	needID, err := optionalID(body.NeedID)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	motherOfferID, err := optionalID(body.MotherOfferID)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	transport := trade.UnspecifiedTransport
	if body.Transport != nil {
		if transport, err = trade.ParseTransport(*body.Transport); err != nil {
			return s.fail(ctx, op, err)
		}
	}

	cmd, err := commands.NewCreateOfferCommand(
		actor, kind, kernel.ID(body.GoodID), initial, price, transport, needID, motherOfferID)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CreateOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) CancelOffer(ctx echo.Context, id int64, params ActorParams) error {
	const op = "CancelOffer"
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := commands.NewCancelOfferCommand(actor, kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err = s.handlers.CancelOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CreateRequest(ctx echo.Context, id int64, params ActorParams) error {
	const op = "CreateRequest"
	var body NewRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	requested, err := body.Quantity.toDomain("quantity")
	if err != nil {
		return s.fail(ctx, op, err)
	}
	var price *kernel.Money
	if body.Price != nil {
		p, err := body.Price.toDomain("price")
		if err != nil {
			return s.fail(ctx, op, err)
		}
		price = &p
	}

	cmd, err := commands.NewCreateRequestCommand(actor, kernel.ID(id), requested, price)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	result, err := s.handlers.CreateRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return created(ctx, result)
}

func (s *Server) ApproveRequest(ctx echo.Context, id int64, params ActorParams) error {
	return s.reviewRequest(ctx, "ApproveRequest", id, params, commands.NewApproveRequestCommand)
}

func (s *Server) RejectRequest(ctx echo.Context, id int64, params ActorParams) error {
	return s.reviewRequest(ctx, "RejectRequest", id, params, commands.NewRejectRequestCommand)
}

func (s *Server) reviewRequest(
	ctx echo.Context,
	op string,
	id int64,
	params ActorParams,
	newCommand func(kernel.Actor, kernel.ID) (commands.ReviewRequestCommand, error),
) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := newCommand(actor, kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err = s.handlers.ReviewRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ConfirmPurchase(ctx echo.Context, id int64, params ActorParams) error {
	const op = "ConfirmPurchase"
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := commands.NewConfirmPurchaseCommand(actor, kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	purchase, err := s.handlers.ConfirmPurchase.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, Purchase{Remaining: quantityFrom(purchase.Remaining), Closed: purchase.Closed})
}

func (s *Server) LeaveFeedback(ctx echo.Context, id int64, params ActorParams) error {
	const op = "LeaveFeedback"
	var body Feedback
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, op, err)
	}
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	cmd, err := commands.NewLeaveFeedbackCommand(actor, kernel.ID(id), body.Appreciation, body.Feedback)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err = s.handlers.LeaveFeedback.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) GetOfferBalance(ctx echo.Context, id int64) error {
	const op = "GetOfferBalance"
	query, err := queries.NewOfferBalanceQuery(kernel.ID(id))
	if err != nil {
		return s.fail(ctx, op, err)
	}
	balance, err := s.handlers.OfferBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, offerBalanceFrom(balance))
}

func (s *Server) GetUnbalancedOffers(ctx echo.Context) error {
	const op = "GetUnbalancedOffers"
	balances, err := s.handlers.UnbalancedOffers.Handle(ctx.Request().Context(), queries.NewUnbalancedOffersQuery())
	if err != nil {
		return s.fail(ctx, op, err)
	}
	response := make([]OfferBalance, len(balances))
	for i, b := range balances {
		response[i] = offerBalanceFrom(b)
	}
	return ctx.JSON(http.StatusOK, response)
}

func offerBalanceFrom(b queries.OfferBalanceQueryResponse) OfferBalance {
	return OfferBalance{
		OfferID:   b.OfferID.Int64(),
		Code:      b.Code.String(),
		Status:    b.Status.String(),
		Initial:   quantityFrom(b.Initial),
		Available: quantityFrom(b.Available),
		Bought:    quantityFrom(b.Bought),
		Conserved: b.Conserved,
	}
}

const defaultOfferPage = 50

func (s *Server) SearchOffers(ctx echo.Context, params SearchOffersParams) error {
	const op = "SearchOffers"
	query, err := searchQueryFrom(params)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	listings, err := s.handlers.SearchOffers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	response := make([]OfferListing, len(listings))
	for i, l := range listings {
		response[i] = OfferListing{
			ID:           l.OfferID.Int64(),
			Code:         l.Code.String(),
			Kind:         l.Kind.String(),
			GoodID:       l.GoodID.Int64(),
			Seller:       *partyFrom(&l.Seller),
			Available:    quantityFrom(l.Available),
			Price:        moneyFrom(l.Price),
			Transport:    l.Transport.String(),
			Variety:      l.Variety,
			CreationDate: l.CreationDate,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func searchQueryFrom(params SearchOffersParams) (queries.SearchOffersQuery, error) {
	var (
		filter queries.OfferFilter
		err    error
	)
	if params.Kind != nil {
		if filter.Kind, err = trade.ParseKind(*params.Kind); err != nil {
			return queries.SearchOffersQuery{}, err
		}
	}
	if params.Transport != nil {
		if filter.Transport, err = trade.ParseTransport(*params.Transport); err != nil {
			return queries.SearchOffersQuery{}, err
		}
	}
	if params.Variety != nil {
		filter.Variety = *params.Variety
	}
	if filter.MinPrice, err = optionalDecimal("minPrice", params.MinPrice); err != nil {
		return queries.SearchOffersQuery{}, err
	}
	if filter.MaxPrice, err = optionalDecimal("maxPrice", params.MaxPrice); err != nil {
		return queries.SearchOffersQuery{}, err
	}
	if filter.MinQuantity, err = optionalDecimal("minQuantity", params.MinQuantity); err != nil {
		return queries.SearchOffersQuery{}, err
	}
	if filter.MaxQuantity, err = optionalDecimal("maxQuantity", params.MaxQuantity); err != nil {
		return queries.SearchOffersQuery{}, err
	}

	sort := queries.NewestFirst
	if params.Sort != nil {
		if sort, err = queries.ParseOfferSort(*params.Sort); err != nil {
			return queries.SearchOffersQuery{}, err
		}
	}
	limit, offset := defaultOfferPage, 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}
	return queries.NewSearchOffersQuery(filter, sort, limit, offset)
}
