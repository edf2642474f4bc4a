package queries

import (
	"context"
	"database/sql"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const offerBalanceSelect = `
	SELECT
		o.id,
		o.code,
		o.status,
		o.initial_value,
		o.available_value,
		o.initial_unit,
		COALESCE(SUM(r.requested_value) FILTER (WHERE r.status = @bought), 0) AS bought
	FROM offers o
	LEFT JOIN requests r ON r.offer_id = o.id
`

// OfferBalanceQueryHandler reads offer balances straight from the offers and
// requests tables.
type OfferBalanceQueryHandler struct {
	db *gorm.DB
}

func NewOfferBalanceQueryHandler(db *gorm.DB) OfferBalanceQueryHandler {
	return OfferBalanceQueryHandler{db: db}
}

// Handle returns the balance of one offer or an ObjectNotFoundError.
func (h OfferBalanceQueryHandler) Handle(
	ctx context.Context,
	query OfferBalanceQuery,
) (OfferBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OfferBalanceQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(offerBalanceSelect+`
		WHERE o.id = @offer
		GROUP BY o.id
	`, sql.Named("bought", int(trade.RequestBought)), sql.Named("offer", query.OfferID().Int64())).Rows()
	if err != nil {
		return OfferBalanceQueryResponse{}, err
	}
	defer rows.Close()

	balances, err := scanOfferBalances(rows)
	if err != nil {
		return OfferBalanceQueryResponse{}, err
	}
	if len(balances) == 0 {
		return OfferBalanceQueryResponse{}, errs.NewObjectNotFoundError("offer", query.OfferID())
	}
	return balances[0], nil
}

// UnbalancedOffersQueryHandler backs the conservation audit.
type UnbalancedOffersQueryHandler struct {
	db *gorm.DB
}

func NewUnbalancedOffersQueryHandler(db *gorm.DB) UnbalancedOffersQueryHandler {
	return UnbalancedOffersQueryHandler{db: db}
}

// Handle returns the offers breaking conservation ordered by ID. An empty
// slice means the books are balanced.
func (h UnbalancedOffersQueryHandler) Handle(
	ctx context.Context,
	query UnbalancedOffersQuery,
) ([]OfferBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(offerBalanceSelect+`
		GROUP BY o.id
		HAVING o.initial_value - o.available_value
			<> COALESCE(SUM(r.requested_value) FILTER (WHERE r.status = @bought), 0)
		ORDER BY o.id
	`, sql.Named("bought", int(trade.RequestBought))).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOfferBalances(rows)
}

func scanOfferBalances(rows *sql.Rows) ([]OfferBalanceQueryResponse, error) {
	balances := make([]OfferBalanceQueryResponse, 0)
	for rows.Next() {
		var (
			id        int64
			code      sql.NullString
			status    int
			initial   decimal.Decimal
			available decimal.Decimal
			unit      int
			bought    decimal.Decimal
		)
		if err := rows.Scan(&id, &code, &status, &initial, &available, &unit, &bought); err != nil {
			return nil, err
		}

		balance := OfferBalanceQueryResponse{
			OfferID:   kernel.ID(id),
			Code:      kernel.Code(code.String),
			Status:    trade.OfferStatus(status),
			Conserved: initial.Sub(available).Equal(bought),
		}
		var err error
		if balance.Initial, err = kernel.NewQuantity(initial, kernel.Unit(unit)); err != nil {
			return nil, err
		}
		if balance.Available, err = kernel.NewQuantity(available, kernel.Unit(unit)); err != nil {
			return nil, err
		}
		if balance.Bought, err = kernel.NewQuantity(bought, kernel.Unit(unit)); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}
