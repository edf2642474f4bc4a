package queries

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const offerListingSelect = `
	SELECT
		o.id,
		o.code,
		o.kind,
		o.good_id,
		o.seller_kind,
		o.seller_mill_id,
		o.seller_actor_id,
		o.available_value,
		o.available_unit,
		o.price_amount,
		o.price_currency,
		o.transport,
		o.creation_date,
		COALESCE(NULLIF(h.variety, ''), g.variety, '') AS variety
	FROM offers o
	LEFT JOIN harvests h ON o.kind = @olive AND h.id = o.good_id
	LEFT JOIN olive_groves g ON g.id = h.grove_id
`

func (s OfferSort) orderBy() string {
	switch s {
	case PriceAscending:
		return "o.price_amount ASC, o.id ASC"
	case PriceDescending:
		return "o.price_amount DESC, o.id DESC"
	case QuantityAscending:
		return "o.available_value ASC, o.id ASC"
	case QuantityDescending:
		return "o.available_value DESC, o.id DESC"
	default:
		return "o.creation_date DESC, o.id DESC"
	}
}

// SearchOffersQueryHandler lists Available offers from the offers table
// joined to the harvest they sell.
type SearchOffersQueryHandler struct {
	db *gorm.DB
}

func NewSearchOffersQueryHandler(db *gorm.DB) SearchOffersQueryHandler {
	return SearchOffersQueryHandler{db: db}
}

func (h SearchOffersQueryHandler) Handle(ctx context.Context, query SearchOffersQuery) ([]OfferListing, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f := query.Filter()
	where := []string{"o.status = @available"}
	args := []any{
		sql.Named("olive", int(trade.Olive)),
		sql.Named("available", int(trade.OfferAvailable)),
		sql.Named("limit", query.Limit()),
		sql.Named("offset", query.Offset()),
	}
	add := func(cond, name string, value any) {
		where = append(where, cond)
		args = append(args, sql.Named(name, value))
	}
	if f.Kind != trade.UnknownKind {
		add("o.kind = @kind", "kind", int(f.Kind))
	}
	if f.MinPrice != nil {
		add("o.price_amount >= @min_price", "min_price", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("o.price_amount <= @max_price", "max_price", *f.MaxPrice)
	}
	if f.MinQuantity != nil {
		add("o.available_value >= @min_quantity", "min_quantity", *f.MinQuantity)
	}
	if f.MaxQuantity != nil {
		add("o.available_value <= @max_quantity", "max_quantity", *f.MaxQuantity)
	}
	if f.Transport != trade.UnspecifiedTransport {
		add("o.transport = @transport", "transport", int(f.Transport))
	}
	if f.Variety != "" {
		add("lower(COALESCE(NULLIF(h.variety, ''), g.variety, '')) = lower(@variety)", "variety", f.Variety)
	}

	rows, err := h.db.WithContext(ctx).Raw(offerListingSelect+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY `+query.Sort().orderBy()+`
		LIMIT @limit OFFSET @offset
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]OfferListing, 0)
	for rows.Next() {
		listing, scanErr := scanOfferListing(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func scanOfferListing(rows *sql.Rows) (OfferListing, error) {
	var (
		listing      OfferListing
		id, goodID   int64
		code         sql.NullString
		kind         int
		sellerKind   int
		sellerMillID sql.NullInt64
		sellerActor  uuid.NullUUID
		available    decimal.Decimal
		unit         int
		amount       decimal.Decimal
		currency     int
		transport    int
		creationDate time.Time
	)
	if err := rows.Scan(&id, &code, &kind, &goodID, &sellerKind, &sellerMillID, &sellerActor,
		&available, &unit, &amount, &currency, &transport, &creationDate, &listing.Variety); err != nil {
		return OfferListing{}, err
	}

	var millID *kernel.ID
	if sellerMillID.Valid {
		v := kernel.ID(sellerMillID.Int64)
		millID = &v
	}
	var actorID *kernel.UUID
	if sellerActor.Valid {
		v, err := kernel.UUIDFromBytes(sellerActor.UUID[:])
		if err != nil {
			return OfferListing{}, err
		}
		actorID = &v
	}

	var err error
	if listing.Seller, err = kernel.NewParty(kernel.PartyKind(sellerKind), millID, actorID); err != nil {
		return OfferListing{}, err
	}
	if listing.Available, err = kernel.NewQuantity(available, kernel.Unit(unit)); err != nil {
		return OfferListing{}, err
	}
	if listing.Price, err = kernel.NewMoney(amount, kernel.Currency(currency)); err != nil {
		return OfferListing{}, err
	}
	listing.OfferID = kernel.ID(id)
	listing.Code = kernel.Code(code.String)
	listing.Kind = trade.Kind(kind)
	listing.GoodID = kernel.ID(goodID)
	listing.Transport = trade.Transport(transport)
	listing.CreationDate = creationDate.UTC()
	return listing, nil
}
