package queries

import (
	"context"
	"database/sql"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductLineageQueryHandler walks the mother chain through the lineage
// reader and reads the descriptive columns of each link with SQL.
type ProductLineageQueryHandler struct {
	db       *gorm.DB
	reader   ports.LineageReader
	resolver services.OwnershipResolver
}

func NewProductLineageQueryHandler(db *gorm.DB, reader ports.LineageReader) ProductLineageQueryHandler {
	return ProductLineageQueryHandler{db: db, reader: reader, resolver: services.NewOwnershipResolver()}
}

// Handle returns the chain starting at the queried product. A chain that
// loops back on itself is a ValueIsInvalidError.
func (h ProductLineageQueryHandler) Handle(
	ctx context.Context,
	query ProductLineageQuery,
) ([]ProductLineageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lineage, err := h.reader.Load(ctx, query.ProductID())
	if err != nil {
		return nil, err
	}
	chain, err := lineage.Ancestry(query.ProductID())
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(chain))
	for _, id := range chain {
		ids = append(ids, id.Int64())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			cause,
			production_date,
			produced_value,
			produced_unit,
			operation_id
		FROM oil_products
		WHERE id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[kernel.ID]ProductLineageQueryResponse, len(chain))
	for rows.Next() {
		var (
			id             int64
			code           sql.NullString
			cause          int
			productionDate time.Time
			producedValue  decimal.Decimal
			producedUnit   int
			operationID    sql.NullInt64
		)
		if err = rows.Scan(&id, &code, &cause, &productionDate, &producedValue, &producedUnit, &operationID); err != nil {
			return nil, err
		}

		produced, qErr := kernel.NewQuantity(producedValue, kernel.Unit(producedUnit))
		if qErr != nil {
			return nil, qErr
		}
		link := ProductLineageQueryResponse{
			ID:             kernel.ID(id),
			Code:           kernel.Code(code.String),
			Cause:          good.CreationCause(cause),
			ProductionDate: productionDate,
			Produced:       produced,
		}
		if operationID.Valid {
			link.OperationID = kernel.OptionalID(kernel.ID(operationID.Int64))
		}
		if holder, ok := h.resolver.Holder(lineage, link.ID); ok {
			link.Holder = partyPtr(holder)
		}
		byID[link.ID] = link
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	result := make([]ProductLineageQueryResponse, 0, len(chain))
	for _, id := range chain {
		if link, ok := byID[id]; ok {
			result = append(result, link)
		}
	}
	return result, nil
}
