package queries

import (
	"context"
	"database/sql"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListStorageAreasQueryHandler struct {
	db *gorm.DB
}

func NewListStorageAreasQueryHandler(db *gorm.DB) ListStorageAreasQueryHandler {
	return ListStorageAreasQueryHandler{db: db}
}

// Handle returns the owner's areas ordered by ID.
func (h ListStorageAreasQueryHandler) Handle(ctx context.Context, query ListStorageAreasQuery) ([]StorageAreaView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	owner := query.Owner()
	where, arg := "owner_mill_id = @owner", sql.Named("owner", any(nil))
	if millID := owner.MillID(); millID != nil {
		arg = sql.Named("owner", millID.Int64())
	} else {
		where, arg = "owner_farmer_id = @owner", sql.Named("owner", owner.ActorID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, local_type, address, latitude, longitude, container_type, container_count
		FROM storage_areas
		WHERE `+where+`
		ORDER BY id
	`, arg).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := make([]StorageAreaView, 0)
	for rows.Next() {
		var (
			area                StorageAreaView
			id                  int64
			latitude, longitude sql.NullFloat64
		)
		if err = rows.Scan(&id, &area.LocalType, &area.Address, &latitude, &longitude,
			&area.ContainerType, &area.ContainerCount); err != nil {
			return nil, err
		}
		area.ID = kernel.ID(id)
		area.Owner = owner
		if latitude.Valid && longitude.Valid {
			area.Location = &facility.Coordinates{Latitude: latitude.Float64, Longitude: longitude.Float64}
		}
		areas = append(areas, area)
	}
	return areas, rows.Err()
}
