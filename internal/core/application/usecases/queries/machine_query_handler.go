package queries

import (
	"context"
	"database/sql"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListMachinesQueryHandler struct {
	db *gorm.DB
}

func NewListMachinesQueryHandler(db *gorm.DB) ListMachinesQueryHandler {
	return ListMachinesQueryHandler{db: db}
}

// Handle returns the machines of the mill ordered by ID. An unknown mill is
// ObjectNotFound; a mill without machines gives an empty list.
func (h ListMachinesQueryHandler) Handle(ctx context.Context, query ListMachinesQuery) ([]MachineListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var mills int64
	if err := h.db.WithContext(ctx).Table("oil_mills").Where("id = ?", query.MillID().Int64()).Count(&mills).Error; err != nil {
		return nil, err
	}
	if mills == 0 {
		return nil, errs.NewObjectNotFoundError("oil mill", query.MillID())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, reference, type, capacity
		FROM machines
		WHERE mill_id = @mill
		ORDER BY id
	`, sql.Named("mill", query.MillID().Int64())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	machines := make([]MachineListItem, 0)
	for rows.Next() {
		var (
			item        MachineListItem
			id          int64
			machineType int
		)
		if err = rows.Scan(&id, &item.Reference, &machineType, &item.Capacity); err != nil {
			return nil, err
		}
		item.ID = kernel.ID(id)
		item.Type = facility.MachineType(machineType)
		machines = append(machines, item)
	}
	return machines, rows.Err()
}

type GetMachineQueryHandler struct {
	db *gorm.DB
}

func NewGetMachineQueryHandler(db *gorm.DB) GetMachineQueryHandler {
	return GetMachineQueryHandler{db: db}
}

func (h GetMachineQueryHandler) Handle(ctx context.Context, query GetMachineQuery) (MachineDetail, error) {
	if err := query.Validate(); err != nil {
		return MachineDetail{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT m.id, m.mill_id, mi.name, m.reference, m.brand, m.manufacturer,
			m.purchase_date, m.capacity, m.type
		FROM machines m
		JOIN oil_mills mi ON mi.id = m.mill_id
		WHERE m.id = @machine
	`, sql.Named("machine", query.MachineID().Int64())).Rows()
	if err != nil {
		return MachineDetail{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return MachineDetail{}, err
		}
		return MachineDetail{}, errs.NewObjectNotFoundError("machine", query.MachineID())
	}

	var (
		detail       MachineDetail
		id, millID   int64
		purchaseDate time.Time
		machineType  int
	)
	if err = rows.Scan(&id, &millID, &detail.MillName, &detail.Reference, &detail.Brand,
		&detail.Manufacturer, &purchaseDate, &detail.Capacity, &machineType); err != nil {
		return MachineDetail{}, err
	}
	detail.ID = kernel.ID(id)
	detail.MillID = kernel.ID(millID)
	detail.PurchaseDate = purchaseDate.UTC()
	detail.Type = facility.MachineType(machineType)
	return detail, nil
}
