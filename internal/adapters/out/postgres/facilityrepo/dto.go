// Package facilityrepo persists oil mills, their machines, olive groves and
// storage areas.
package facilityrepo

import (
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MillDTO is an oil mill. A manager runs at most one mill.
type MillDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null"`
	ManagerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	HasLab      bool
	HasPackUnit bool
}

func (MillDTO) TableName() string {
	return "oil_mills"
}

type GroveDTO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Name     string    `gorm:"not null"`
	FarmerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Variety  string
}

func (GroveDTO) TableName() string {
	return "olive_groves"
}

func millFromDomain(m *facility.OilMill) MillDTO {
	return MillDTO{
		ID:          m.ID().Int64(),
		Name:        m.Name(),
		ManagerID:   m.ManagerID().Bytes(),
		HasLab:      m.HasLab(),
		HasPackUnit: m.HasPackUnit(),
	}
}

func millToDomain(dto MillDTO) (*facility.OilMill, error) {
	managerID, err := kernel.UUIDFromBytes(dto.ManagerID[:])
	if err != nil {
		return nil, err
	}
	return facility.RestoreOilMill(kernel.ID(dto.ID), dto.Name, managerID, dto.HasLab, dto.HasPackUnit)
}

func groveFromDomain(g *facility.OliveGrove) GroveDTO {
	return GroveDTO{
		ID:       g.ID().Int64(),
		Name:     g.Name(),
		FarmerID: g.FarmerID().Bytes(),
		Variety:  g.Variety(),
	}
}

func groveToDomain(dto GroveDTO) (*facility.OliveGrove, error) {
	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}
	return facility.RestoreOliveGrove(kernel.ID(dto.ID), dto.Name, farmerID, dto.Variety)
}

type MachineDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	MillID       int64  `gorm:"not null;index"`
	Reference    string `gorm:"not null"`
	Brand        string
	Manufacturer string
	PurchaseDate time.Time `gorm:"type:date;not null"`
	Capacity     int       `gorm:"not null"`
	Type         int       `gorm:"type:smallint;not null"`
}

func (MachineDTO) TableName() string {
	return "machines"
}

// StorageAreaDTO keeps the owner as two nullable references; the check
// constraint holds exactly one of them.
type StorageAreaDTO struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	OwnerMillID    *int64     `gorm:"index;check:storage_areas_single_owner,(owner_mill_id IS NULL) <> (owner_farmer_id IS NULL)"`
	OwnerFarmerID  *uuid.UUID `gorm:"type:uuid;index"`
	LocalType      string     `gorm:"not null"`
	Address        string     `gorm:"not null"`
	Latitude       *float64
	Longitude      *float64
	ContainerType  string `gorm:"not null"`
	ContainerCount int    `gorm:"not null"`
}

func (StorageAreaDTO) TableName() string {
	return "storage_areas"
}

func machineFromDomain(m *facility.Machine) MachineDTO {
	return MachineDTO{
		ID:           m.ID().Int64(),
		MillID:       m.MillID().Int64(),
		Reference:    m.Reference(),
		Brand:        m.Brand(),
		Manufacturer: m.Manufacturer(),
		PurchaseDate: m.PurchaseDate(),
		Capacity:     m.Capacity(),
		Type:         int(m.Type()),
	}
}

func machineToDomain(dto MachineDTO) (*facility.Machine, error) {
	return facility.RestoreMachine(facility.MachineState{
		ID:           kernel.ID(dto.ID),
		MillID:       kernel.ID(dto.MillID),
		Reference:    dto.Reference,
		Brand:        dto.Brand,
		Manufacturer: dto.Manufacturer,
		PurchaseDate: dto.PurchaseDate.UTC(),
		Capacity:     dto.Capacity,
		Type:         facility.MachineType(dto.Type),
	})
}

func storageAreaFromDomain(a *facility.StorageArea) StorageAreaDTO {
	dto := StorageAreaDTO{
		ID:             a.ID().Int64(),
		LocalType:      a.LocalType(),
		Address:        a.Address(),
		ContainerType:  a.ContainerType(),
		ContainerCount: a.ContainerCount(),
	}
	owner := a.Owner()
	if id := owner.MillID(); id != nil {
		v := id.Int64()
		dto.OwnerMillID = &v
	}
	if id := owner.ActorID(); id != nil {
		raw := id.Bytes()
		dto.OwnerFarmerID = &raw
	}
	if l := a.Location(); l != nil {
		dto.Latitude, dto.Longitude = &l.Latitude, &l.Longitude
	}
	return dto
}

func storageAreaToDomain(dto StorageAreaDTO) (*facility.StorageArea, error) {
	var owner kernel.Party
	var err error
	switch {
	case dto.OwnerMillID != nil:
		owner, err = kernel.NewMill(kernel.ID(*dto.OwnerMillID))
	case dto.OwnerFarmerID != nil:
		var farmerID kernel.UUID
		if farmerID, err = kernel.UUIDFromBytes(dto.OwnerFarmerID[:]); err == nil {
			owner, err = kernel.NewFarmer(farmerID)
		}
	default:
		err = fmt.Errorf("storage area %d has no owner", dto.ID)
	}
	if err != nil {
		return nil, err
	}

	var location *facility.Coordinates
	if dto.Latitude != nil && dto.Longitude != nil {
		location = &facility.Coordinates{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return facility.RestoreStorageArea(facility.StorageAreaState{
		ID:             kernel.ID(dto.ID),
		Owner:          owner,
		LocalType:      dto.LocalType,
		Address:        dto.Address,
		Location:       location,
		ContainerType:  dto.ContainerType,
		ContainerCount: dto.ContainerCount,
	})
}
