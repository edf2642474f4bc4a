package pgtypes

import (
	"context"

	"oliveflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// StampCode writes the code generated from a freshly inserted row's ID back
// to that row.
func StampCode(ctx context.Context, db *gorm.DB, model any, entity string, id kernel.ID, code kernel.Code) error {
	err := db.WithContext(ctx).Model(model).Where("id = ?", id.Int64()).Update("code", code.String()).Error
	return Translate(entity, id, err)
}

// MissedUpdate explains an update that affected no row: the row is either
// gone or was written by someone else since it was read.
func MissedUpdate(ctx context.Context, db *gorm.DB, model any, entity string, id kernel.ID, version int64) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id.Int64()).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return Translate(entity, id, gorm.ErrRecordNotFound)
	}
	return StaleVersion(entity, id, version)
}

// CodePtr maps an unstamped code to NULL so the unique index ignores it.
func CodePtr(c kernel.Code) *string {
	if c.IsZero() {
		return nil
	}
	s := c.String()
	return &s
}
