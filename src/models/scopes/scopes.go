package scopes

import (
	"plannova/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func WithID(id uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithPhase(phase types.PaymentPhase) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("phase = ?", phase)
	}
}

func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("initiated_at asc").Order("id asc")
}

func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}
