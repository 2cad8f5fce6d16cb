package models

import (
	"plannova/src/types"

	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
	Role  string    `gorm:"default:'customer'" json:"role,omitempty"`

	Events []Event `gorm:"foreignKey:customer_id" json:"-"`

	types.Timestamps
}
