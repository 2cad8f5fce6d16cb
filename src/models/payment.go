package models

import (
	"plannova/src/types"
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID               uuid.UUID          `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	EventID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"event_id"`
	VendorID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Amount           int64              `gorm:"not null" json:"amount"`
	Currency         string             `gorm:"type:varchar(3);not null" json:"currency"`
	Phase            types.PaymentPhase `gorm:"type:varchar(16);not null;default:'initiated';index:idx_payments_phase_initiated,priority:1" json:"phase"`
	InitiatedAt      time.Time          `gorm:"not null;index:idx_payments_phase_initiated,priority:2" json:"initiated_at"`
	SettledAt        *time.Time         `json:"settled_at"`
	CaptureReference string             `json:"capture_reference,omitempty"`
	FailureReason    string             `json:"failure_reason,omitempty"`

	Event  *Event  `gorm:"foreignKey:event_id" json:"-"`
	Vendor *Vendor `gorm:"foreignKey:vendor_id" json:"-"`

	types.Timestamps
}

// PaymentChange carries the columns written together with a phase change.
type PaymentChange struct {
	SettledAt        *time.Time
	CaptureReference string
	FailureReason    string
}
