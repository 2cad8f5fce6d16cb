package models

import (
	"plannova/src/types"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID            uuid.UUID  `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Location      string     `json:"location,omitempty"`
	StartDate     time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate       time.Time  `gorm:"not null" json:"end_date"`
	EstimatedCost int64      `json:"estimated_cost,omitempty"`
	CustomerID    *uuid.UUID `gorm:"type:uuid" json:"customer_id,omitempty"`

	BookingRequests []BookingRequest `gorm:"foreignKey:event_id" json:"booking_requests"`

	types.Timestamps
}

type BookingRequest struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	VendorID    uuid.UUID `gorm:"type:uuid;index" json:"vendor_id"`
	ServiceName string    `json:"service_name"`
	VendorName  string    `json:"vendor_name"`

	types.Timestamps
}
