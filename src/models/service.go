package models

import (
	"fmt"
	"plannova/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Service is a vendor's catalogue offering.
type Service struct {
	ID          uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	VendorID    uuid.UUID `gorm:"type:uuid;index" json:"vendor_id"`
	VendorName  string    `json:"vendor"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`

	types.Timestamps
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = ServiceSlug(s.VendorName, s.Name)
	}
	return nil
}

func ServiceSlug(vendorName, name string) string {
	return slug.Make(fmt.Sprintf("%s %s", vendorName, name))
}
