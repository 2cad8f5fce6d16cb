package models

import (
	"encoding/json"
	"plannova/src/status"
	"plannova/src/types"
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID    uuid.UUID         `gorm:"primarykey;type:uuid;default:gen_random_uuid()"`
	Name  string            `gorm:"not null"`
	Email string            `gorm:"index"`
	Phone string
	Phase types.VendorPhase `gorm:"column:status;type:varchar(16);not null;default:'pending';index"`

	Services []Service `gorm:"foreignKey:vendor_id"`

	types.Timestamps
}

// vendorJSON is the wire shape. The approved/rejected pair only exists here.
type vendorJSON struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Approved  bool      `json:"approved"`
	Rejected  bool      `json:"rejected"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (v Vendor) MarshalJSON() ([]byte, error) {
	approved, rejected, err := status.VendorFlags(v.Phase)
	if err != nil {
		return nil, err
	}
	return json.Marshal(vendorJSON{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Approved:  approved,
		Rejected:  rejected,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	})
}

func (v *Vendor) UnmarshalJSON(b []byte) error {
	var in vendorJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	phase, err := status.VendorPhase(in.Approved, in.Rejected)
	if err != nil {
		return err
	}
	v.ID = in.ID
	v.Name = in.Name
	v.Email = in.Email
	v.Phone = in.Phone
	v.Phase = phase
	v.CreatedAt = in.CreatedAt
	v.UpdatedAt = in.UpdatedAt
	return nil
}
