package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type VendorPhase string

const (
	VENDOR_PENDING  VendorPhase = "pending"
	VENDOR_APPROVED VendorPhase = "approved"
	VENDOR_REJECTED VendorPhase = "rejected"
)

func (p VendorPhase) Valid() bool {
	switch p {
	case VENDOR_PENDING, VENDOR_APPROVED, VENDOR_REJECTED:
		return true
	}
	return false
}

type EventPhase string

const (
	EVENT_UPCOMING  EventPhase = "Upcoming"
	EVENT_ONGOING   EventPhase = "Ongoing"
	EVENT_COMPLETED EventPhase = "Completed"
)

type PaymentPhase string

const (
	PAYMENT_INITIATED PaymentPhase = "initiated"
	PAYMENT_PENDING   PaymentPhase = "pending"
	PAYMENT_SETTLED   PaymentPhase = "settled"
	PAYMENT_FAILED    PaymentPhase = "failed"
)

func (p PaymentPhase) Valid() bool {
	switch p {
	case PAYMENT_INITIATED, PAYMENT_PENDING, PAYMENT_SETTLED, PAYMENT_FAILED:
		return true
	}
	return false
}

func (p PaymentPhase) Terminal() bool {
	return p == PAYMENT_SETTLED || p == PAYMENT_FAILED
}

type SettlementOutcome string

const (
	OUTCOME_SUCCESS SettlementOutcome = "success"
	OUTCOME_FAILURE SettlementOutcome = "failure"
)

// CaptureResult is what a capture gateway reports for one settlement attempt.
type CaptureResult struct {
	Outcome   SettlementOutcome
	Reference string
	Reason    string
}

type WorkflowEventType string

const (
	VENDOR_APPROVED_EVENT   WorkflowEventType = "vendor.approved"
	VENDOR_REJECTED_EVENT   WorkflowEventType = "vendor.rejected"
	PAYMENT_INITIATED_EVENT WorkflowEventType = "payment.initiated"
	PAYMENT_PENDING_EVENT   WorkflowEventType = "payment.pending"
	PAYMENT_SETTLED_EVENT   WorkflowEventType = "payment.settled"
	PAYMENT_FAILED_EVENT    WorkflowEventType = "payment.failed"
)

type WorkflowEvent struct {
	Type        WorkflowEventType `json:"type"`
	AggregateID string            `json:"aggregate_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Payload     JSONB             `json:"payload"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type InitiatePaymentRequestBody struct {
	EventID  string `json:"event_id" binding:"required,uuid"`
	VendorID string `json:"vendor_id" binding:"required,uuid"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty" binding:"omitempty,len=3"`
}

type PayoutRequestBody struct {
	PaymentID string `json:"payment_id" binding:"required,uuid"`
}

type ProcessSettlementRequestBody struct {
	PaymentID string             `json:"payment_id" binding:"required,uuid"`
	Outcome   *SettlementOutcome `json:"outcome,omitempty" binding:"omitempty,settlementoutcome"`
}

// APIResponseListItem is the `{id, data}` envelope the admin lists are served in.
type APIResponseListItem struct {
	ID   string `json:"id"`
	Data any    `json:"data"`
}

type APIResponseVendorSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Services int    `json:"services"`
}

type APIResponseEventSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Status    EventPhase `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type APIResponseDashboard struct {
	Upcoming       int                        `json:"upcoming"`
	Ongoing        int                        `json:"ongoing"`
	Completed      int                        `json:"completed"`
	EventsPerMonth [12]int                    `json:"events_per_month"`
	RecentEvents   []APIResponseEventSummary  `json:"recent_events"`
	UpcomingEvents []APIResponseEventSummary  `json:"upcoming_events"`
	TopVendors     []APIResponseVendorSummary `json:"top_vendors"`
	Vendors        map[VendorPhase]int        `json:"vendors"`
	PendingPayouts int                        `json:"pending_payouts"`
	Users          int                        `json:"users"`
	GeneratedAt    time.Time                  `json:"generated_at"`
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Handler func(payload string)
