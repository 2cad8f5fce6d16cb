// Package workflow holds the vendor approval and payment settlement state
// machines and the read model built on top of them.
package workflow

import (
	"context"
	"fmt"
	"log"
	"plannova/src/models"
	"plannova/src/types"
	"time"

	"github.com/google/uuid"
)

type VendorStore interface {
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	// SetVendorPhase writes phase unless the vendor already has it. changed is
	// false when nothing was written, in which case the current record is returned.
	SetVendorPhase(ctx context.Context, id uuid.UUID, phase types.VendorPhase) (vendor *models.Vendor, changed bool, err error)
}

type PaymentStore interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	FindPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPaymentsByPhase(ctx context.Context, phase types.PaymentPhase) ([]models.Payment, error)
	// TransitionPayment moves the payment from one phase to another in a single
	// conditional write. applied is false when the payment was not in from; the
	// returned payment is then the current record.
	TransitionPayment(ctx context.Context, id uuid.UUID, from, to types.PaymentPhase, change models.PaymentChange) (payment *models.Payment, applied bool, err error)
}

type EventStore interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	FindEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

type SettlementStore interface {
	PaymentStore
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

type DashboardStore interface {
	EventStore
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	ListPaymentsByPhase(ctx context.Context, phase types.PaymentPhase) ([]models.Payment, error)
	CountUsers(ctx context.Context) (int64, error)
	ListServices(ctx context.Context) ([]models.Service, error)
}

type Publisher interface {
	Publish(ctx context.Context, evt types.WorkflowEvent) error
}

// Capturer moves funds for a pending payment and reports the outcome. Calls for
// the same payment must be idempotent.
type Capturer interface {
	Capture(ctx context.Context, p *models.Payment) (*types.CaptureResult, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evt types.WorkflowEvent) error {
	return nil
}

// SimulatedCapturer stands in for a payment processor and always succeeds.
type SimulatedCapturer struct{}

func (SimulatedCapturer) Capture(ctx context.Context, p *models.Payment) (*types.CaptureResult, error) {
	return &types.CaptureResult{
		Outcome:   types.OUTCOME_SUCCESS,
		Reference: fmt.Sprintf("sim_%s", p.ID.String()),
	}, nil
}

// publish never fails the caller. The transition it reports is already committed.
func publish(ctx context.Context, p Publisher, evt types.WorkflowEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		log.Printf("[workflow] failed to publish %s for %s: %s\n", evt.Type, evt.AggregateID, err.Error())
	}
}
