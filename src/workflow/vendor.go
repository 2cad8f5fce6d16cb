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

// VendorApproval moves vendors between pending, approved and rejected.
//
// Approve and Reject each override the other, and re-applying the current
// decision is a no-op. Two opposite decisions racing on the same vendor are
// resolved last-write-wins: whichever update reaches the store last is the
// stored state. This is a deliberate trade-off; no lock is taken.
type VendorApproval struct {
	store     VendorStore
	publisher Publisher
	now       func() time.Time
}

func NewVendorApproval(store VendorStore, publisher Publisher) *VendorApproval {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &VendorApproval{store: store, publisher: publisher, now: time.Now}
}

func (a *VendorApproval) List(ctx context.Context) ([]models.Vendor, error) {
	vendors, err := a.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		if !v.Phase.Valid() {
			err := fmt.Errorf("vendor %s has status %q: %w", v.ID.String(), string(v.Phase), types.ErrIntegrityViolation)
			log.Printf("[vendors] %s\n", err.Error())
			return nil, err
		}
	}
	return vendors, nil
}

func (a *VendorApproval) Approve(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return a.decide(ctx, id, types.VENDOR_APPROVED)
}

func (a *VendorApproval) Reject(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return a.decide(ctx, id, types.VENDOR_REJECTED)
}

func (a *VendorApproval) decide(ctx context.Context, id uuid.UUID, phase types.VendorPhase) (*models.Vendor, error) {
	vendor, changed, err := a.store.SetVendorPhase(ctx, id, phase)
	if err != nil {
		return nil, err
	}
	if !vendor.Phase.Valid() {
		err := fmt.Errorf("vendor %s has status %q: %w", id.String(), string(vendor.Phase), types.ErrIntegrityViolation)
		log.Printf("[vendors] %s\n", err.Error())
		return nil, err
	}
	if !changed {
		return vendor, nil
	}
	log.Printf("[vendors] %s is now %s\n", id.String(), string(vendor.Phase))

	evtType := types.VENDOR_APPROVED_EVENT
	if vendor.Phase == types.VENDOR_REJECTED {
		evtType = types.VENDOR_REJECTED_EVENT
	}
	publish(ctx, a.publisher, types.WorkflowEvent{
		Type:        evtType,
		AggregateID: id.String(),
		OccurredAt:  a.now(),
		Payload: types.JSONB{
			"vendor_id": id.String(),
			"name":      vendor.Name,
			"email":     vendor.Email,
			"status":    string(vendor.Phase),
		},
	})
	return vendor, nil
}
