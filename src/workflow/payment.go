package workflow

import (
	"context"
	"fmt"
	"log"
	"plannova/src/config"
	"plannova/src/models"
	"plannova/src/status"
	"plannova/src/types"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Settlement drives a payment from initiated through pending to settled or
// failed. Every edge is a single conditional write, so for one payment at most
// one caller wins each edge and the rest get an InvalidTransition.
type Settlement struct {
	store     SettlementStore
	capturer  Capturer
	publisher Publisher
	now       func() time.Time
}

func NewSettlement(store SettlementStore, capturer Capturer, publisher Publisher) *Settlement {
	if capturer == nil {
		capturer = SimulatedCapturer{}
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Settlement{store: store, capturer: capturer, publisher: publisher, now: time.Now}
}

func (s *Settlement) Initiate(ctx context.Context, eventID, vendorID uuid.UUID, amount int64, currency string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("initiate payment of %d: %w", amount, types.ErrInvalidAmount)
	}
	if _, err := s.store.FindEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID.String(), err)
	}
	if _, err := s.store.FindVendor(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("vendor %s: %w", vendorID.String(), err)
	}
	if currency == "" {
		currency = config.DEFAULT_CURRENCY
	}
	p := &models.Payment{
		ID:          uuid.New(),
		EventID:     eventID,
		VendorID:    vendorID,
		Amount:      amount,
		Currency:    strings.ToLower(currency),
		Phase:       types.PAYMENT_INITIATED,
		InitiatedAt: s.now().UTC(),
	}
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	s.announce(ctx, types.PAYMENT_INITIATED_EVENT, p)
	return p, nil
}

func (s *Settlement) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, err := s.store.FindPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkSettlement(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Settlement) ListPending(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.store.ListPaymentsByPhase(ctx, types.PAYMENT_PENDING)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if err := checkSettlement(&payments[i]); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

func (s *Settlement) RequestPayout(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, err := s.transition(ctx, id, types.PAYMENT_INITIATED, types.PAYMENT_PENDING, models.PaymentChange{})
	if err != nil {
		return nil, err
	}
	s.announce(ctx, types.PAYMENT_PENDING_EVENT, p)
	return p, nil
}

// ProcessSettlement closes a pending payment. A nil outcome asks the capture
// gateway for one; a supplied outcome is recorded as-is.
func (s *Settlement) ProcessSettlement(ctx context.Context, id uuid.UUID, outcome *types.SettlementOutcome) (*models.Payment, error) {
	current, err := s.store.FindPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkSettlement(current); err != nil {
		return nil, err
	}
	if current.Phase != types.PAYMENT_PENDING {
		target := types.PAYMENT_SETTLED
		if outcome != nil && *outcome == types.OUTCOME_FAILURE {
			target = types.PAYMENT_FAILED
		}
		return nil, transitionError(id, current.Phase, target)
	}

	result := &types.CaptureResult{}
	if outcome != nil {
		result.Outcome = *outcome
	} else {
		result, err = s.capturer.Capture(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("capture payment %s: %w", id.String(), err)
		}
	}

	to := types.PAYMENT_FAILED
	change := models.PaymentChange{CaptureReference: result.Reference}
	switch result.Outcome {
	case types.OUTCOME_SUCCESS:
		to = types.PAYMENT_SETTLED
		settledAt := s.now().UTC()
		change.SettledAt = &settledAt
	case types.OUTCOME_FAILURE:
		change.FailureReason = result.Reason
	default:
		return nil, fmt.Errorf("capture payment %s: unknown outcome %q", id.String(), string(result.Outcome))
	}

	p, err := s.transition(ctx, id, types.PAYMENT_PENDING, to, change)
	if err != nil {
		return nil, err
	}
	if to == types.PAYMENT_SETTLED {
		s.announce(ctx, types.PAYMENT_SETTLED_EVENT, p)
	} else {
		s.announce(ctx, types.PAYMENT_FAILED_EVENT, p)
	}
	return p, nil
}

func (s *Settlement) transition(ctx context.Context, id uuid.UUID, from, to types.PaymentPhase, change models.PaymentChange) (*models.Payment, error) {
	p, applied, err := s.store.TransitionPayment(ctx, id, from, to, change)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, transitionError(id, p.Phase, to)
	}
	log.Printf("[payments] %s moved %s -> %s\n", id.String(), string(from), string(to))
	return p, nil
}

func (s *Settlement) announce(ctx context.Context, evtType types.WorkflowEventType, p *models.Payment) {
	payload := types.JSONB{
		"payment_id": p.ID.String(),
		"event_id":   p.EventID.String(),
		"vendor_id":  p.VendorID.String(),
		"amount":     p.Amount,
		"currency":   p.Currency,
		"phase":      string(p.Phase),
	}
	if p.SettledAt != nil {
		payload["settled_at"] = p.SettledAt.Format(time.RFC3339)
	}
	if p.FailureReason != "" {
		payload["failure_reason"] = p.FailureReason
	}
	if evtType == types.PAYMENT_SETTLED_EVENT || evtType == types.PAYMENT_FAILED_EVENT {
		if v, err := s.store.FindVendor(ctx, p.VendorID); err == nil {
			payload["vendor_name"] = v.Name
			payload["email"] = v.Email
		}
	}
	publish(ctx, s.publisher, types.WorkflowEvent{
		Type:        evtType,
		AggregateID: p.ID.String(),
		OccurredAt:  s.now(),
		Payload:     payload,
	})
}

func transitionError(id uuid.UUID, from, to types.PaymentPhase) error {
	return &types.TransitionError{Entity: "payment", ID: id.String(), From: string(from), To: string(to)}
}

func checkSettlement(p *models.Payment) error {
	var err error
	switch {
	case !p.Phase.Valid():
		err = fmt.Errorf("payment %s has phase %q: %w", p.ID.String(), string(p.Phase), types.ErrIntegrityViolation)
	case !status.SettlementConsistent(p.Phase, p.SettledAt):
		err = fmt.Errorf("payment %s is %s with settled_at=%v: %w", p.ID.String(), string(p.Phase), p.SettledAt, types.ErrIntegrityViolation)
	default:
		return nil
	}
	log.Printf("[payments] %s\n", err.Error())
	return err
}
