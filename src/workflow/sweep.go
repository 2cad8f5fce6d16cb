package workflow

import (
	"context"
	"log"
	"plannova/src/models"
	"plannova/src/status"
	"plannova/src/types"
	"time"
)

type SweepStore interface {
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

type SweepReport struct {
	BrokenVendors  []string
	BrokenPayments []string
	StalePayouts   []string
}

// Sweep scans stored vendors and payments for impossible status combinations
// and for payouts left pending longer than staleAfter. It only reports;
// nothing is rewritten.
func Sweep(ctx context.Context, store SweepStore, now time.Time, staleAfter time.Duration) (*SweepReport, error) {
	report := &SweepReport{}

	vendors, err := store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		if !v.Phase.Valid() {
			report.BrokenVendors = append(report.BrokenVendors, v.ID.String())
			log.Printf("[sweep] %s: vendor %s has status %q\n", types.ErrIntegrityViolation.Error(), v.ID.String(), string(v.Phase))
		}
	}

	payments, err := store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		switch {
		case !p.Phase.Valid():
			report.BrokenPayments = append(report.BrokenPayments, p.ID.String())
			log.Printf("[sweep] %s: payment %s has phase %q\n", types.ErrIntegrityViolation.Error(), p.ID.String(), string(p.Phase))
		case !status.SettlementConsistent(p.Phase, p.SettledAt):
			report.BrokenPayments = append(report.BrokenPayments, p.ID.String())
			log.Printf("[sweep] %s: payment %s is %s with settled_at=%v\n", types.ErrIntegrityViolation.Error(), p.ID.String(), string(p.Phase), p.SettledAt)
		}
		if p.Phase == types.PAYMENT_PENDING && now.Sub(p.InitiatedAt) > staleAfter {
			report.StalePayouts = append(report.StalePayouts, p.ID.String())
		}
	}
	if len(report.StalePayouts) > 0 {
		log.Printf("[sweep] %d payouts pending for more than %s\n", len(report.StalePayouts), staleAfter.String())
	}
	return report, nil
}
