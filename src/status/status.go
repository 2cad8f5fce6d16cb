// Package status derives lifecycle phases from stored timestamps and flags.
package status

import (
	"fmt"
	"plannova/src/types"
	"time"
)

// EventPhase reports where now falls relative to an event's schedule. Both
// bounds belong to the ongoing phase.
func EventPhase(now, start, end time.Time) types.EventPhase {
	if now.Before(start) {
		return types.EVENT_UPCOMING
	}
	if now.After(end) {
		return types.EVENT_COMPLETED
	}
	return types.EVENT_ONGOING
}

// VendorPhase folds the external approved/rejected pair into a single phase.
// Both flags set is a data error and is never resolved in favour of either.
func VendorPhase(approved, rejected bool) (types.VendorPhase, error) {
	switch {
	case approved && rejected:
		return "", fmt.Errorf("vendor is both approved and rejected: %w", types.ErrIntegrityViolation)
	case approved:
		return types.VENDOR_APPROVED, nil
	case rejected:
		return types.VENDOR_REJECTED, nil
	}
	return types.VENDOR_PENDING, nil
}

// VendorFlags is the inverse of VendorPhase.
func VendorFlags(phase types.VendorPhase) (approved bool, rejected bool, err error) {
	switch phase {
	case types.VENDOR_APPROVED:
		return true, false, nil
	case types.VENDOR_REJECTED:
		return false, true, nil
	case types.VENDOR_PENDING:
		return false, false, nil
	}
	return false, false, fmt.Errorf("unknown vendor status %q: %w", string(phase), types.ErrIntegrityViolation)
}

// SettlementConsistent reports whether the settlement timestamp agrees with the
// stored payment phase.
func SettlementConsistent(phase types.PaymentPhase, settledAt *time.Time) bool {
	return (phase == types.PAYMENT_SETTLED) == (settledAt != nil)
}
