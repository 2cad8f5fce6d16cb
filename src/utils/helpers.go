package utils

import (
	"fmt"
	"plannova/src/config"
	"plannova/src/models"
	"plannova/src/status"
	"plannova/src/types"
	"sort"
	"time"

	"github.com/google/uuid"
)

const dashboardListSize = 5

func EventStatus(now time.Time, e *models.Event) types.EventPhase {
	return status.EventPhase(now, e.StartDate, e.EndDate)
}

// SummarizeEvents builds the event half of the admin dashboard. Vendor, payout
// and user counts are filled in by the caller.
func SummarizeEvents(now time.Time, events []models.Event) *types.APIResponseDashboard {
	summary := &types.APIResponseDashboard{
		RecentEvents:   []types.APIResponseEventSummary{},
		UpcomingEvents: []types.APIResponseEventSummary{},
		Vendors:        map[types.VendorPhase]int{},
		GeneratedAt:    now.UTC(),
	}
	upcoming := []models.Event{}
	for _, e := range events {
		switch EventStatus(now, &e) {
		case types.EVENT_UPCOMING:
			summary.Upcoming++
			upcoming = append(upcoming, e)
		case types.EVENT_ONGOING:
			summary.Ongoing++
		case types.EVENT_COMPLETED:
			summary.Completed++
		}
		summary.EventsPerMonth[e.StartDate.Month()-1]++
	}

	recent := make([]models.Event, len(events))
	copy(recent, events)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	for _, e := range recent[:min(dashboardListSize, len(recent))] {
		summary.RecentEvents = append(summary.RecentEvents, toEventSummary(now, &e))
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	for _, e := range upcoming[:min(dashboardListSize, len(upcoming))] {
		summary.UpcomingEvents = append(summary.UpcomingEvents, toEventSummary(now, &e))
	}
	return summary
}

func CountVendorPhases(vendors []models.Vendor) (map[types.VendorPhase]int, error) {
	counts := map[types.VendorPhase]int{
		types.VENDOR_PENDING:  0,
		types.VENDOR_APPROVED: 0,
		types.VENDOR_REJECTED: 0,
	}
	for _, v := range vendors {
		if !v.Phase.Valid() {
			return nil, fmt.Errorf("vendor %s has status %q: %w", v.ID.String(), string(v.Phase), types.ErrIntegrityViolation)
		}
		counts[v.Phase]++
	}
	return counts, nil
}

// TopVendors ranks vendors by how many services they list. Ties go to the
// vendor name in alphabetical order.
func TopVendors(vendors []models.Vendor, services []models.Service) []types.APIResponseVendorSummary {
	counts := map[uuid.UUID]int{}
	for _, s := range services {
		counts[s.VendorID]++
	}
	top := []types.APIResponseVendorSummary{}
	for _, v := range vendors {
		if counts[v.ID] == 0 {
			continue
		}
		top = append(top, types.APIResponseVendorSummary{ID: v.ID.String(), Name: v.Name, Services: counts[v.ID]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Services == top[j].Services {
			return top[i].Name < top[j].Name
		}
		return top[i].Services > top[j].Services
	})
	return top[:min(dashboardListSize, len(top))]
}

func toEventSummary(now time.Time, e *models.Event) types.APIResponseEventSummary {
	return types.APIResponseEventSummary{
		ID:        e.ID.String(),
		Name:      e.Name,
		Location:  e.Location,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Status:    EventStatus(now, e),
		CreatedAt: e.CreatedAt,
	}
}

func IsProd() bool {
	return config.API_ENV == "production"
}

// WithSuffix appends the environment to a queue or topic name outside production.
func WithSuffix(name string) string {
	if IsProd() || config.API_ENV == "" {
		return name
	}
	return fmt.Sprintf("%s_%s", name, config.API_ENV)
}
