package workflow

import (
	"context"
	"encoding/json"
	"log"
	"plannova/src/config"
	"plannova/src/models"
	"plannova/src/types"
	"plannova/src/utils"
	"time"
)

const dashboardCacheKey = "dashboard:summary"

type EventView struct {
	models.Event
	Status types.EventPhase `json:"status"`
}

// Dashboard is the read model behind the admin event list and summary.
type Dashboard struct {
	store DashboardStore
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewDashboard(store DashboardStore, cache Cache) *Dashboard {
	return &Dashboard{store: store, cache: cache, ttl: config.DASHBOARD_CACHE_TTL, now: time.Now}
}

func (d *Dashboard) Events(ctx context.Context) ([]EventView, error) {
	events, err := d.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	now := d.now()
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{Event: e, Status: utils.EventStatus(now, &e)})
	}
	return views, nil
}

func (d *Dashboard) Summary(ctx context.Context) (*types.APIResponseDashboard, error) {
	if d.cache != nil {
		if b, err := d.cache.Get(ctx, dashboardCacheKey); err == nil && len(b) > 0 {
			var cached types.APIResponseDashboard
			if err := json.Unmarshal(b, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	events, err := d.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	vendors, err := d.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := d.store.ListPaymentsByPhase(ctx, types.PAYMENT_PENDING)
	if err != nil {
		return nil, err
	}
	users, err := d.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	services, err := d.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	summary := utils.SummarizeEvents(d.now(), events)
	summary.Vendors, err = utils.CountVendorPhases(vendors)
	if err != nil {
		log.Printf("[dashboard] %s\n", err.Error())
		return nil, err
	}
	summary.TopVendors = utils.TopVendors(vendors, services)
	summary.PendingPayouts = len(pending)
	summary.Users = int(users)

	if d.cache != nil && d.ttl > 0 {
		if b, err := json.Marshal(summary); err == nil {
			if err := d.cache.Set(ctx, dashboardCacheKey, b, d.ttl); err != nil {
				log.Printf("[dashboard] could not cache summary: %s\n", err.Error())
			}
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary so the next read recomputes it.
func (d *Dashboard) Invalidate(ctx context.Context) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Delete(ctx, dashboardCacheKey); err != nil {
		log.Printf("[dashboard] could not invalidate summary: %s\n", err.Error())
	}
}

// Invalidating wraps next so every published transition also clears the
// cached summary. next may be nil.
func (d *Dashboard) Invalidating(next Publisher) Publisher {
	return invalidatingPublisher{dashboard: d, next: next}
}

type invalidatingPublisher struct {
	dashboard *Dashboard
	next      Publisher
}

func (p invalidatingPublisher) Publish(ctx context.Context, evt types.WorkflowEvent) error {
	p.dashboard.Invalidate(ctx)
	if p.next == nil {
		return nil
	}
	return p.next.Publish(ctx, evt)
}
