package utils

import (
	"errors"
	"plannova/src/config"
	"plannova/src/models"
	"plannova/src/types"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(name string, start time.Time, hours int, created time.Time) models.Event {
	e := models.Event{ID: uuid.New(), Name: name, StartDate: start, EndDate: start.Add(time.Duration(hours) * time.Hour)}
	e.CreatedAt = created
	return e
}

func TestSummarizeEvents(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	events := []models.Event{
		event("past wedding", now.Add(-30*day), 10, now.Add(-60*day)),
		event("live sangeet", now.Add(-2*time.Hour), 6, now.Add(-20*day)),
		event("mehendi", now.Add(3*day), 5, now.Add(-1*day)),
		event("reception", now.Add(1*day), 5, now.Add(-2*day)),
		event("engagement", now.Add(40*day), 4, now.Add(-3*day)),
		event("haldi", now.Add(2*day), 4, now.Add(-4*day)),
		event("anniversary", now.Add(90*day), 4, now.Add(-5*day)),
		event("birthday", now.Add(5*day), 4, now.Add(-6*day)),
	}

	s := SummarizeEvents(now, events)
	assert.Equal(t, 6, s.Upcoming)
	assert.Equal(t, 1, s.Ongoing)
	assert.Equal(t, 1, s.Completed)

	total := 0
	for _, c := range s.EventsPerMonth {
		total += c
	}
	assert.Equal(t, len(events), total)
	assert.Equal(t, 5, s.EventsPerMonth[time.June-1])

	require.Len(t, s.RecentEvents, 5)
	assert.Equal(t, "mehendi", s.RecentEvents[0].Name)
	assert.Equal(t, "anniversary", s.RecentEvents[4].Name)

	require.Len(t, s.UpcomingEvents, 5)
	assert.Equal(t, "reception", s.UpcomingEvents[0].Name)
	assert.Equal(t, "haldi", s.UpcomingEvents[1].Name)
	assert.Equal(t, "engagement", s.UpcomingEvents[4].Name)
	for _, e := range s.UpcomingEvents {
		assert.Equal(t, types.EVENT_UPCOMING, e.Status)
	}
}

func TestSummarizeNoEvents(t *testing.T) {
	s := SummarizeEvents(time.Now(), nil)
	assert.Equal(t, 0, s.Upcoming)
	assert.NotNil(t, s.RecentEvents)
	assert.NotNil(t, s.UpcomingEvents)
}

func TestCountVendorPhases(t *testing.T) {
	counts, err := CountVendorPhases([]models.Vendor{
		{Phase: types.VENDOR_APPROVED},
		{Phase: types.VENDOR_APPROVED},
		{Phase: types.VENDOR_PENDING},
	})
	require.Nil(t, err)
	assert.Equal(t, 2, counts[types.VENDOR_APPROVED])
	assert.Equal(t, 1, counts[types.VENDOR_PENDING])
	assert.Equal(t, 0, counts[types.VENDOR_REJECTED])

	_, err = CountVendorPhases([]models.Vendor{{Phase: "both"}})
	assert.True(t, errors.Is(err, types.ErrIntegrityViolation))
}

func TestWithSuffix(t *testing.T) {
	prev := config.API_ENV
	defer func() { config.API_ENV = prev }()

	config.API_ENV = "staging"
	assert.Equal(t, "notifications_staging", WithSuffix("notifications"))
	config.API_ENV = "production"
	assert.Equal(t, "notifications", WithSuffix("notifications"))
}

func TestTopVendors(t *testing.T) {
	vendors := []models.Vendor{}
	services := []models.Service{}
	for i, n := range []int{1, 3, 0, 2, 2, 4, 1} {
		v := models.Vendor{ID: uuid.New(), Name: string(rune('a' + i))}
		vendors = append(vendors, v)
		for k := 0; k < n; k++ {
			services = append(services, models.Service{VendorID: v.ID})
		}
	}

	top := TopVendors(vendors, services)
	require.Len(t, top, 5)
	names := []string{}
	for _, v := range top {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"f", "b", "d", "e", "a"}, names)
	assert.Equal(t, 4, top[0].Services)

	assert.Empty(t, TopVendors(vendors, nil))
}
