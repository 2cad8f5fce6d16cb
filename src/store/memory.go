package store

import (
	"context"
	"plannova/src/models"
	"plannova/src/types"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process store with the same per-record atomicity as Store:
// every method holds the lock for its whole read-modify-write.
type Memory struct {
	mu       sync.Mutex
	vendors  map[uuid.UUID]models.Vendor
	events   map[uuid.UUID]models.Event
	payments map[uuid.UUID]models.Payment
	users    map[uuid.UUID]models.User
	services map[uuid.UUID]models.Service
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		vendors:  map[uuid.UUID]models.Vendor{},
		events:   map[uuid.UUID]models.Event{},
		payments: map[uuid.UUID]models.Payment{},
		users:    map[uuid.UUID]models.User{},
		services: map[uuid.UUID]models.Service{},
		now:      time.Now,
	}
}

func (m *Memory) stamp(ts *types.Timestamps) {
	now := m.now()
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
}

// PutVendor inserts or replaces a vendor exactly as given.
func (m *Memory) PutVendor(v models.Vendor) models.Vendor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Phase == "" {
		v.Phase = types.VENDOR_PENDING
	}
	m.stamp(&v.Timestamps)
	m.vendors[v.ID] = v
	return v
}

func (m *Memory) PutEvent(e models.Event) models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	for i := range e.BookingRequests {
		e.BookingRequests[i].EventID = e.ID
	}
	m.stamp(&e.Timestamps)
	m.events[e.ID] = e
	return e
}

// PutPayment inserts or replaces a payment without any validation.
func (m *Memory) PutPayment(p models.Payment) models.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.stamp(&p.Timestamps)
	m.payments[p.ID] = p
	return p
}

func (m *Memory) PutUser(u models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.stamp(&u.Timestamps)
	m.users[u.ID] = u
	return u
}

func (m *Memory) PutService(s models.Service) models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Slug == "" {
		s.Slug = models.ServiceSlug(s.VendorName, s.Name)
	}
	m.stamp(&s.Timestamps)
	m.services[s.ID] = s
	return s
}

func (m *Memory) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vendors := make([]models.Vendor, 0, len(m.vendors))
	for _, v := range m.vendors {
		vendors = append(vendors, v)
	}
	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].CreatedAt.Before(vendors[j].CreatedAt)
	})
	return vendors, nil
}

func (m *Memory) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &v, nil
}

func (m *Memory) SetVendorPhase(ctx context.Context, id uuid.UUID, phase types.VendorPhase) (*models.Vendor, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return nil, false, types.ErrNotFound
	}
	if v.Phase == phase {
		return &v, false, nil
	}
	v.Phase = phase
	m.stamp(&v.Timestamps)
	m.vendors[id] = v
	return &v, true, nil
}

func (m *Memory) CreatePayment(ctx context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.stamp(&p.Timestamps)
	m.payments[p.ID] = *p
	return nil
}

func (m *Memory) FindPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &p, nil
}

func (m *Memory) ListPaymentsByPhase(ctx context.Context, phase types.PaymentPhase) ([]models.Payment, error) {
	return m.listPayments(func(p models.Payment) bool { return p.Phase == phase }), nil
}

func (m *Memory) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return m.listPayments(func(models.Payment) bool { return true }), nil
}

func (m *Memory) listPayments(keep func(models.Payment) bool) []models.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	payments := []models.Payment{}
	for _, p := range m.payments {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].InitiatedAt.Equal(payments[j].InitiatedAt) {
			return payments[i].ID.String() < payments[j].ID.String()
		}
		return payments[i].InitiatedAt.Before(payments[j].InitiatedAt)
	})
	return payments
}

func (m *Memory) TransitionPayment(ctx context.Context, id uuid.UUID, from, to types.PaymentPhase, change models.PaymentChange) (*models.Payment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, false, types.ErrNotFound
	}
	if p.Phase != from {
		return &p, false, nil
	}
	p.Phase = to
	p.SettledAt = change.SettledAt
	p.CaptureReference = change.CaptureReference
	p.FailureReason = change.FailureReason
	m.stamp(&p.Timestamps)
	m.payments[id] = p
	return &p, true, nil
}

func (m *Memory) ListEvents(ctx context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]models.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (m *Memory) FindEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &e, nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (m *Memory) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *Memory) ListServices(ctx context.Context) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	services := make([]models.Service, 0, len(m.services))
	for _, s := range m.services {
		services = append(services, s)
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].CreatedAt.After(services[j].CreatedAt)
	})
	return services, nil
}
