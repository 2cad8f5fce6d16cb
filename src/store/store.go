// Package store persists vendors, events and payments. Store is backed by
// gorm/postgres; Memory keeps everything in process.
package store

import (
	"context"
	"errors"
	"plannova/src/models"
	"plannova/src/models/scopes"
	"plannova/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrNotFound
	}
	return err
}

func (s *Store) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := s.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Order("created_at asc").
		Find(&vendors).
		Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (s *Store) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&vendor).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &vendor, nil
}

func (s *Store) SetVendorPhase(ctx context.Context, id uuid.UUID, phase types.VendorPhase) (*models.Vendor, bool, error) {
	var vendor models.Vendor
	res := s.db.WithContext(ctx).
		Model(&vendor).
		Clauses(clause.Returning{}).
		Where("id = ? AND status <> ?", id, phase).
		Update("status", phase)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &vendor, true, nil
	}
	current, err := s.FindVendor(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) FindPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&payment).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &payment, nil
}

func (s *Store) ListPaymentsByPhase(ctx context.Context, phase types.PaymentPhase) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Scopes(scopes.WithPhase(phase), scopes.OldestFirst).
		Find(&payments).
		Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Scopes(scopes.OldestFirst).
		Find(&payments).
		Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *Store) TransitionPayment(ctx context.Context, id uuid.UUID, from, to types.PaymentPhase, change models.PaymentChange) (*models.Payment, bool, error) {
	var payment models.Payment
	res := s.db.WithContext(ctx).
		Model(&payment).
		Clauses(clause.Returning{}).
		Where("id = ? AND phase = ?", id, from).
		Updates(map[string]any{
			"phase":             to,
			"settled_at":        change.SettledAt,
			"capture_reference": change.CaptureReference,
			"failure_reason":    change.FailureReason,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &payment, true, nil
	}
	current, err := s.FindPayment(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Preload("BookingRequests").
		Scopes(scopes.NewestFirst).
		Find(&events).
		Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) FindEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&event).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Model(&models.User{}).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.WithContext(ctx).Model(&models.Service{}).Scopes(scopes.NewestFirst).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
