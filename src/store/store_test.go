package store

import (
	"context"
	"errors"
	"log"
	"plannova/src/models"
	"plannova/src/types"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type StoreSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	s.mock = mock
	s.store = New(gormDB)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.Nil(s.mock.ExpectationsWereMet())
}

func (s *StoreSuite) TestTransitionApplied() {
	id := uuid.New()
	settledAt := time.Now().UTC()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "payments" SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phase", "amount", "settled_at"}).
			AddRow(id.String(), string(types.PAYMENT_SETTLED), 500, settledAt))
	s.mock.ExpectCommit()

	p, applied, err := s.store.TransitionPayment(s.ctx, id, types.PAYMENT_PENDING, types.PAYMENT_SETTLED, models.PaymentChange{SettledAt: &settledAt})
	s.Require().Nil(err)
	s.True(applied)
	s.Equal(types.PAYMENT_SETTLED, p.Phase)
	s.Require().NotNil(p.SettledAt)
}

func (s *StoreSuite) TestTransitionLost() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "payments" SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phase"}))
	s.mock.ExpectCommit()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phase", "amount"}).
			AddRow(id.String(), string(types.PAYMENT_FAILED), 500))

	p, applied, err := s.store.TransitionPayment(s.ctx, id, types.PAYMENT_PENDING, types.PAYMENT_SETTLED, models.PaymentChange{})
	s.Require().Nil(err)
	s.False(applied)
	s.Equal(types.PAYMENT_FAILED, p.Phase)
}

func (s *StoreSuite) TestTransitionMissingPayment() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "payments" SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phase"}))
	s.mock.ExpectCommit()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := s.store.TransitionPayment(s.ctx, uuid.New(), types.PAYMENT_INITIATED, types.PAYMENT_PENDING, models.PaymentChange{})
	s.True(errors.Is(err, types.ErrNotFound))
}

func (s *StoreSuite) TestSetVendorPhaseChanged() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "vendors" SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(id.String(), "Rangoli Decor", string(types.VENDOR_APPROVED)))
	s.mock.ExpectCommit()

	v, changed, err := s.store.SetVendorPhase(s.ctx, id, types.VENDOR_APPROVED)
	s.Require().Nil(err)
	s.True(changed)
	s.Equal(types.VENDOR_APPROVED, v.Phase)
}

func (s *StoreSuite) TestSetVendorPhaseUnchanged() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "vendors" SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))
	s.mock.ExpectCommit()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendors"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(id.String(), "Rangoli Decor", string(types.VENDOR_REJECTED)))

	v, changed, err := s.store.SetVendorPhase(s.ctx, id, types.VENDOR_REJECTED)
	s.Require().Nil(err)
	s.False(changed)
	s.Equal(types.VENDOR_REJECTED, v.Phase)
}

func (s *StoreSuite) TestFindVendorNotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vendors"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.store.FindVendor(s.ctx, uuid.New())
	s.True(errors.Is(err, types.ErrNotFound))
}

func (s *StoreSuite) TestListPendingOldestFirst() {
	first, second := uuid.New(), uuid.New()
	now := time.Now()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE phase = $1`) + `.*` + regexp.QuoteMeta(`ORDER BY initiated_at asc,id asc`)).
		WithArgs(string(types.PAYMENT_PENDING)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phase", "initiated_at"}).
			AddRow(first.String(), string(types.PAYMENT_PENDING), now.Add(-time.Hour)).
			AddRow(second.String(), string(types.PAYMENT_PENDING), now))

	payments, err := s.store.ListPaymentsByPhase(s.ctx, types.PAYMENT_PENDING)
	s.Require().Nil(err)
	s.Require().Len(payments, 2)
	s.Equal(first, payments[0].ID)
	s.Equal(second, payments[1].ID)
}

func (s *StoreSuite) TestListPaymentsIgnoresPhase() {
	id := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`) + `.*` + regexp.QuoteMeta(`ORDER BY initiated_at asc,id asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phase"}).
			AddRow(id.String(), "bogus"))

	payments, err := s.store.ListPayments(s.ctx)
	s.Require().Nil(err)
	s.Require().Len(payments, 1)
	s.Equal(types.PaymentPhase("bogus"), payments[0].Phase)
}

func (s *StoreSuite) TestCountUsers() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.store.CountUsers(s.ctx)
	s.Require().Nil(err)
	s.Equal(int64(3), n)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestMemoryTransitionIsConditional(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	p := m.PutPayment(models.Payment{Phase: types.PAYMENT_INITIATED, Amount: 100, InitiatedAt: time.Now()})

	got, applied, err := m.TransitionPayment(ctx, p.ID, types.PAYMENT_PENDING, types.PAYMENT_SETTLED, models.PaymentChange{})
	if err != nil || applied || got.Phase != types.PAYMENT_INITIATED {
		t.Fatalf("expected no-op on wrong source phase, got applied=%v phase=%s err=%v", applied, got.Phase, err)
	}

	got, applied, err = m.TransitionPayment(ctx, p.ID, types.PAYMENT_INITIATED, types.PAYMENT_PENDING, models.PaymentChange{})
	if err != nil || !applied || got.Phase != types.PAYMENT_PENDING {
		t.Fatalf("expected initiated -> pending, got applied=%v phase=%s err=%v", applied, got.Phase, err)
	}
}
