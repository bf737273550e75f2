package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	customerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BarberService/internal/service/customers/models"
)

type fakeCustomerRepo struct {
	customer     *domain.Customer
	byPhone      *domain.Customer
	updatedPhone string
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	if f.customer == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.customer, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, _ string) (*domain.Customer, error) {
	if f.byPhone == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.byPhone, nil
}

func (f *fakeCustomerRepo) UpdatePhone(_ context.Context, _ int64, phone string) error {
	f.updatedPhone = phone
	return nil
}

type fakeBookingRepo struct {
	visits     int
	upcoming   int
	totalSpend float64
	lastVisit  *time.Time

	bookingsUpdated int64
	migratedPhone   string
}

func (f *fakeBookingRepo) CustomerTotals(_ context.Context, _ int64) (int, int, float64, *time.Time, error) {
	return f.visits, f.upcoming, f.totalSpend, f.lastVisit, nil
}

func (f *fakeBookingRepo) UpdateCustomerPhone(_ context.Context, _ int64, phone string) (int64, error) {
	f.migratedPhone = phone
	return f.bookingsUpdated, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:    7,
		Name:  "Anan",
		Phone: "+66811111111",
	}
}

func TestGetSummary_BuildsCard(t *testing.T) {
	lastVisit := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{visits: 12, upcoming: 2, totalSpend: 4200, lastVisit: &lastVisit}
	svc := NewService(&fakeCustomerRepo{customer: testCustomer()}, bookings, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Anan", resp.Name)
	assert.Equal(t, 12, resp.VisitCount)
	assert.Equal(t, 2, resp.UpcomingCount)
	assert.Equal(t, 4200.0, resp.TotalSpend)
	require.NotNil(t, resp.LastVisit)
	assert.Equal(t, "2026-08-20", *resp.LastVisit)
}

func TestGetSummary_NoVisitsOmitsLastVisit(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{customer: testCustomer()}, &fakeBookingRepo{}, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	assert.Zero(t, resp.VisitCount)
	assert.Nil(t, resp.LastVisit)
}

func TestGetSummary_CustomerNotFound(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{}, &fakeBookingRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetSummary(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestMigratePhone_UpdatesProfileAndBookings(t *testing.T) {
	customers := &fakeCustomerRepo{customer: testCustomer()}
	bookings := &fakeBookingRepo{bookingsUpdated: 5}
	tx := &fakeTxManager{}
	svc := NewService(customers, bookings, tx, nopLogger{})

	resp, err := svc.MigratePhone(context.Background(), 7, &models.MigratePhoneRequest{NewPhone: "+66822222222"})
	require.NoError(t, err)

	assert.Equal(t, "+66822222222", resp.Phone)
	assert.Equal(t, int64(5), resp.BookingsUpdated)
	assert.Equal(t, "+66822222222", customers.updatedPhone)
	assert.Equal(t, "+66822222222", bookings.migratedPhone)
	assert.Equal(t, 1, tx.calls)
}

func TestMigratePhone_SamePhoneIsNoop(t *testing.T) {
	customers := &fakeCustomerRepo{customer: testCustomer()}
	tx := &fakeTxManager{}
	svc := NewService(customers, &fakeBookingRepo{}, tx, nopLogger{})

	resp, err := svc.MigratePhone(context.Background(), 7, &models.MigratePhoneRequest{NewPhone: "+66811111111"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.BookingsUpdated)
	assert.Empty(t, customers.updatedPhone)
	assert.Zero(t, tx.calls)
}

func TestMigratePhone_PhoneTakenByAnotherCustomer(t *testing.T) {
	customers := &fakeCustomerRepo{
		customer: testCustomer(),
		byPhone:  &domain.Customer{ID: 8, Phone: "+66822222222"},
	}
	tx := &fakeTxManager{}
	svc := NewService(customers, &fakeBookingRepo{}, tx, nopLogger{})

	_, err := svc.MigratePhone(context.Background(), 7, &models.MigratePhoneRequest{NewPhone: "+66822222222"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.Zero(t, tx.calls)
}

func TestMigratePhone_InvalidFormatRejected(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{customer: testCustomer()}, &fakeBookingRepo{}, &fakeTxManager{}, nopLogger{})

	for _, bad := range []string{"", "abc", "123", "+66-81-111-1111", "+123456789012345678"} {
		_, err := svc.MigratePhone(context.Background(), 7, &models.MigratePhoneRequest{NewPhone: bad})
		assert.ErrorIs(t, err, ErrInvalidInput, "phone=%q", bad)
	}
}

func TestMigratePhone_CustomerNotFound(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{}, &fakeBookingRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.MigratePhone(context.Background(), 404, &models.MigratePhoneRequest{NewPhone: "+66822222222"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
