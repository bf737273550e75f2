package commission_report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
)

type fakeBookingRepo struct {
	rows        []*domain.CommissionRow
	periodStart time.Time
	periodEnd   time.Time
}

func (f *fakeBookingRepo) CommissionByBranchAndPeriod(_ context.Context, _ int64, periodStart, periodEnd time.Time) ([]*domain.CommissionRow, error) {
	f.periodStart = periodStart
	f.periodEnd = periodEnd
	return f.rows, nil
}

type fakeBranchRepo struct {
	branch *domain.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, _ int64) (*domain.Branch, error) {
	if f.branch == nil {
		return nil, branchRepo.ErrBranchNotFound
	}
	return f.branch, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBranch() *domain.Branch {
	return &domain.Branch{
		ID:         1,
		Name:       "Main Street",
		ManagerIDs: []int64{100},
	}
}

func TestExecute_BuildsReportWithTotals(t *testing.T) {
	bookings := &fakeBookingRepo{
		rows: []*domain.CommissionRow{
			{BarberID: 2, BarberName: "Somchai", BookingsCount: 10, GrossRevenue: 3500, CommissionDue: 1400, PaidAmount: 3000, UnpaidAmount: 500},
			{BarberID: 3, BarberName: "Niran", BookingsCount: 4, GrossRevenue: 1200, CommissionDue: 480, PaidAmount: 1200},
		},
	}
	uc := NewUseCase(bookings, &fakeBranchRepo{branch: testBranch()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 100, BranchID: 1, Month: "2026-08"})
	require.NoError(t, err)

	require.Len(t, resp.Barbers, 2)
	assert.Equal(t, "2026-08", resp.Month)
	assert.Equal(t, 14, resp.TotalBookings)
	assert.Equal(t, 4700.0, resp.TotalGrossRevenue)
	assert.Equal(t, 1880.0, resp.TotalCommissionDue)
	assert.Equal(t, 1400.0, resp.Barbers[0].CommissionDue)

	// Период - календарный месяц, правая граница исключается
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), bookings.periodStart)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), bookings.periodEnd)
}

func TestExecute_NonManagerDenied(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBranchRepo{branch: testBranch()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 999, BranchID: 1, Month: "2026-08"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_BranchNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBranchRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, BranchID: 1, Month: "2026-08"})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_InvalidMonthRejected(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBranchRepo{branch: testBranch()}, nopLogger{})

	for _, month := range []string{"2026-13", "08-2026", "2026/08", "not-a-month"} {
		_, err := uc.Execute(context.Background(), &Request{UserID: 100, BranchID: 1, Month: month})
		assert.ErrorIs(t, err, ErrInvalidInput, "month=%s", month)
	}
}

func TestExecute_EmptyMonthHasNoRows(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBranchRepo{branch: testBranch()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 100, BranchID: 1, Month: "2026-08"})
	require.NoError(t, err)
	assert.Empty(t, resp.Barbers)
	assert.Equal(t, 0, resp.TotalBookings)
}
