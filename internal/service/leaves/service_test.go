package leaves

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	leaveRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/leave"
	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

type fakeLeaveRepo struct {
	created       *domain.LeaveRequest
	leave         *domain.LeaveRequest
	leaves        []*domain.LeaveRequest
	updatedStatus *domain.LeaveStatus
	filterStatus  *domain.LeaveStatus
}

func (f *fakeLeaveRepo) Create(_ context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	f.created = leave
	created := *leave
	created.ID = 11
	return &created, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ int64) (*domain.LeaveRequest, error) {
	if f.leave == nil {
		return nil, leaveRepo.ErrLeaveNotFound
	}
	return f.leave, nil
}

func (f *fakeLeaveRepo) GetBlockingByBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.LeaveRequest, error) {
	return f.leaves, nil
}

func (f *fakeLeaveRepo) GetByBranch(_ context.Context, _ int64, status *domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	f.filterStatus = status
	return f.leaves, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, _ int64, status domain.LeaveStatus) error {
	f.updatedStatus = &status
	return nil
}

type fakeBarberRepo struct {
	barber *domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	if f.barber == nil {
		return nil, barberRepo.ErrBarberNotFound
	}
	return f.barber, nil
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

type fixture struct {
	leaves   *fakeLeaveRepo
	barbers  *fakeBarberRepo
	branches *fakeBranchRepo
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		leaves:  &fakeLeaveRepo{},
		barbers: &fakeBarberRepo{barber: &domain.Barber{ID: 2, BranchID: 1, Name: "Somchai", Active: true}},
		branches: &fakeBranchRepo{branch: &domain.Branch{
			ID:         1,
			Name:       "Sukhumvit",
			ManagerIDs: []int64{100},
		}},
	}
	f.svc = NewService(f.leaves, f.barbers, f.branches, nopLogger{})
	return f
}

func TestCreate_FullDayLeave(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), &models.CreateLeaveRequest{
		UserID:    2,
		BarberID:  2,
		Type:      "full_day",
		LeaveDate: "2026-09-10",
		Reason:    ptr.Ptr("семейные обстоятельства"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "full_day", resp.Type)
	assert.Nil(t, resp.StartTime)

	// Филиал берется у барбера, а не из запроса
	require.NotNil(t, f.leaves.created)
	assert.Equal(t, int64(1), f.leaves.created.BranchID)
}

func TestCreate_ShortBreakLeave(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), &models.CreateLeaveRequest{
		UserID:          2,
		BarberID:        2,
		Type:            "short_break",
		LeaveDate:       "2026-09-10",
		StartTime:       ptr.Ptr("14:00"),
		DurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "14:00", *resp.StartTime)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 30, *resp.DurationMinutes)
}

func TestCreate_ValidationFailures(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  *models.CreateLeaveRequest
	}{
		{"unknown type", &models.CreateLeaveRequest{UserID: 2, BarberID: 2, Type: "vacation", LeaveDate: "2026-09-10"}},
		{"bad date", &models.CreateLeaveRequest{UserID: 2, BarberID: 2, Type: "full_day", LeaveDate: "10.09.2026"}},
		{"short break without start time", &models.CreateLeaveRequest{UserID: 2, BarberID: 2, Type: "short_break", LeaveDate: "2026-09-10", DurationMinutes: ptr.Ptr(30)}},
		{"short break without duration", &models.CreateLeaveRequest{UserID: 2, BarberID: 2, Type: "short_break", LeaveDate: "2026-09-10", StartTime: ptr.Ptr("14:00")}},
		{"bad start time", &models.CreateLeaveRequest{UserID: 2, BarberID: 2, Type: "short_break", LeaveDate: "2026-09-10", StartTime: ptr.Ptr("2pm"), DurationMinutes: ptr.Ptr(30)}},
		{"non-positive duration", &models.CreateLeaveRequest{UserID: 2, BarberID: 2, Type: "short_break", LeaveDate: "2026-09-10", StartTime: ptr.Ptr("14:00"), DurationMinutes: ptr.Ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Nil(t, f.leaves.created)
}

func TestCreate_BarberNotFound(t *testing.T) {
	f := newFixture()
	f.barbers.barber = nil

	_, err := f.svc.Create(context.Background(), &models.CreateLeaveRequest{
		UserID:    2,
		BarberID:  99,
		Type:      "full_day",
		LeaveDate: "2026-09-10",
	})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestGetBranchLeaves_FiltersByStatus(t *testing.T) {
	f := newFixture()
	f.leaves.leaves = []*domain.LeaveRequest{
		{ID: 11, BarberID: 2, BranchID: 1, Type: domain.LeaveFullDay, LeaveDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Status: domain.LeavePending},
	}

	resp, err := f.svc.GetBranchLeaves(context.Background(), &models.GetBranchLeavesRequest{
		UserID:   100,
		BranchID: 1,
		Status:   ptr.Ptr("pending"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Leaves, 1)
	assert.Equal(t, "2026-09-10", resp.Leaves[0].LeaveDate)
	require.NotNil(t, f.leaves.filterStatus)
	assert.Equal(t, domain.LeavePending, *f.leaves.filterStatus)
}

func TestGetBranchLeaves_NonManagerDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetBranchLeaves(context.Background(), &models.GetBranchLeavesRequest{
		UserID:   999,
		BranchID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBranchLeaves_InvalidStatusRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetBranchLeaves(context.Background(), &models.GetBranchLeavesRequest{
		UserID:   100,
		BranchID: 1,
		Status:   ptr.Ptr("done"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_ApprovesPendingLeave(t *testing.T) {
	f := newFixture()
	f.leaves.leave = &domain.LeaveRequest{ID: 11, BarberID: 2, BranchID: 1, Type: domain.LeaveFullDay, Status: domain.LeavePending}

	resp, err := f.svc.Resolve(context.Background(), 11, &models.ResolveLeaveRequest{UserID: 100, Status: "approved"})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, f.leaves.updatedStatus)
	assert.Equal(t, domain.LeaveApproved, *f.leaves.updatedStatus)
}

func TestResolve_AlreadyResolved(t *testing.T) {
	f := newFixture()
	f.leaves.leave = &domain.LeaveRequest{ID: 11, BarberID: 2, BranchID: 1, Type: domain.LeaveFullDay, Status: domain.LeaveApproved}

	_, err := f.svc.Resolve(context.Background(), 11, &models.ResolveLeaveRequest{UserID: 100, Status: "rejected"})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Nil(t, f.leaves.updatedStatus)
}

// pending не является целевым статусом разбора
func TestResolve_PendingTargetRejected(t *testing.T) {
	f := newFixture()
	f.leaves.leave = &domain.LeaveRequest{ID: 11, BarberID: 2, BranchID: 1, Status: domain.LeavePending}

	_, err := f.svc.Resolve(context.Background(), 11, &models.ResolveLeaveRequest{UserID: 100, Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_NonManagerDenied(t *testing.T) {
	f := newFixture()
	f.leaves.leave = &domain.LeaveRequest{ID: 11, BarberID: 2, BranchID: 1, Status: domain.LeavePending}

	_, err := f.svc.Resolve(context.Background(), 11, &models.ResolveLeaveRequest{UserID: 999, Status: "approved"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, f.leaves.updatedStatus)
}

func TestResolve_LeaveNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Resolve(context.Background(), 404, &models.ResolveLeaveRequest{UserID: 100, Status: "approved"})
	assert.ErrorIs(t, err, ErrLeaveNotFound)
}
