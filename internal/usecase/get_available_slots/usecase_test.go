package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	serviceRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, _ domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeLeaveRepo struct {
	leaves []*domain.LeaveRequest
	err    error
}

func (f *fakeLeaveRepo) GetBlockingByBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.LeaveRequest, error) {
	return f.leaves, f.err
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

type fakeBarberRepo struct {
	barber *domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	if f.barber == nil {
		return nil, barberRepo.ErrBarberNotFound
	}
	return f.barber, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.service == nil {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

func testBranch() *domain.Branch {
	return &domain.Branch{
		ID:                   1,
		Name:                 "Main Street",
		Timezone:             "UTC",
		OpenTime:             "10:00",
		CloseTime:            "21:00",
		SlotIntervalMinutes:  60,
		SameDayBufferMinutes: 30,
		AdvanceBookingDays:   0,
	}
}

func testBarber() *domain.Barber {
	return &domain.Barber{
		ID:       2,
		BranchID: 1,
		Name:     "Somchai",
		Active:   true,
	}
}

func testService() *domain.Service {
	return &domain.Service{
		ID:              3,
		BranchID:        1,
		Name:            "Haircut",
		Price:           350,
		DurationMinutes: 60,
		Active:          true,
	}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	leaves *fakeLeaveRepo,
	branch *domain.Branch,
	barber *domain.Barber,
	service *domain.Service,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		bookings,
		leaves,
		&fakeBranchRepo{branch: branch},
		&fakeBarberRepo{barber: barber},
		&fakeServiceRepo{service: service},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func testRequest(date time.Time) *Request {
	return &Request{BranchID: 1, BarberID: 2, ServiceID: 3, Date: date}
}

// Тесты

func TestExecute_FreeDayReturnsFullGrid(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	require.Len(t, resp.Slots, 11)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "20:00", resp.Slots[10].StartTime.String())
}

func TestExecute_BookingBlocksOverlappingSlot(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	starts := availableStarts(resp.Slots)
	assert.NotContains(t, starts, "12:00")
	// Граничащие слоты остаются доступными
	assert.Contains(t, starts, "11:00")
	assert.Contains(t, starts, "13:00")
}

func TestExecute_LegacyBookingWithoutDurationBlocksOneHour(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Нулевая длительность трактуется как один часовой слот
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "12:00", DurationMinutes: 0, Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	starts := availableStarts(resp.Slots)
	assert.NotContains(t, starts, "12:00")
	assert.Contains(t, starts, "13:00")
}

func TestExecute_MalformedBookingStartTimeIsDropped(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "garbage", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	// Некорректная запись не блокирует ни одного слота
	assert.Len(t, resp.Slots, 11)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusCancelledByUser},
	}}

	uc := newTestUseCase(bookings, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)
	assert.Contains(t, availableStarts(resp.Slots), "12:00")
}

func TestExecute_FullDayLeaveBlocksEverything(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	leaves := &fakeLeaveRepo{leaves: []*domain.LeaveRequest{
		{Type: domain.LeaveFullDay, Status: domain.LeaveApproved},
	}}

	uc := newTestUseCase(&fakeBookingRepo{}, leaves, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PendingShortBreakBlocksSlot(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Неразобранная заявка блокирует слоты наравне с утвержденной
	leaves := &fakeLeaveRepo{leaves: []*domain.LeaveRequest{
		{Type: domain.LeaveShortBreak, StartTime: "14:00", DurationMinutes: ptr.Ptr(30), Status: domain.LeavePending},
	}}

	uc := newTestUseCase(&fakeBookingRepo{}, leaves, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	starts := availableStarts(resp.Slots)
	assert.NotContains(t, starts, "14:00")
	assert.Contains(t, starts, "15:00")
}

func TestExecute_WeeklyOffDayReturnsEmpty(t *testing.T) {
	// 2026-09-10 - четверг
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	barber := testBarber()
	barber.WeeklyOffDays = []int{int(time.Thursday)}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), barber, testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayBuffer(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 10, 14, 5, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	assert.Equal(t, []string{"15:00", "16:00", "17:00", "18:00", "19:00", "20:00"}, availableStarts(resp.Slots))
}

func TestExecute_PastDateRejected(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), testBarber(), testService(), now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	branch := testBranch()
	branch.AdvanceBookingDays = 7

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, branch, testBarber(), testService(), now)

	// Граница окна доступна
	_, err := uc.Execute(context.Background(), testRequest(time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// За границей окна - отказ
	_, err = uc.Execute(context.Background(), testRequest(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_NonPositiveServiceDuration(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	service := testService()
	service.DurationMinutes = 0

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), testBarber(), service, now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BarberFromAnotherBranch(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	barber := testBarber()
	barber.BranchID = 99

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), barber, testService(), now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	service := testService()
	service.Active = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLeaveRepo{}, testBranch(), testBarber(), service, now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
