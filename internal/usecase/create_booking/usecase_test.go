package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

// Фейки

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, _ domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeLeaveRepo struct {
	leaves []*domain.LeaveRequest
}

func (f *fakeLeaveRepo) GetBlockingByBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.LeaveRequest, error) {
	return f.leaves, nil
}

type fakeBranchRepo struct {
	branch *domain.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, _ int64) (*domain.Branch, error) {
	return f.branch, nil
}

type fakeBarberRepo struct {
	barber *domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	return f.barber, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return f.customer, nil
}

type fakeNotifyClient struct {
	sent []notifyservice.BookingNotification
}

func (f *fakeNotifyClient) SendBookingEventWithGracefulDegradation(_ context.Context, n notifyservice.BookingNotification) error {
	f.sent = append(f.sent, n)
	return nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

type fixture struct {
	bookings *fakeBookingRepo
	leaves   *fakeLeaveRepo
	branch   *domain.Branch
	barber   *domain.Barber
	service  *domain.Service
	notify   *fakeNotifyClient
	tx       *fakeTxManager
	now      time.Time
}

func newFixture() *fixture {
	return &fixture{
		bookings: &fakeBookingRepo{nextID: 42},
		leaves:   &fakeLeaveRepo{},
		branch: &domain.Branch{
			ID:                   1,
			Name:                 "Main Street",
			Timezone:             "UTC",
			OpenTime:             "10:00",
			CloseTime:            "21:00",
			SlotIntervalMinutes:  60,
			SameDayBufferMinutes: 30,
		},
		barber: &domain.Barber{
			ID:             2,
			BranchID:       1,
			Name:           "Somchai",
			CommissionRate: 0.4,
			Active:         true,
		},
		service: &domain.Service{
			ID:              3,
			BranchID:        1,
			Name:            "Haircut",
			Price:           350,
			DurationMinutes: 60,
			Active:          true,
		},
		notify: &fakeNotifyClient{},
		tx:     &fakeTxManager{},
		now:    time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(
		f.bookings,
		f.leaves,
		&fakeBranchRepo{branch: f.branch},
		&fakeBarberRepo{barber: f.barber},
		&fakeServiceRepo{service: f.service},
		&fakeCustomerRepo{customer: &domain.Customer{ID: 7, Name: "Anan", Phone: "+66811111111"}},
		f.notify,
		f.tx,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: f.now}
	return uc
}

func (f *fixture) request() *Request {
	return &Request{
		CustomerID: 7,
		BranchID:   1,
		BarberID:   2,
		ServiceID:  3,
		Date:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "14:00",
	}
}

// Тесты

func TestExecute_CreatesBookingWithSnapshot(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.ReferenceCode)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Снапшот данных услуги и клиента на момент бронирования
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, "Haircut", f.bookings.created.ServiceName)
	assert.Equal(t, 350.0, f.bookings.created.ServicePrice)
	assert.Equal(t, 0.4, f.bookings.created.CommissionRate)
	assert.Equal(t, "Anan", f.bookings.created.CustomerName)
	assert.Equal(t, "+66811111111", f.bookings.created.CustomerPhone)

	// Проверка и вставка выполняются в транзакции, уведомление уходит после
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, "created", f.notify.sent[0].Event)
	assert.Equal(t, "Somchai", f.notify.sent[0].BarberName)
}

func TestExecute_OverlappingBookingRejected(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{StartTime: "13:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.bookings.created)
	assert.Empty(t, f.notify.sent)
}

func TestExecute_BackToBackBookingAllowed(t *testing.T) {
	f := newFixture()
	// Существующая запись 13:00-14:00 граничит с запрошенной 14:00-15:00
	f.bookings.existing = []*domain.Booking{
		{StartTime: "13:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.NoError(t, err)
}

func TestExecute_FullDayLeaveRejected(t *testing.T) {
	f := newFixture()
	f.leaves.leaves = []*domain.LeaveRequest{
		{Type: domain.LeaveFullDay, Status: domain.LeavePending},
	}

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrBarberUnavailable)
}

func TestExecute_ShortBreakOverlapRejected(t *testing.T) {
	f := newFixture()
	f.leaves.leaves = []*domain.LeaveRequest{
		{Type: domain.LeaveShortBreak, StartTime: "14:30", DurationMinutes: ptr.Ptr(30), Status: domain.LeaveApproved},
	}

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_WeeklyOffDayRejected(t *testing.T) {
	f := newFixture()
	// 2026-09-10 - четверг
	f.barber.WeeklyOffDays = []int{int(time.Thursday)}

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrBarberUnavailable)
}

// Время без ведущего нуля сортируется лексикографически неправильно
// ("9:00" > "14:35") и обошло бы и буфер, и проверку пересечений
func TestExecute_UnpaddedStartTimeRejected(t *testing.T) {
	f := newFixture()
	f.branch.OpenTime = "08:00"
	f.bookings.existing = []*domain.Booking{
		{StartTime: "09:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	req := f.request()
	req.StartTime = "9:00"

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, f.bookings.created)
}

func TestExecute_OffGridStartTimeRejected(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.StartTime = "14:20"

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ServiceMustFinishByClose(t *testing.T) {
	f := newFixture()
	f.service.DurationMinutes = 90

	req := f.request()
	req.StartTime = "20:00"

	// 20:00 + 90 минут = 21:30 > 21:00
	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SameDayBufferViolationRejected(t *testing.T) {
	f := newFixture()
	f.now = time.Date(2026, 9, 10, 13, 45, 0, 0, time.UTC)

	// 14:00 < 13:45 + 30 минут
	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture()
	f.now = time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceWindowRejected(t *testing.T) {
	f := newFixture()
	f.branch.AdvanceBookingDays = 3

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InactiveBarberRejected(t *testing.T) {
	f := newFixture()
	f.barber.Active = false

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusCancelledByUser},
	}

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.NoError(t, err)
}
