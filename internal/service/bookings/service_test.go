package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelledStatus *domain.BookingStatus
	cancelReason    string
	updatedStatus   *domain.BookingStatus
	paymentStatus   *domain.PaymentStatus
	paymentSlipURL  *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, _ domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) UpdatePayment(_ context.Context, _ int64, status domain.PaymentStatus, slipURL *string) error {
	f.paymentStatus = &status
	f.paymentSlipURL = slipURL
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, status domain.BookingStatus, reason string) error {
	f.cancelledStatus = &status
	f.cancelReason = reason
	return nil
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

type fakeNotifyClient struct {
	events []string
}

func (f *fakeNotifyClient) SendBookingEventWithGracefulDegradation(_ context.Context, n notifyservice.BookingNotification) error {
	f.events = append(f.events, n.Event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	bookings *fakeBookingRepo
	branches *fakeBranchRepo
	notify   *fakeNotifyClient
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{booking: testBooking()},
		branches: &fakeBranchRepo{branch: &domain.Branch{
			ID:         1,
			Name:       "Sukhumvit",
			ManagerIDs: []int64{100},
		}},
		notify: &fakeNotifyClient{},
	}
	f.svc = NewService(f.bookings, f.branches, f.notify, nopLogger{})
	return f
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		ReferenceCode:   "a1b2c3d4",
		CustomerID:      7,
		BranchID:        1,
		BarberID:        2,
		ServiceID:       3,
		BookingDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
		ServiceName:     "Haircut",
		ServicePrice:    350,
		CustomerName:    "Anan",
		CustomerPhone:   "+66811111111",
	}
}

func TestGetByID_OwnerHasAccess(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), 42, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "a1b2c3d4", resp.ReferenceCode)
}

func TestGetByID_ManagerHasAccess(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 42, 100)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 42, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()
	f.bookings.booking = nil

	_, err := f.svc.GetByID(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByOwnerSetsUserStatus(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             7,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	require.NotNil(t, f.bookings.cancelledStatus)
	assert.Equal(t, domain.StatusCancelledByUser, *f.bookings.cancelledStatus)
	assert.Equal(t, "передумал", f.bookings.cancelReason)
	assert.Equal(t, []string{"cancelled"}, f.notify.events)
}

func TestCancel_ByManagerSetsBranchStatus(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 100})
	require.NoError(t, err)

	require.NotNil(t, f.bookings.cancelledStatus)
	assert.Equal(t, domain.StatusCancelledByBranch, *f.bookings.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, f.bookings.cancelledStatus)
}

// Отменять можно только pending и confirmed
func TestCancel_TerminalStatusesRejected(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusNoShow,
	} {
		f := newFixture()
		f.bookings.booking.Status = status

		err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel, "status=%s", status)
	}
}

func TestUpdateStatus_ManagerConfirms(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "confirmed",
	})
	require.NoError(t, err)

	require.NotNil(t, f.bookings.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *f.bookings.updatedStatus)
	assert.Equal(t, []string{"confirmed"}, f.notify.events)
}

func TestUpdateStatus_NonConfirmTransitionsDoNotNotify(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Status = domain.StatusInProgress

	err := f.svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "completed",
	})
	require.NoError(t, err)

	assert.Empty(t, f.notify.events)
}

func TestUpdateStatus_NonManagerDenied(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 7,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_CancelledBookingRejected(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Status = domain.StatusCancelledByUser

	err := f.svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Nil(t, f.bookings.updatedStatus)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "done",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePayment_OwnerUploadsSlip(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdatePayment(context.Background(), 42, &models.UpdatePaymentRequest{
		UserID:         7,
		PaymentStatus:  "slip_uploaded",
		PaymentSlipURL: ptr.Ptr("https://cdn.example.com/slips/42.jpg"),
	})
	require.NoError(t, err)

	require.NotNil(t, f.bookings.paymentStatus)
	assert.Equal(t, domain.PaymentSlipUploaded, *f.bookings.paymentStatus)
	require.NotNil(t, f.bookings.paymentSlipURL)
	assert.Equal(t, "https://cdn.example.com/slips/42.jpg", *f.bookings.paymentSlipURL)
}

// Подтверждение оплаты - привилегия менеджера, владельцу доступна только загрузка слипа
func TestUpdatePayment_OwnerCannotMarkPaid(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdatePayment(context.Background(), 42, &models.UpdatePaymentRequest{
		UserID:        7,
		PaymentStatus: "paid",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, f.bookings.paymentStatus)
}

func TestUpdatePayment_ManagerMarksPaid(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdatePayment(context.Background(), 42, &models.UpdatePaymentRequest{
		UserID:        100,
		PaymentStatus: "paid",
	})
	require.NoError(t, err)

	require.NotNil(t, f.bookings.paymentStatus)
	assert.Equal(t, domain.PaymentPaid, *f.bookings.paymentStatus)
}

func TestUpdatePayment_UnknownStatusRejected(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdatePayment(context.Background(), 42, &models.UpdatePaymentRequest{
		UserID:        100,
		PaymentStatus: "wired",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerBookings_InvalidStatusRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 7,
		Status:     ptr.Ptr("done"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerBookings_ReturnsList(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 7})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(42), resp.Bookings[0].ID)
}

func TestGetBranchBookings_NonManagerDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
		BranchID: 1,
		UserID:   999,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
