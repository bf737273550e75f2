package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	serviceRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/service"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	leaveRepo    LeaveRepository
	branchRepo   BranchRepository
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	leaveRepo LeaveRepository,
	branchRepo BranchRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		leaveRepo:    leaveRepo,
		branchRepo:   branchRepo,
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: branch=%d, barber=%d, service=%d, date=%s",
		req.BranchID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем филиал с параметрами расписания
	branch, err := uc.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailableSlots: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Текущее время в таймзоне филиала - "сегодня" определяется локальными сутками
	now := uc.timeProvider.Now().In(branch.Location())

	// 4. Получаем барбера и проверяем его принадлежность филиалу
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if barber.BranchID != req.BranchID || !barber.Active {
		uc.logger.Warn("GetAvailableSlots: barber id=%d is not active in branch id=%d", req.BarberID, req.BranchID)
		return nil, ErrBarberNotFound
	}

	// 5. Получаем услугу и проверяем её параметры
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := validateService(service, req.BranchID); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	// 6. Валидация даты с учетом окна предварительной записи
	if err := validateDate(req.Date, now, branch.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Еженедельный выходной барбера - день целиком недоступен
	if barber.IsOffOn(req.Date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: barber id=%d is off on %s", req.BarberID, req.Date.Weekday())
		return uc.emptyResponse(req), nil
	}

	// 8. Генерируем сетку стартов
	timeSlots, err := generateTimeSlots(
		branch.OpenTime,
		branch.CloseTime,
		branch.SlotIntervalMinutes,
		service.DurationMinutes,
		req.Date,
		now,
		branch.SameDayBufferMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 9. Получаем активные бронирования барбера на эту дату
	filter := domain.BranchBookingsFilter{
		BranchID:        req.BranchID,
		BarberID:        &req.BarberID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Получаем блокирующие заявки на отсутствие
	leaves, err := uc.leaveRepo.GetBlockingByBarberAndDate(ctx, req.BarberID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get leaves: %v", err)
		return nil, fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
	}

	// 11. Нормализуем занятость барбера в единый список интервалов
	engagements, droppedBookings := domain.EngagementsFromBookings(bookings)
	if droppedBookings > 0 {
		uc.logger.Warn("GetAvailableSlots: dropped %d bookings with malformed start time for barber=%d date=%s",
			droppedBookings, req.BarberID, req.Date.Format(domain.DateFormat))
	}

	leaveEngagements, droppedLeaves := domain.EngagementsFromLeaves(leaves)
	if droppedLeaves > 0 {
		uc.logger.Warn("GetAvailableSlots: dropped %d leaves with malformed start time for barber=%d date=%s",
			droppedLeaves, req.BarberID, req.Date.Format(domain.DateFormat))
	}
	engagements = append(engagements, leaveEngagements...)

	// 12. Выходной на весь день блокирует все слоты без перебора сетки
	if domain.HasFullDayEngagement(engagements) {
		uc.logger.Info("GetAvailableSlots: barber id=%d has a full-day leave on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 13. Отбираем старты, свободные от пересечений
	slots := filterAvailableSlots(timeSlots, service.DurationMinutes, engagements)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for branch=%d, barber=%d, service=%d, date=%s",
		len(slots), len(timeSlots), req.BranchID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		BranchID:  req.BranchID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		BranchID:  req.BranchID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Slots:     []domain.AvailableSlot{},
	}
}
