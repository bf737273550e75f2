package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	customerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/customer"
	serviceRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifyservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	leaveRepo    LeaveRepository
	branchRepo   BranchRepository
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	customerRepo CustomerRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
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
	customerRepo CustomerRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		leaveRepo:    leaveRepo,
		branchRepo:   branchRepo,
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой дня барбера (FOR UPDATE), чтобы исключить двойное бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, branch=%d, barber=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.BranchID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем филиал с параметрами расписания
	branch, err := uc.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CreateBooking: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateBooking: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Текущее время в таймзоне филиала
	now := uc.timeProvider.Now().In(branch.Location())

	// 4. Получаем барбера и проверяем принадлежность филиалу
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if barber.BranchID != req.BranchID || !barber.Active {
		uc.logger.Warn("CreateBooking: barber id=%d is not active in branch id=%d", req.BarberID, req.BranchID)
		return nil, ErrBarberNotFound
	}

	// 5. Еженедельный выходной барбера
	if barber.IsOffOn(req.Date.Weekday()) {
		uc.logger.Warn("CreateBooking: barber id=%d is off on %s", req.BarberID, req.Date.Weekday())
		return nil, ErrBarberUnavailable
	}

	// 6. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BranchID != req.BranchID || !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is not active in branch id=%d", req.ServiceID, req.BranchID)
		return nil, ErrServiceNotFound
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("CreateBooking: service id=%d has non-positive duration", req.ServiceID)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 7. Получаем клиента для денормализации имени и телефона
	customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 8. Проверяем попадание в сетку и рабочие часы
	if err := validateTimeSlot(branch, req.StartTime, service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: time slot validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 9. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Валидация даты с учетом окна предварительной записи
		if err := validateDate(req.Date, now, branch.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 9.2. Валидация буфера для бронирования на сегодня
		if err := validateBookingTime(req.Date, req.StartTime, now, branch.SameDayBufferMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 9.3. Получаем активные бронирования барбера на дату с блокировкой (FOR UPDATE)
		filter := domain.BranchBookingsFilter{
			BranchID:        req.BranchID,
			BarberID:        &req.BarberID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByBranchWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.4. Получаем блокирующие заявки на отсутствие
		leaves, err := uc.leaveRepo.GetBlockingByBarberAndDate(txCtx, req.BarberID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get leaves: %v", err)
			return fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
		}

		// 9.5. Нормализуем занятость барбера
		engagements, dropped := domain.EngagementsFromBookings(bookings)
		if dropped > 0 {
			uc.logger.Warn("CreateBooking: dropped %d bookings with malformed start time for barber=%d", dropped, req.BarberID)
		}

		leaveEngagements, dropped := domain.EngagementsFromLeaves(leaves)
		if dropped > 0 {
			uc.logger.Warn("CreateBooking: dropped %d leaves with malformed start time for barber=%d", dropped, req.BarberID)
		}
		engagements = append(engagements, leaveEngagements...)

		// 9.6. Выходной на весь день
		if domain.HasFullDayEngagement(engagements) {
			uc.logger.Warn("CreateBooking: barber id=%d has a full-day leave on %s",
				req.BarberID, req.Date.Format(domain.DateFormat))
			return ErrBarberUnavailable
		}

		// 9.7. Проверяем пересечение запрошенного интервала с занятостью
		overlaps, err := hasOverlap(req.StartTime, service.DurationMinutes, engagements)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if overlaps {
			uc.logger.Warn("CreateBooking: slot %s is not available for barber=%d", req.StartTime, req.BarberID)
			return ErrSlotNotAvailable
		}

		// 9.8. Создаем бронирование со снапшотом данных услуги и клиента
		booking := &domain.Booking{
			ReferenceCode:   uuid.NewString(),
			CustomerID:      req.CustomerID,
			BranchID:        req.BranchID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			// Денормализация данных услуги
			ServiceName:    service.Name,
			ServicePrice:   service.Price,
			CommissionRate: barber.CommissionRate,
			// Денормализация данных клиента
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
			// Заметки
			Notes: req.Notes,
		}

		// 9.9. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.ReferenceCode)

	// 10. Уведомляем клиента best-effort - после коммита, деградация допустима
	_ = uc.notifyClient.SendBookingEventWithGracefulDegradation(ctx, notifyservice.BookingNotification{
		BookingID:     result.ID,
		ReferenceCode: result.ReferenceCode,
		Event:         "created",
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		BranchName:    branch.Name,
		BarberName:    barber.Name,
		ServiceName:   result.ServiceName,
		BookingDate:   result.BookingDate.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
	})

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		ReferenceCode:   result.ReferenceCode,
		CustomerID:      result.CustomerID,
		BranchID:        result.BranchID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
