package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	customerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BarberService/internal/service/customers/models"
)

// phoneRe допускает номера в международном формате
var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Service сервис для работы с CRM клиентов
type Service struct {
	customerRepo CustomerRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(
	customerRepo CustomerRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSummary получает CRM карточку клиента с агрегатами по бронированиям
func (s *Service) GetSummary(ctx context.Context, customerID int64) (*models.CustomerSummaryResponse, error) {
	s.logger.Info("GetSummary: fetching summary for customer=%d", customerID)

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetSummary: customer id=%d not found", customerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetSummary: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetSummary - repository error: %v", ErrInternal, err)
	}

	visits, upcoming, totalSpend, lastVisit, err := s.bookingRepo.CustomerTotals(ctx, customerID)
	if err != nil {
		s.logger.Error("GetSummary: failed to fetch totals for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetSummary - failed to fetch totals: %v", ErrInternal, err)
	}

	summary := &domain.CustomerSummary{
		Customer:      *customer,
		VisitCount:    visits,
		UpcomingCount: upcoming,
		TotalSpend:    totalSpend,
		LastVisit:     lastVisit,
	}

	s.logger.Info("GetSummary: successfully fetched summary for customer=%d, visits=%d", customerID, visits)
	return models.FromDomainSummary(summary), nil
}

// MigratePhone меняет номер телефона клиента
// Запись клиента и денормализованные телефоны в бронированиях обновляются
// в одной транзакции, чтобы история не разъехалась с профилем
func (s *Service) MigratePhone(ctx context.Context, customerID int64, req *models.MigratePhoneRequest) (*models.MigratePhoneResponse, error) {
	s.logger.Info("MigratePhone: migrating phone for customer=%d", customerID)

	// 1. Валидируем формат номера
	if !phoneRe.MatchString(req.NewPhone) {
		s.logger.Warn("MigratePhone: invalid phone format for customer=%d", customerID)
		return nil, fmt.Errorf("%w: phone must be 7-15 digits, optionally prefixed with +", ErrInvalidInput)
	}

	// 2. Проверяем существование клиента
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("MigratePhone: customer id=%d not found", customerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("MigratePhone: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: MigratePhone - repository error: %v", ErrInternal, err)
	}

	if customer.Phone == req.NewPhone {
		s.logger.Info("MigratePhone: customer=%d already has phone, nothing to do", customerID)
		return &models.MigratePhoneResponse{CustomerID: customerID, Phone: req.NewPhone}, nil
	}

	// 3. Проверяем, что номер не занят другим клиентом
	existing, err := s.customerRepo.GetByPhone(ctx, req.NewPhone)
	if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		s.logger.Error("MigratePhone: failed to check phone uniqueness: %v", err)
		return nil, fmt.Errorf("%w: MigratePhone - failed to check phone: %v", ErrInternal, err)
	}
	if existing != nil && existing.ID != customerID {
		s.logger.Warn("MigratePhone: phone already in use by customer=%d", existing.ID)
		return nil, ErrPhoneTaken
	}

	// 4. Обновляем профиль и снапшоты в бронированиях атомарно
	var bookingsUpdated int64
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.customerRepo.UpdatePhone(ctx, customerID, req.NewPhone); err != nil {
			return fmt.Errorf("update customer phone: %w", err)
		}

		updated, err := s.bookingRepo.UpdateCustomerPhone(ctx, customerID, req.NewPhone)
		if err != nil {
			return fmt.Errorf("update booking phones: %w", err)
		}
		bookingsUpdated = updated

		return nil
	})
	if err != nil {
		s.logger.Error("MigratePhone: transaction failed for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: MigratePhone - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("MigratePhone: successfully migrated phone for customer=%d, bookings_updated=%d",
		customerID, bookingsUpdated)
	return &models.MigratePhoneResponse{
		CustomerID:      customerID,
		Phone:           req.NewPhone,
		BookingsUpdated: bookingsUpdated,
	}, nil
}
