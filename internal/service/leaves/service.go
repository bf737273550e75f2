package leaves

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	leaveRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/leave"
	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Service сервис для работы с заявками на отсутствие барберов
type Service struct {
	leaveRepo  LeaveRepository
	barberRepo BarberRepository
	branchRepo BranchRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	leaveRepo LeaveRepository,
	barberRepo BarberRepository,
	branchRepo BranchRepository,
	logger Logger,
) *Service {
	return &Service{
		leaveRepo:  leaveRepo,
		barberRepo: barberRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// Create создает заявку на отсутствие
// Заявка создается в статусе pending и сразу блокирует слоты до разбора менеджером
func (s *Service) Create(ctx context.Context, req *models.CreateLeaveRequest) (*models.LeaveResponse, error) {
	s.logger.Info("Create: creating leave for barber=%d, type=%s, date=%s by user=%d",
		req.BarberID, req.Type, req.LeaveDate, req.UserID)

	// 1. Валидируем и конвертируем входные данные
	leave, err := s.buildLeave(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование барбера и берем его филиал
	barber, err := s.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("Create: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Create: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	leave.BranchID = barber.BranchID

	// 3. Создаем заявку
	created, err := s.leaveRepo.Create(ctx, leave)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created leave id=%d for barber=%d", created.ID, req.BarberID)
	return models.FromDomainLeave(created), nil
}

// GetBranchLeaves получает заявки филиала
// Доступно только менеджерам филиала
func (s *Service) GetBranchLeaves(ctx context.Context, req *models.GetBranchLeavesRequest) (*models.LeaveListResponse, error) {
	s.logger.Info("GetBranchLeaves: fetching leaves for branch=%d by user=%d", req.BranchID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.BranchID, req.UserID); err != nil {
		return nil, err
	}

	var status *domain.LeaveStatus
	if req.Status != nil {
		converted, err := toDomainLeaveStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetBranchLeaves: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &converted
	}

	leaves, err := s.leaveRepo.GetByBranch(ctx, req.BranchID, status)
	if err != nil {
		s.logger.Error("GetBranchLeaves: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchLeaves - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchLeaves: successfully fetched %d leaves for branch=%d", len(leaves), req.BranchID)
	return models.FromDomainLeaveList(leaves), nil
}

// Resolve утверждает или отклоняет заявку на отсутствие
// Доступно только менеджерам филиала; разобранную заявку нельзя разобрать повторно
func (s *Service) Resolve(ctx context.Context, leaveID int64, req *models.ResolveLeaveRequest) (*models.LeaveResponse, error) {
	s.logger.Info("Resolve: resolving leave id=%d to status=%s by user=%d", leaveID, req.Status, req.UserID)

	// 1. Валидируем целевой статус
	newStatus, err := toDomainLeaveStatus(req.Status)
	if err != nil || newStatus == domain.LeavePending {
		s.logger.Warn("Resolve: invalid target status=%s for leave id=%d", req.Status, leaveID)
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	}

	// 2. Получаем заявку
	leave, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			s.logger.Warn("Resolve: leave id=%d not found", leaveID)
			return nil, ErrLeaveNotFound
		}
		s.logger.Error("Resolve: repository error for leave id=%d: %v", leaveID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, leave.BranchID, req.UserID); err != nil {
		return nil, err
	}

	// 4. Повторный разбор запрещен
	if leave.Status != domain.LeavePending {
		s.logger.Warn("Resolve: leave id=%d already resolved with status=%s", leaveID, leave.Status)
		return nil, ErrAlreadyResolved
	}

	// 5. Обновляем статус
	if err := s.leaveRepo.UpdateStatus(ctx, leaveID, newStatus); err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			s.logger.Warn("Resolve: leave id=%d not found during update", leaveID)
			return nil, ErrLeaveNotFound
		}
		s.logger.Error("Resolve: repository error for leave id=%d: %v", leaveID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	leave.Status = newStatus

	s.logger.Info("Resolve: successfully resolved leave id=%d to status=%s", leaveID, newStatus)
	return models.FromDomainLeave(leave), nil
}

// Вспомогательные методы

// buildLeave валидирует запрос и собирает domain модель заявки
func (s *Service) buildLeave(req *models.CreateLeaveRequest) (*domain.LeaveRequest, error) {
	leaveType := domain.LeaveType(req.Type)
	if leaveType != domain.LeaveShortBreak && leaveType != domain.LeaveFullDay {
		return nil, fmt.Errorf("%w: type must be short_break or full_day", ErrInvalidInput)
	}

	leaveDate, err := time.Parse(domain.DateFormat, req.LeaveDate)
	if err != nil {
		return nil, fmt.Errorf("%w: leaveDate must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	leave := &domain.LeaveRequest{
		BarberID:  req.BarberID,
		Type:      leaveType,
		LeaveDate: leaveDate,
		Reason:    req.Reason,
		Status:    domain.LeavePending,
	}

	if leaveType == domain.LeaveShortBreak {
		if req.StartTime == nil || req.DurationMinutes == nil {
			return nil, fmt.Errorf("%w: startTime and durationMinutes are required for short_break", ErrInvalidInput)
		}

		startTime := types.TimeString(*req.StartTime)
		if err := startTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
		}
		if *req.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
		}

		leave.StartTime = startTime
		leave.DurationMinutes = req.DurationMinutes
	}

	return leave, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером филиала
func (s *Service) checkManagerAccess(ctx context.Context, branchID int64, userID int64) error {
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("checkManagerAccess: branch id=%d not found", branchID)
			return ErrBranchNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get branch id=%d: %v", branchID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get branch: %v", ErrInternal, err)
	}

	if !branch.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of branch=%d", userID, branchID)
		return ErrAccessDenied
	}

	return nil
}

func toDomainLeaveStatus(status string) (domain.LeaveStatus, error) {
	s := domain.LeaveStatus(status)
	switch s {
	case domain.LeavePending, domain.LeaveApproved, domain.LeaveRejected:
		return s, nil
	}
	return "", errors.New("invalid leave status")
}
