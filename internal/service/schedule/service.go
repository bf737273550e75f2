package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Service сервис для работы с расписанием филиалов
type Service struct {
	branchRepo BranchRepository
	barberRepo BarberRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	branchRepo BranchRepository,
	barberRepo BarberRepository,
	logger Logger,
) *Service {
	return &Service{
		branchRepo: branchRepo,
		barberRepo: barberRepo,
		logger:     logger,
	}
}

// GetSchedule получает расписание филиала с барберами
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, branchID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for branch=%d", branchID)

	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("GetSchedule: branch id=%d not found", branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("GetSchedule: repository error for branch id=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	barbers, err := s.barberRepo.GetByBranch(ctx, branchID, true)
	if err != nil {
		s.logger.Error("GetSchedule: failed to fetch barbers for branch id=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to fetch barbers: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for branch=%d, barbers=%d", branchID, len(barbers))
	return models.FromDomain(branch, barbers), nil
}

// UpdateSchedule частично обновляет расписание филиала
// Доступно только менеджерам филиала
func (s *Service) UpdateSchedule(ctx context.Context, branchID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for branch=%d by user=%d", branchID, req.UserID)

	// 1. Получаем филиал для проверки прав доступа
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("UpdateSchedule: branch id=%d not found", branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for branch id=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер филиала)
	if !branch.IsManager(req.UserID) {
		s.logger.Warn("UpdateSchedule: user=%d is not a manager of branch=%d", req.UserID, branchID)
		return nil, ErrAccessDenied
	}

	// 3. Валидируем обновленные значения поверх текущих
	if err := s.validateScheduleUpdate(branch, req); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for branch id=%d: %v", branchID, err)
		return nil, err
	}

	// 4. Применяем частичное обновление
	if err := s.branchRepo.UpdateSchedule(ctx, branchID, req.ToRepoUpdate()); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("UpdateSchedule: branch id=%d not found during update", branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for branch id=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for branch=%d", branchID)
	return s.GetSchedule(ctx, branchID)
}

// validateScheduleUpdate валидирует параметры расписания
// Проверка open < close выполняется на итоговых значениях, чтобы нельзя было
// сломать расписание обновлением только одной границы
func (s *Service) validateScheduleUpdate(branch *domain.Branch, req *models.UpdateScheduleRequest) error {
	openTime := branch.OpenTime
	closeTime := branch.CloseTime

	if req.OpenTime != nil {
		open := types.TimeString(*req.OpenTime)
		if err := open.Validate(); err != nil {
			return fmt.Errorf("%w: openTime must be in HH:MM format", ErrInvalidInput)
		}
		openTime = open
	}

	if req.CloseTime != nil {
		closeValue := types.TimeString(*req.CloseTime)
		if err := closeValue.Validate(); err != nil {
			return fmt.Errorf("%w: closeTime must be in HH:MM format", ErrInvalidInput)
		}
		closeTime = closeValue
	}

	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *req.Timezone)
		}
	}

	if req.SlotIntervalMinutes != nil {
		if *req.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || *req.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
			return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
		}
	}

	if req.SameDayBufferMinutes != nil {
		if *req.SameDayBufferMinutes < domain.MinSameDayBufferMinutes || *req.SameDayBufferMinutes > domain.MaxSameDayBufferMinutes {
			return fmt.Errorf("%w: sameDayBufferMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSameDayBufferMinutes, domain.MaxSameDayBufferMinutes)
		}
	}

	if req.AdvanceBookingDays != nil {
		if *req.AdvanceBookingDays < domain.MinAdvanceBookingDays || *req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
			return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
				ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
		}
	}

	return nil
}
