package commission_report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
)

// UseCase use case для помесячного отчета по комиссии барберов
type UseCase struct {
	bookingRepo BookingRepository
	branchRepo  BranchRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, branchRepo BranchRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		branchRepo:  branchRepo,
		logger:      logger,
	}
}

// Execute строит отчет по комиссии за календарный месяц
// Доступен только менеджерам филиала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommissionReport: user=%d, branch=%d, month=%s", req.UserID, req.BranchID, req.Month)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommissionReport: validation failed: %v", err)
		return nil, err
	}

	periodStart, err := time.Parse(domain.MonthFormat, req.Month)
	if err != nil {
		uc.logger.Warn("CommissionReport: invalid month %q: %v", req.Month, err)
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidInput)
	}
	// Конец периода - первый день следующего месяца (правая граница исключается)
	periodEnd := periodStart.AddDate(0, 1, 0)

	branch, err := uc.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CommissionReport: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CommissionReport: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	if !branch.IsManager(req.UserID) {
		uc.logger.Warn("CommissionReport: user=%d is not a manager of branch=%d", req.UserID, req.BranchID)
		return nil, ErrPermissionDenied
	}

	rows, err := uc.bookingRepo.CommissionByBranchAndPeriod(ctx, req.BranchID, periodStart, periodEnd)
	if err != nil {
		uc.logger.Error("CommissionReport: failed to build report for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to build report: %v", ErrInternal, err)
	}

	resp := &Response{
		BranchID: req.BranchID,
		Month:    req.Month,
		Barbers:  make([]BarberLine, 0, len(rows)),
	}

	for _, row := range rows {
		resp.Barbers = append(resp.Barbers, BarberLine{
			BarberID:      row.BarberID,
			BarberName:    row.BarberName,
			BookingsCount: row.BookingsCount,
			GrossRevenue:  row.GrossRevenue,
			CommissionDue: row.CommissionDue,
			PaidAmount:    row.PaidAmount,
			UnpaidAmount:  row.UnpaidAmount,
		})
		resp.TotalBookings += row.BookingsCount
		resp.TotalGrossRevenue += row.GrossRevenue
		resp.TotalCommissionDue += row.CommissionDue
	}

	uc.logger.Info("CommissionReport: branch=%d, month=%s, barbers=%d, commission=%.2f",
		req.BranchID, req.Month, len(resp.Barbers), resp.TotalCommissionDue)

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.Month == "" {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	return nil
}
