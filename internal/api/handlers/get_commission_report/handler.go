package get_commission_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	commissionReport "github.com/m04kA/SMC-BarberService/internal/usecase/commission_report"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgMissingMonth    = "месяц обязателен"
	msgInvalidMonth    = "некорректный формат месяца, ожидается YYYY-MM"
	msgBranchNotFound  = "филиал не найден"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	useCase CommissionReportUseCase
	logger  Logger
}

func NewHandler(useCase CommissionReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/commission-report
// Query params: month (required, YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/commission-report - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /branches/{id}/commission-report - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем month из query параметров
	month := r.URL.Query().Get("month")
	if month == "" {
		h.logger.Warn("GET /branches/{id}/commission-report - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	// Вызываем use case (он сам проверит права менеджера)
	result, err := h.useCase.Execute(r.Context(), &commissionReport.Request{
		UserID:   userID,
		BranchID: branchID,
		Month:    month,
	})
	if err != nil {
		switch {
		case errors.Is(err, commissionReport.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/commission-report - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, commissionReport.ErrPermissionDenied):
			h.logger.Warn("GET /branches/{id}/commission-report - Access denied: branch_id=%d, user_id=%d",
				branchID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, commissionReport.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/commission-report - Invalid month: branch_id=%d, month=%s",
				branchID, month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /branches/{id}/commission-report - Failed to build report: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/commission-report - Report built successfully: branch_id=%d, month=%s, barbers=%d",
		branchID, month, len(result.Barbers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
