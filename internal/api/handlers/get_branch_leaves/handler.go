package get_branch_leaves

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/leaves"
	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgBranchNotFound  = "филиал не найден"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "некорректный статус заявки"
)

type Handler struct {
	service LeaveService
	logger  Logger
}

func NewHandler(service LeaveService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/leaves
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/leaves - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /branches/{id}/leaves - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetBranchLeavesRequest{
		UserID:   userID,
		BranchID: branchID,
		Status:   statusPtr,
	}

	// Получаем заявки филиала (сервис сам проверит права менеджера)
	result, err := h.service.GetBranchLeaves(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/leaves - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/leaves - Access denied: branch_id=%d, user_id=%d",
				branchID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/leaves - Invalid status: branch_id=%d, status=%s", branchID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /branches/{id}/leaves - Failed to get leaves: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/leaves - Leaves retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Leaves))
	handlers.RespondJSON(w, http.StatusOK, result.Leaves)
}
