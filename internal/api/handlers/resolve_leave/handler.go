package resolve_leave

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/leaves"
)

const (
	msgInvalidLeaveID     = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgLeaveNotFound      = "заявка на отсутствие не найдена"
	msgForbidden          = "доступ запрещен"
	msgAlreadyResolved    = "заявка уже разобрана"
	msgInvalidStatus      = "статус должен быть approved или rejected"
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

// Handle PATCH /api/v1/leaves/{leaveId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем leaveId из URL
	vars := mux.Vars(r)
	leaveIDStr := vars["leaveId"]

	leaveID, err := strconv.ParseInt(leaveIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /leaves/{id}/status - Invalid leave ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /leaves/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req ResolveLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /leaves/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Разбираем заявку (сервис сам проверит права менеджера)
	result, err := h.service.Resolve(r.Context(), leaveID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrLeaveNotFound):
			h.logger.Warn("PATCH /leaves/{id}/status - Leave not found: leave_id=%d", leaveID)
			handlers.RespondNotFound(w, msgLeaveNotFound)

		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("PATCH /leaves/{id}/status - Access denied: leave_id=%d, user_id=%d",
				leaveID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaves.ErrAlreadyResolved):
			h.logger.Warn("PATCH /leaves/{id}/status - Already resolved: leave_id=%d", leaveID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("PATCH /leaves/{id}/status - Invalid status: leave_id=%d, status=%s",
				leaveID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /leaves/{id}/status - Failed to resolve leave: leave_id=%d, error=%v",
				leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /leaves/{id}/status - Leave resolved successfully: leave_id=%d, status=%s, user_id=%d",
		leaveID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
