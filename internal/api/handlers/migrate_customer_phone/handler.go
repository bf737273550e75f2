package migrate_customer_phone

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/customers"
	"github.com/m04kA/SMC-BarberService/internal/service/customers/models"
)

const (
	msgInvalidCustomerID  = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCustomerNotFound   = "клиент не найден"
	msgPhoneTaken         = "номер телефона уже используется другим клиентом"
	msgInvalidPhone       = "некорректный номер телефона"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers/{customerId}/migrate-phone
// Меняет номер клиента и обновляет снапшоты телефона в его бронированиях
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем customerId из URL
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /customers/{id}/migrate-phone - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Декодируем body
	var req models.MigratePhoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers/{id}/migrate-phone - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Мигрируем номер (смена номера и снапшоты бронирований в одной транзакции)
	result, err := h.service.MigratePhone(r.Context(), customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrCustomerNotFound):
			h.logger.Warn("POST /customers/{id}/migrate-phone - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, customers.ErrPhoneTaken):
			h.logger.Warn("POST /customers/{id}/migrate-phone - Phone taken: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgPhoneTaken)

		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("POST /customers/{id}/migrate-phone - Invalid phone: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		default:
			h.logger.Error("POST /customers/{id}/migrate-phone - Failed to migrate phone: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers/{id}/migrate-phone - Phone migrated successfully: customer_id=%d, bookings_updated=%d",
		customerID, result.BookingsUpdated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
