package cancel_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
	"github.com/m04kA/PicklePlay-BookingService/internal/api/middleware"
	confirmPayment "github.com/m04kA/PicklePlay-BookingService/internal/usecase/confirm_payment"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgNotPending       = "бронирование не ожидает оплаты"
	msgStoreUnavailable = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase CancelPaymentUseCase
	logger  Logger
}

func NewHandler(useCase CancelPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel-payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.useCase.CancelPending(r.Context(), bookingID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel-payment - Not pending: booking=%s", bookingID)
			handlers.RespondBadRequest(w, msgNotPending)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel-payment - Not found: booking=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancel-payment - Access denied: booking=%s, customer=%s", bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/cancel-payment - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/cancel-payment - Failed: booking=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel-payment - Pending booking cancelled: booking=%s", bookingID)
	handlers.RespondNoContent(w)
}
