package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
	"github.com/m04kA/PicklePlay-BookingService/internal/api/middleware"
	confirmPayment "github.com/m04kA/PicklePlay-BookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidSignature   = "неверная подпись платежа"
	msgExpired            = "срок оплаты бронирования истек"
	msgSlotConflict       = "слоты были заняты, пока платеж обрабатывался"
	msgStoreUnavailable   = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Confirm(r.Context(), confirmPayment.Request{
		BookingID:  bookingID,
		CustomerID: customerID,
		OrderID:    req.OrderID,
		PaymentID:  req.PaymentID,
		Signature:  req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid input: booking=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Not found: booking=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Access denied: booking=%s, customer=%s", bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrInvalidSignature):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid signature: booking=%s", bookingID)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, confirmPayment.ErrBookingExpired):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Expired: booking=%s", bookingID)
			handlers.RespondError(w, http.StatusGone, msgExpired)

		case errors.Is(err, confirmPayment.ErrSlotConflict):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Slot conflict: booking=%s", bookingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, confirmPayment.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/confirm-payment - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/confirm-payment - Failed: booking=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm-payment - Payment confirmed: booking=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
