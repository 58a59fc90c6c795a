package confirm_payment

import (
	bookingModels "github.com/m04kA/PicklePlay-BookingService/internal/service/bookings/models"
	confirmPayment "github.com/m04kA/PicklePlay-BookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest запрос на подтверждение online-платежа
type ConfirmPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// ConfirmPaymentResponse подтвержденное бронирование
type ConfirmPaymentResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
	}
}
