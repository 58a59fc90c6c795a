package confirm_payment

import "github.com/m04kA/PicklePlay-BookingService/internal/domain"

// Request запрос на подтверждение online-платежа
type Request struct {
	BookingID  string
	CustomerID string
	OrderID    string
	PaymentID  string
	Signature  string
}

// Response подтвержденное бронирование
type Response struct {
	Booking *domain.Booking
}
