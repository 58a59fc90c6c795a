package create_booking

import (
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// Request запрос на создание бронирования
type Request struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Date          time.Time
	SlotIDs       []string
	PaymentMethod domain.PaymentMethod
}

// PaymentOrder реквизиты заказа платёжного шлюза для продолжения оплаты
// на клиенте
type PaymentOrder struct {
	OrderID  string
	Amount   int64 // в пайсах
	Currency string
}

// Response результат создания бронирования.
// Order заполнен только для online-оплаты.
type Response struct {
	Booking *domain.Booking
	Order   *PaymentOrder
}
