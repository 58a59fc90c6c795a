package create_booking

import (
	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	bookingModels "github.com/m04kA/PicklePlay-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/PicklePlay-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	Date          string   `json:"date"` // "2025-10-15"
	SlotIDs       []string `json:"slotIds"`
	PaymentMethod string   `json:"paymentMethod"` // "venue" | "online"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID string) (createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return createBooking.Request{}, err
	}

	return createBooking.Request{
		CustomerID:    customerID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          date,
		SlotIDs:       r.SlotIDs,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}, nil
}

// OrderResponse реквизиты заказа платёжного шлюза
type OrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"` // в пайсах
	Currency string `json:"currency"`
}

// CreateBookingResponse ответ на создание бронирования.
// Order присутствует только для online-оплаты.
type CreateBookingResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
	Order   *OrderResponse                 `json:"order,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
	}

	if resp.Order != nil {
		out.Order = &OrderResponse{
			OrderID:  resp.Order.OrderID,
			Amount:   resp.Order.Amount,
			Currency: resp.Order.Currency,
		}
	}

	return out
}
