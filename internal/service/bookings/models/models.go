package models

import (
	"errors"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе оплаты
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Request модели

// GetBookingsRequest запрос на получение бронирований для админ-панели
type GetBookingsRequest struct {
	CustomerID    *string `json:"customerId,omitempty"`    // Фильтр по клиенту (опционально)
	PaymentStatus *string `json:"paymentStatus,omitempty"` // Фильтр по статусу оплаты (опционально)
	Date          *string `json:"date,omitempty"`          // Фильтр по дате YYYY-MM-DD (опционально)
	Search        *string `json:"search,omitempty"`        // Подстрока в имени/email (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID: r.CustomerID,
		Search:     r.Search,
	}

	if r.PaymentStatus != nil {
		status, err := ToDomainPaymentStatus(*r.PaymentStatus)
		if err != nil {
			return filter, err
		}
		filter.PaymentStatus = &status
	}

	if r.Date != nil && *r.Date != "" {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}

// UpdatePaymentStatusRequest запрос на смену статуса оплаты бронирования
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Response модели

// BookingSlotResponse снапшот одного слота бронирования
type BookingSlotResponse struct {
	SlotID    string  `json:"slotId"`
	Hour      int     `json:"hour"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string                `json:"id"`
	CustomerID    string                `json:"customerId"`
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail"`
	BookingDate   string                `json:"bookingDate"` // "2025-10-15"
	Slots         []BookingSlotResponse `json:"slots"`
	TotalAmount   float64               `json:"totalAmount"`
	PaymentMethod string                `json:"paymentMethod"`
	PaymentStatus string                `json:"paymentStatus"`
	BookingStatus string                `json:"bookingStatus"`

	PaymentOrderID *string `json:"paymentOrderId,omitempty"`
	PaymentID      *string `json:"paymentId,omitempty"`
	ExpiresAt      *string `json:"expiresAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	slots := make([]BookingSlotResponse, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = BookingSlotResponse{
			SlotID:    s.SlotID,
			Hour:      s.Hour,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     s.Price,
		}
	}

	resp := &BookingResponse{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		BookingDate:    domain.FormatDate(b.Date),
		Slots:          slots,
		TotalAmount:    b.TotalAmount,
		PaymentMethod:  string(b.PaymentMethod),
		PaymentStatus:  string(b.PaymentStatus),
		BookingStatus:  string(b.BookingStatus),
		PaymentOrderID: b.PaymentOrderID,
		PaymentID:      b.PaymentID,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	// Конвертируем ExpiresAt в строку ISO 8601
	if b.ExpiresAt != nil {
		expiresStr := b.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expiresStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !domain.ValidPaymentStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
