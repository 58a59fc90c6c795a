package models

import (
	"errors"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном целевом статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// UpdateAvailabilityRequest запрос на смену доступности слота
type UpdateAvailabilityRequest struct {
	Status string `json:"status"` // "available" | "unavailable"
}

// ToDomainStatus конвертирует строку в domain.SlotStatus с валидацией.
// Перевод в booked руками запрещен: статус booked выставляет только
// транзакция бронирования.
func (r *UpdateAvailabilityRequest) ToDomainStatus() (domain.SlotStatus, error) {
	s := domain.SlotStatus(r.Status)
	if s != domain.SlotAvailable && s != domain.SlotUnavailable {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"` // "2025-10-15"
	Hour      int     `json:"hour"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	BookingID *string `json:"bookingId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// LastDateResponse ответ с последней датой, на которую сгенерированы слоты
type LastDateResponse struct {
	LastDate *string `json:"lastDate"` // null, если слотов нет вовсе
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		Date:      domain.FormatDate(s.Date),
		Hour:      s.Hour,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Price:     s.Price,
		Status:    string(s.Status),
		BookingID: s.BookingID,
		CreatedAt: s.CreatedAt,
	}
}
