package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	"github.com/m04kA/PicklePlay-BookingService/internal/integrations/razorpay"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error)
	MarkBooked(ctx context.Context, slotIDs []string, bookingID string) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, c *domain.Customer) error
}

// PaymentClient интерфейс платёжного шлюза
type PaymentClient interface {
	CreateOrder(ctx context.Context, amountINR float64, receipt string, notes map[string]string) (*razorpay.Order, error)
}

// Mailer интерфейс отправки писем-подтверждений
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, b *domain.Booking) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
