package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, id string, paymentID string) error
	Delete(ctx context.Context, id string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	MarkBooked(ctx context.Context, slotIDs []string, bookingID string) (int64, error)
}

// PaymentVerifier интерфейс проверки подписи платежа
type PaymentVerifier interface {
	VerifySignature(orderID, paymentID, signature string) error
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
