package mailer

import (
	"context"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// Noop заглушка почтового клиента для конфигураций с выключенной почтой
type Noop struct{}

// SendBookingConfirmation ничего не делает
func (Noop) SendBookingConfirmation(ctx context.Context, b *domain.Booking) error {
	return nil
}
