package update_payment_status

import (
	"context"

	"github.com/m04kA/PicklePlay-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	SetPaymentStatus(ctx context.Context, id string, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
