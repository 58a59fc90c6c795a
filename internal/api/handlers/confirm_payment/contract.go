package confirm_payment

import (
	"context"

	confirmPayment "github.com/m04kA/PicklePlay-BookingService/internal/usecase/confirm_payment"
)

type ConfirmPaymentUseCase interface {
	Confirm(ctx context.Context, req confirmPayment.Request) (*confirmPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
