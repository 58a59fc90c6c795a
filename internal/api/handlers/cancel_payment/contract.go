package cancel_payment

import "context"

type CancelPaymentUseCase interface {
	CancelPending(ctx context.Context, bookingID, customerID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
