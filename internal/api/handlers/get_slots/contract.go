package get_slots

import (
	"context"
	"time"

	getSlots "github.com/m04kA/PicklePlay-BookingService/internal/usecase/get_slots"
)

type GetSlotsUseCase interface {
	ListDay(ctx context.Context, date time.Time) (*getSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
