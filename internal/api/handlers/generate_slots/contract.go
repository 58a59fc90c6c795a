package generate_slots

import (
	"context"
	"time"

	generateSlots "github.com/m04kA/PicklePlay-BookingService/internal/usecase/generate_slots"
)

type GenerateSlotsUseCase interface {
	ExtendDays(ctx context.Context, days int) (*generateSlots.Report, error)
	Backfill(ctx context.Context, from, to time.Time) (*generateSlots.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
