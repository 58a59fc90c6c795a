package get_available_dates

import (
	"context"
	"time"
)

type GetAvailableDatesUseCase interface {
	AvailableDates(ctx context.Context, from time.Time) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
