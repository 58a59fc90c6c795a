package slots

import (
	"context"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	SetStatus(ctx context.Context, id string, status domain.SlotStatus) error
	GetMaxDate(ctx context.Context) (time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
