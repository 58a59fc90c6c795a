package get_last_slot_date

import (
	"context"

	"github.com/m04kA/PicklePlay-BookingService/internal/service/slots/models"
)

type SlotService interface {
	LastSlotDate(ctx context.Context) (*models.LastDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
