package toggle_slot

import (
	"context"

	"github.com/m04kA/PicklePlay-BookingService/internal/service/slots/models"
)

type SlotService interface {
	SetAvailability(ctx context.Context, slotID string, req *models.UpdateAvailabilityRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
