package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/slots"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidStatus      = "некорректный статус, ожидается available или unavailable"
	msgNotFound           = "слот не найден"
	msgSlotBooked         = "слот забронирован, статус изменить нельзя"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/slots/{slotId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req models.UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.SetAvailability(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/slots/{id}/availability - Invalid slot id: %s", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, slots.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/slots/{id}/availability - Invalid status: %s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/slots/{id}/availability - Not found: slot=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotBooked):
			h.logger.Warn("PATCH /admin/slots/{id}/availability - Slot booked: slot=%s", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		default:
			h.logger.Error("PATCH /admin/slots/{id}/availability - Failed: slot=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/slots/{id}/availability - Updated: slot=%s, status=%s", slotID, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
