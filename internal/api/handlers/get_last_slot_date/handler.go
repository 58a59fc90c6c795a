package get_last_slot_date

import (
	"net/http"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/admin/slots/last-date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LastSlotDate(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/slots/last-date - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
