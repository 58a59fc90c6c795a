package get_available_dates

import (
	"net/http"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

const (
	msgInvalidFrom = "некорректный формат параметра from, ожидается YYYY-MM-DD"
)

// AvailableDatesResponse ответ со списком дат, на которые есть свободные слоты
type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available-dates?from=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var from time.Time

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := domain.ParseDate(fromStr)
		if err != nil {
			h.logger.Warn("GET /slots/available-dates - Invalid from %q: %v", fromStr, err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	dates, err := h.useCase.AvailableDates(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /slots/available-dates - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailableDatesResponse{Dates: dates})
}
