package get_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/bookings"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?customerId=&paymentStatus=&date=&search=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetBookingsRequest{}

	query := r.URL.Query()
	if v := query.Get("customerId"); v != "" {
		req.CustomerID = &v
	}
	if v := query.Get("paymentStatus"); v != "" {
		req.PaymentStatus = &v
	}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("search"); v != "" {
		req.Search = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Retrieved %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
