package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	generateSlots "github.com/m04kA/PicklePlay-BookingService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDaysOrRange        = "укажите days либо пару from/to"
	msgStoreUnavailable   = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		report *generateSlots.Report
		err    error
	)

	switch {
	case req.Days != nil:
		report, err = h.useCase.ExtendDays(r.Context(), *req.Days)

	case req.From != nil && req.To != nil:
		fromDate, parseErr := domain.ParseDate(*req.From)
		if parseErr != nil {
			h.logger.Warn("POST /admin/slots/generate - Invalid from %q: %v", *req.From, parseErr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		toDate, parseErr := domain.ParseDate(*req.To)
		if parseErr != nil {
			h.logger.Warn("POST /admin/slots/generate - Invalid to %q: %v", *req.To, parseErr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		report, err = h.useCase.Backfill(r.Context(), fromDate, toDate)

	default:
		h.logger.Warn("POST /admin/slots/generate - Neither days nor from/to provided")
		handlers.RespondBadRequest(w, msgDaysOrRange)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, generateSlots.ErrStoreUnavailable):
			h.logger.Error("POST /admin/slots/generate - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /admin/slots/generate - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/generate - Generated: %s..%s created=%d skipped=%d failed=%d",
		report.StartDate, report.EndDate, report.Created, report.Skipped, report.FailedDays)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseReport(report))
}
