package create_booking

import (
	"fmt"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// validateRequest проверяет структурную корректность запроса.
// Временные проверки (прошедшие слоты) и проверки доступности делаются
// в usecase: им нужны текущее время и состояние хранилища.
func validateRequest(req Request) error {
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.SlotIDs) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(req.SlotIDs) > domain.SlotsPerDay {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.SlotsPerDay)
	}

	seen := make(map[string]struct{}, len(req.SlotIDs))
	for _, id := range req.SlotIDs {
		slotDate, _, ok := domain.ParseSlotID(id)
		if !ok {
			return fmt.Errorf("%w: malformed slot id %q", ErrInvalidInput, id)
		}
		if !domain.SameDay(slotDate, req.Date) {
			return fmt.Errorf("%w: slot %q does not belong to date %s", ErrInvalidInput, id, domain.FormatDate(req.Date))
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate slot id %q", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
