package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/slots/models"
	"github.com/m04kA/PicklePlay-BookingService/pkg/ptr"
)

// Service сервис админ-операций над слотами
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// SetAvailability переключает слот между available и unavailable.
// Занятый слот переключить нельзя: репозиторий меняет статус условно и
// сообщает о конфликте с параллельным бронированием.
func (s *Service) SetAvailability(ctx context.Context, slotID string, req *models.UpdateAvailabilityRequest) (*models.SlotResponse, error) {
	if slotID == "" {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if _, _, ok := domain.ParseSlotID(slotID); !ok {
		return nil, fmt.Errorf("%w: malformed slot id %q", ErrInvalidInput, slotID)
	}

	status, err := req.ToDomainStatus()
	if err != nil {
		s.logger.Warn("SetAvailability: invalid status=%s for slot=%s", req.Status, slotID)
		return nil, ErrInvalidStatus
	}

	if err := s.slotRepo.SetStatus(ctx, slotID, status); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("SetAvailability: slot=%s not found", slotID)
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotBooked):
			s.logger.Warn("SetAvailability: slot=%s is booked, status unchanged", slotID)
			return nil, ErrSlotBooked
		}
		s.logger.Error("SetAvailability: repository error for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		s.logger.Error("SetAvailability: failed to reload slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetAvailability: slot=%s status=%s", slotID, status)
	return models.FromDomainSlot(slot), nil
}

// LastSlotDate возвращает самую позднюю дату, на которую сгенерированы
// слоты. Пустое хранилище — не ошибка: админ-панель показывает null и
// предлагает первичную генерацию.
func (s *Service) LastSlotDate(ctx context.Context) (*models.LastDateResponse, error) {
	maxDate, err := s.slotRepo.GetMaxDate(ctx)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNoSlots) {
			return &models.LastDateResponse{LastDate: nil}, nil
		}
		s.logger.Error("LastSlotDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: LastSlotDate - repository error: %v", ErrInternal, err)
	}

	return &models.LastDateResponse{LastDate: ptr.Ptr(domain.FormatDate(maxDate))}, nil
}
