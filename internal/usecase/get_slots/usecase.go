package get_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// UseCase use case чтения инвентаря слотов
type UseCase struct {
	slotRepo     SlotRepository
	leadTime     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// leadTimeMinutes — буфер бронирования: слот считается прошедшим не в момент
// начала, а за leadTime до него.
func NewUseCase(slotRepo SlotRepository, leadTimeMinutes int, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		leadTime:     time.Duration(leadTimeMinutes) * time.Minute,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListDay возвращает все слоты на дату, упорядоченные по часу, с аннотацией
// IsPast. Отказ хранилища деградирует до пустого списка: витрина календаря
// должна рисоваться даже при недоступной базе.
func (uc *UseCase) ListDay(ctx context.Context, date time.Time) (*Response, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateStr := domain.FormatDate(date)

	slots, err := uc.slotRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("ListDay: failed to load slots for %s: %v", dateStr, err)
		return &Response{Date: dateStr, Slots: []Slot{}}, nil
	}

	now := uc.timeProvider.Now()

	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{
			ID:        s.ID,
			Hour:      s.Hour,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     s.Price,
			Status:    string(s.Status),
			IsPast:    uc.isPast(s, now),
		})
	}

	return &Response{Date: dateStr, Slots: out}, nil
}

// AvailableDates возвращает даты начиная с from, на которые есть хотя бы один
// свободный слот. При отказе хранилища — пустой список.
func (uc *UseCase) AvailableDates(ctx context.Context, from time.Time) ([]string, error) {
	if from.IsZero() {
		from = uc.timeProvider.Now()
	}

	dates, err := uc.slotRepo.AvailableDates(ctx, from)
	if err != nil {
		uc.logger.Error("AvailableDates: failed to load dates from %s: %v", domain.FormatDate(from), err)
		return []string{}, nil
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.FormatDate(d))
	}

	return out, nil
}

// isPast сравнивает момент начала слота с текущим моментом плюс буфер.
// Сравнение идет по инстантам в локальной зоне сервиса, а не по строкам дат:
// так полночь не ломает границу "сегодня/завтра".
func (uc *UseCase) isPast(s *domain.Slot, now time.Time) bool {
	return !s.Start(now.Location()).After(now.Add(uc.leadTime))
}
