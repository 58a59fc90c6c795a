package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
)

// UseCase use case генерации инвентаря слотов.
// Генерация идемпотентна по дню: день либо получает полный набор слотов
// из шаблона одним атомарным батчем, либо не трогается вовсе.
type UseCase struct {
	slotRepo     SlotRepository
	template     []domain.TemplateEntry
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, template []domain.TemplateEntry, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		template:     template,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// EnsureDay гарантирует наличие полного набора слотов на дату.
// Проверка существования идет по полю даты, а не по отдельным ключам:
// повторный запуск на заполненном дне — no-op с отчетом {0, N}.
func (uc *UseCase) EnsureDay(ctx context.Context, date time.Time) (*DayResult, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateStr := domain.FormatDate(date)

	existing, err := uc.slotRepo.CountByDate(ctx, date)
	if err != nil {
		uc.logger.Error("EnsureDay: failed to count slots for %s: %v", dateStr, err)
		return nil, mapStoreError(err)
	}

	if existing > 0 {
		uc.logger.Info("EnsureDay: %s already has %d slots, skipping", dateStr, existing)
		return &DayResult{Date: dateStr, Created: 0, Skipped: existing}, nil
	}

	slots := make([]*domain.Slot, 0, len(uc.template))
	for _, entry := range uc.template {
		slots = append(slots, domain.NewSlot(date, entry))
	}

	if err := uc.slotRepo.CreateBatch(ctx, slots); err != nil {
		uc.logger.Error("EnsureDay: failed to create slots for %s: %v", dateStr, err)
		return nil, mapStoreError(err)
	}

	uc.logger.Info("EnsureDay: created %d slots for %s", len(slots), dateStr)
	return &DayResult{Date: dateStr, Created: len(slots), Skipped: 0}, nil
}

// ExtendDays генерирует days дополнительных дней начиная со дня после
// самой поздней существующей даты. Если слотов нет вовсе, стартует с
// сегодняшнего дня.
func (uc *UseCase) ExtendDays(ctx context.Context, days int) (*Report, error) {
	if days < domain.MinGenerationDays || days > domain.MaxGenerationDays {
		return nil, fmt.Errorf("%w: days must be in [%d, %d]",
			ErrInvalidInput, domain.MinGenerationDays, domain.MaxGenerationDays)
	}

	start, err := uc.extendStartDate(ctx)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 0, days-1)
	return uc.generateRange(ctx, start, end)
}

// Backfill генерирует слоты для произвольного диапазона дат (первичное
// наполнение)
func (uc *UseCase) Backfill(ctx context.Context, from, to time.Time) (*Report, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if int(to.Sub(from).Hours()/24)+1 > domain.MaxGenerationDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxGenerationDays)
	}

	return uc.generateRange(ctx, from, to)
}

// EnsureHorizon поддерживает скользящий горизонт: гарантирует слоты на
// каждый день от сегодня до сегодня+horizonDays. Используется фоновой
// задачей.
func (uc *UseCase) EnsureHorizon(ctx context.Context, horizonDays int) (*Report, error) {
	if horizonDays < domain.MinGenerationDays || horizonDays > domain.MaxGenerationDays {
		return nil, fmt.Errorf("%w: horizon must be in [%d, %d]",
			ErrInvalidInput, domain.MinGenerationDays, domain.MaxGenerationDays)
	}

	today := domain.DateOnly(uc.timeProvider.Now())
	return uc.generateRange(ctx, today, today.AddDate(0, 0, horizonDays))
}

// extendStartDate находит день после самой поздней даты со слотами,
// с откатом на сегодня при пустом хранилище
func (uc *UseCase) extendStartDate(ctx context.Context) (time.Time, error) {
	maxDate, err := uc.slotRepo.GetMaxDate(ctx)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNoSlots) {
			today := domain.DateOnly(uc.timeProvider.Now())
			uc.logger.Info("ExtendDays: no slots exist, starting from today (%s)", domain.FormatDate(today))
			return today, nil
		}
		uc.logger.Error("ExtendDays: failed to get max slot date: %v", err)
		return time.Time{}, mapStoreError(err)
	}

	return maxDate.AddDate(0, 0, 1), nil
}

// generateRange прогоняет EnsureDay по диапазону дат.
// Ошибка на отдельном дне не прерывает прогон: день учитывается в
// FailedDays, остальные дни продолжают обрабатываться.
func (uc *UseCase) generateRange(ctx context.Context, from, to time.Time) (*Report, error) {
	report := &Report{
		StartDate: domain.FormatDate(from),
		EndDate:   domain.FormatDate(to),
	}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		report.Days++

		result, err := uc.EnsureDay(ctx, date)
		if err != nil {
			report.FailedDays++
			continue
		}

		report.Created += result.Created
		report.Skipped += result.Skipped
	}

	uc.logger.Info("generateRange: %s..%s days=%d created=%d skipped=%d failed=%d",
		report.StartDate, report.EndDate, report.Days, report.Created, report.Skipped, report.FailedDays)

	return report, nil
}

// mapStoreError переводит ошибки репозитория в ошибки usecase
func mapStoreError(err error) error {
	if errors.Is(err, slotRepo.ErrExecQuery) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
