package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
)

// MockSlotRepository мок репозитория слотов
type MockSlotRepository struct {
	CountByDateFunc func(ctx context.Context, date time.Time) (int, error)
	CreateBatchFunc func(ctx context.Context, slots []*domain.Slot) error
	GetMaxDateFunc  func(ctx context.Context) (time.Time, error)
}

func (m *MockSlotRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	if m.CountByDateFunc != nil {
		return m.CountByDateFunc(ctx, date)
	}
	return 0, nil
}

func (m *MockSlotRepository) CreateBatch(ctx context.Context, slots []*domain.Slot) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, slots)
	}
	return nil
}

func (m *MockSlotRepository) GetMaxDate(ctx context.Context) (time.Time, error) {
	if m.GetMaxDateFunc != nil {
		return m.GetMaxDateFunc(ctx)
	}
	return time.Time{}, slotRepo.ErrNoSlots
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

// memorySlotStore хранилище слотов в памяти для сценарных тестов
type memorySlotStore struct {
	slots map[string]*domain.Slot
}

func newMemorySlotStore() *memorySlotStore {
	return &memorySlotStore{slots: make(map[string]*domain.Slot)}
}

func (s *memorySlotStore) repo() *MockSlotRepository {
	return &MockSlotRepository{
		CountByDateFunc: func(ctx context.Context, date time.Time) (int, error) {
			count := 0
			for _, slot := range s.slots {
				if domain.SameDay(slot.Date, date) {
					count++
				}
			}
			return count, nil
		},
		CreateBatchFunc: func(ctx context.Context, slots []*domain.Slot) error {
			for _, slot := range slots {
				s.slots[slot.ID] = slot
			}
			return nil
		},
		GetMaxDateFunc: func(ctx context.Context) (time.Time, error) {
			var max time.Time
			for _, slot := range s.slots {
				if slot.Date.After(max) {
					max = slot.Date
				}
			}
			if max.IsZero() {
				return time.Time{}, slotRepo.ErrNoSlots
			}
			return max, nil
		},
	}
}

func newTestUseCase(repo SlotRepository, now time.Time) *UseCase {
	uc := NewUseCase(repo, domain.DayTemplate(200), noopLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

func TestEnsureDay_CreatesFullDay(t *testing.T) {
	store := newMemorySlotStore()
	uc := newTestUseCase(store.repo(), time.Now())
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	result, err := uc.EnsureDay(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotsPerDay, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Len(t, store.slots, domain.SlotsPerDay)
	assert.Contains(t, store.slots, "SLOT_2025-06-10_8")
	assert.Contains(t, store.slots, "SLOT_2025-06-10_20")
}

func TestEnsureDay_Idempotent(t *testing.T) {
	store := newMemorySlotStore()
	uc := newTestUseCase(store.repo(), time.Now())
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	_, err := uc.EnsureDay(context.Background(), date)
	require.NoError(t, err)

	// Повторный запуск дня не создает дубликатов
	result, err := uc.EnsureDay(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, domain.SlotsPerDay, result.Skipped)
	assert.Len(t, store.slots, domain.SlotsPerDay)
}

func TestEnsureDay_StoreUnavailable(t *testing.T) {
	repo := &MockSlotRepository{
		CountByDateFunc: func(ctx context.Context, date time.Time) (int, error) {
			return 0, nil
		},
		CreateBatchFunc: func(ctx context.Context, slots []*domain.Slot) error {
			return slotRepo.ErrExecQuery
		},
	}
	uc := newTestUseCase(repo, time.Now())

	_, err := uc.EnsureDay(context.Background(), time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local))

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExtendDays_FromMaxDate(t *testing.T) {
	store := newMemorySlotStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	uc := newTestUseCase(store.repo(), now)

	// Наполняем хранилище до 2025-06-10
	_, err := uc.EnsureDay(context.Background(), time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	report, err := uc.ExtendDays(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "2025-06-11", report.StartDate)
	assert.Equal(t, "2025-06-13", report.EndDate)
	assert.Equal(t, 3*domain.SlotsPerDay, report.Created)
	assert.Equal(t, 0, report.FailedDays)
}

func TestExtendDays_EmptyStoreFallsBackToToday(t *testing.T) {
	store := newMemorySlotStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	uc := newTestUseCase(store.repo(), now)

	report, err := uc.ExtendDays(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", report.StartDate)
	assert.Equal(t, "2025-06-02", report.EndDate)
	assert.Equal(t, 2*domain.SlotsPerDay, report.Created)
}

func TestExtendDays_InvalidRange(t *testing.T) {
	uc := newTestUseCase(newMemorySlotStore().repo(), time.Now())

	_, err := uc.ExtendDays(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.ExtendDays(context.Background(), domain.MaxGenerationDays+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBackfill_Range(t *testing.T) {
	store := newMemorySlotStore()
	uc := newTestUseCase(store.repo(), time.Now())

	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local)

	report, err := uc.Backfill(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Days)
	assert.Equal(t, 3*domain.SlotsPerDay, report.Created)
}

func TestBackfill_ReversedRange(t *testing.T) {
	uc := newTestUseCase(newMemorySlotStore().repo(), time.Now())

	from := time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	_, err := uc.Backfill(context.Background(), from, to)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateRange_FailedDayDoesNotAbort(t *testing.T) {
	failDate := "2025-06-11"
	store := newMemorySlotStore()
	repo := store.repo()
	inner := repo.CreateBatchFunc
	repo.CreateBatchFunc = func(ctx context.Context, slots []*domain.Slot) error {
		if domain.FormatDate(slots[0].Date) == failDate {
			return slotRepo.ErrExecQuery
		}
		return inner(ctx, slots)
	}
	uc := newTestUseCase(repo, time.Now())

	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local)

	report, err := uc.Backfill(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Days)
	assert.Equal(t, 1, report.FailedDays)
	assert.Equal(t, 2*domain.SlotsPerDay, report.Created)
}

func TestEnsureHorizon_CoversTodayThroughHorizon(t *testing.T) {
	store := newMemorySlotStore()
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)
	uc := newTestUseCase(store.repo(), now)

	report, err := uc.EnsureHorizon(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", report.StartDate)
	assert.Equal(t, "2025-06-06", report.EndDate)
	assert.Equal(t, 6, report.Days)
}
