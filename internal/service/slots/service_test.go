package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/slots/models"
)

// MockSlotRepository мок репозитория слотов
type MockSlotRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Slot, error)
	SetStatusFunc  func(ctx context.Context, id string, status domain.SlotStatus) error
	GetMaxDateFunc func(ctx context.Context) (time.Time, error)
}

func (m *MockSlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (m *MockSlotRepository) SetStatus(ctx context.Context, id string, status domain.SlotStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
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

func TestSetAvailability_Success(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	slotID := domain.SlotID(date, 9)

	var gotStatus domain.SlotStatus
	repo := &MockSlotRepository{
		SetStatusFunc: func(ctx context.Context, id string, status domain.SlotStatus) error {
			gotStatus = status
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Slot, error) {
			slot := domain.NewSlot(date, domain.TemplateEntry{Hour: 9, Price: 200})
			slot.Status = domain.SlotUnavailable
			return slot, nil
		},
	}
	service := NewService(repo, noopLogger{})

	resp, err := service.SetAvailability(context.Background(), slotID, &models.UpdateAvailabilityRequest{Status: "unavailable"})

	require.NoError(t, err)
	assert.Equal(t, domain.SlotUnavailable, gotStatus)
	assert.Equal(t, slotID, resp.ID)
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "2025-06-10", resp.Date)
}

func TestSetAvailability_BookedSlotRejected(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	repo := &MockSlotRepository{
		SetStatusFunc: func(ctx context.Context, id string, status domain.SlotStatus) error {
			return slotRepo.ErrSlotBooked
		},
	}
	service := NewService(repo, noopLogger{})

	_, err := service.SetAvailability(context.Background(), domain.SlotID(date, 9), &models.UpdateAvailabilityRequest{Status: "unavailable"})

	assert.ErrorIs(t, err, ErrSlotBooked)
}

func TestSetAvailability_SlotNotFound(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	repo := &MockSlotRepository{
		SetStatusFunc: func(ctx context.Context, id string, status domain.SlotStatus) error {
			return slotRepo.ErrSlotNotFound
		},
	}
	service := NewService(repo, noopLogger{})

	_, err := service.SetAvailability(context.Background(), domain.SlotID(date, 9), &models.UpdateAvailabilityRequest{Status: "available"})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSetAvailability_BookedStatusForbidden(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	service := NewService(&MockSlotRepository{}, noopLogger{})

	// Статус booked выставляет только транзакция бронирования
	_, err := service.SetAvailability(context.Background(), domain.SlotID(date, 9), &models.UpdateAvailabilityRequest{Status: "booked"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetAvailability_MalformedSlotID(t *testing.T) {
	service := NewService(&MockSlotRepository{}, noopLogger{})

	_, err := service.SetAvailability(context.Background(), "SLOT_2025-06-10_25", &models.UpdateAvailabilityRequest{Status: "available"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLastSlotDate_EmptyStore(t *testing.T) {
	service := NewService(&MockSlotRepository{}, noopLogger{})

	resp, err := service.LastSlotDate(context.Background())

	require.NoError(t, err)
	assert.Nil(t, resp.LastDate)
}

func TestLastSlotDate_Populated(t *testing.T) {
	repo := &MockSlotRepository{
		GetMaxDateFunc: func(ctx context.Context) (time.Time, error) {
			return time.Date(2025, 8, 9, 0, 0, 0, 0, time.Local), nil
		},
	}
	service := NewService(repo, noopLogger{})

	resp, err := service.LastSlotDate(context.Background())

	require.NoError(t, err)
	require.NotNil(t, resp.LastDate)
	assert.Equal(t, "2025-08-09", *resp.LastDate)
}
