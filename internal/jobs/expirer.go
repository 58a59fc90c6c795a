package jobs

import (
	"context"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListExpiredPending(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// PendingExpirer фоновая задача очистки истекших неоплаченных
// online-бронирований. Их слоты в booked не переводились, поэтому
// удаление записи — вся работа.
type PendingExpirer struct {
	bookingRepo BookingRepository
	txManager   TxManager
	interval    time.Duration
	logger      Logger
}

// NewPendingExpirer создает новую задачу очистки
func NewPendingExpirer(bookingRepo BookingRepository, txManager TxManager, interval time.Duration, logger Logger) *PendingExpirer {
	return &PendingExpirer{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		interval:    interval,
		logger:      logger,
	}
}

// Run крутит задачу до отмены контекста
func (e *PendingExpirer) Run(ctx context.Context) {
	e.logger.Info("PendingExpirer: started, interval=%s", e.interval)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("PendingExpirer: stopped")
			return
		case <-ticker.C:
			e.sweep(ctx)
		}
	}
}

// sweep удаляет все бронирования, чей срок оплаты истек к текущему моменту.
// Ошибка на одном бронировании не прерывает проход.
func (e *PendingExpirer) sweep(ctx context.Context) {
	expired, err := e.bookingRepo.ListExpiredPending(ctx, time.Now())
	if err != nil {
		e.logger.Error("PendingExpirer: failed to list expired bookings: %v", err)
		return
	}

	for _, b := range expired {
		err := e.txManager.Do(ctx, func(ctx context.Context) error {
			return e.bookingRepo.Delete(ctx, b.ID)
		})
		if err != nil {
			e.logger.Error("PendingExpirer: failed to delete booking %s: %v", b.ID, err)
			continue
		}
		e.logger.Info("PendingExpirer: expired booking %s removed (order=%v)", b.ID, b.PaymentOrderID)
	}
}
