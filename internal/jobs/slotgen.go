package jobs

import (
	"context"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/usecase/generate_slots"
)

// SlotGenerator интерфейс генератора инвентаря слотов
type SlotGenerator interface {
	EnsureHorizon(ctx context.Context, horizonDays int) (*generate_slots.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HorizonKeeper фоновая задача поддержания скользящего горизонта слотов.
// Генератор идемпотентен, поэтому период запуска не критичен: каждый
// проход догенерирует только недостающие дни.
type HorizonKeeper struct {
	generator   SlotGenerator
	horizonDays int
	interval    time.Duration
	logger      Logger
}

// NewHorizonKeeper создает новую задачу поддержания горизонта
func NewHorizonKeeper(generator SlotGenerator, horizonDays int, interval time.Duration, logger Logger) *HorizonKeeper {
	return &HorizonKeeper{
		generator:   generator,
		horizonDays: horizonDays,
		interval:    interval,
		logger:      logger,
	}
}

// Run крутит задачу до отмены контекста. Первый проход выполняется сразу,
// чтобы свежеразвернутый сервис не ждал первого тика.
func (k *HorizonKeeper) Run(ctx context.Context) {
	k.logger.Info("HorizonKeeper: started, horizon=%d days, interval=%s", k.horizonDays, k.interval)

	k.ensure(ctx)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			k.logger.Info("HorizonKeeper: stopped")
			return
		case <-ticker.C:
			k.ensure(ctx)
		}
	}
}

func (k *HorizonKeeper) ensure(ctx context.Context) {
	report, err := k.generator.EnsureHorizon(ctx, k.horizonDays)
	if err != nil {
		k.logger.Error("HorizonKeeper: generation failed: %v", err)
		return
	}

	if report.Created > 0 || report.FailedDays > 0 {
		k.logger.Info("HorizonKeeper: %s..%s created=%d skipped=%d failed=%d",
			report.StartDate, report.EndDate, report.Created, report.Skipped, report.FailedDays)
	}
}
