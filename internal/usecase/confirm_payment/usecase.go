package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
)

// UseCase use case подтверждения online-платежа.
//
// Слоты pending-бронирования не занимались при его создании, поэтому
// подтверждение — это та же условная смена статусов, что и при оплате на
// месте: если слоты успели увести, бронирование удаляется, платеж остается
// на разборе оператору.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	verifier     PaymentVerifier
	mailer       Mailer
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	verifier PaymentVerifier,
	mailer Mailer,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		verifier:     verifier,
		mailer:       mailer,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Confirm проверяет подпись платежа и переводит pending-бронирование в
// подтвержденное, занимая его слоты
func (uc *UseCase) Confirm(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	b, err := uc.loadOwned(ctx, req.BookingID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	// Повторная доставка подтверждения — no-op
	if b.PaymentStatus == domain.PaymentPaid {
		uc.logger.Info("Confirm: booking %s already paid, ignoring duplicate confirmation", b.ID)
		return &Response{Booking: b}, nil
	}

	if !b.IsPendingPayment() {
		return nil, fmt.Errorf("%w: booking %s is not awaiting online payment", ErrInvalidInput, b.ID)
	}
	if b.PaymentOrderID == nil || *b.PaymentOrderID != req.OrderID {
		return nil, fmt.Errorf("%w: order id mismatch for booking %s", ErrInvalidInput, b.ID)
	}

	if err := uc.verifier.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		uc.logger.Warn("Confirm: signature verification failed for booking %s: %v", b.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if b.IsExpired(uc.timeProvider.Now()) {
		uc.logger.Warn("Confirm: booking %s expired before payment confirmation", b.ID)
		uc.deletePending(ctx, b.ID)
		return nil, fmt.Errorf("%w: booking %s", ErrBookingExpired, b.ID)
	}

	slotIDs := b.SlotIDs()
	conflict := false

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		affected, err := uc.slotRepo.MarkBooked(ctx, slotIDs, b.ID)
		if err != nil {
			uc.logger.Error("Confirm: failed to mark slots booked for %s: %v", b.ID, err)
			return uc.mapStoreError(err)
		}

		// Слоты увели, пока платеж был в полете: бронирование не спасти,
		// удаляем его в этой же транзакции
		if affected != int64(len(slotIDs)) {
			conflict = true
			if err := uc.bookingRepo.Delete(ctx, b.ID); err != nil {
				uc.logger.Error("Confirm: failed to delete conflicted booking %s: %v", b.ID, err)
				return uc.mapStoreError(err)
			}
			return nil
		}

		if err := uc.bookingRepo.ConfirmPayment(ctx, b.ID, req.PaymentID); err != nil {
			uc.logger.Error("Confirm: failed to confirm booking %s: %v", b.ID, err)
			return uc.mapStoreError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if conflict {
		uc.logger.Warn("Confirm: slots for booking %s were taken during payment, booking deleted", b.ID)
		return nil, fmt.Errorf("%w: booking %s", ErrSlotConflict, b.ID)
	}

	confirmed, err := uc.bookingRepo.GetByID(ctx, b.ID)
	if err != nil {
		uc.logger.Error("Confirm: failed to reload booking %s: %v", b.ID, err)
		return nil, uc.mapStoreError(err)
	}

	uc.logger.Info("Confirm: booking %s confirmed, payment_id=%s", confirmed.ID, req.PaymentID)

	if err := uc.mailer.SendBookingConfirmation(ctx, confirmed); err != nil {
		uc.logger.Warn("Confirm: failed to send confirmation for %s: %v", confirmed.ID, err)
	}

	return &Response{Booking: confirmed}, nil
}

// CancelPending отменяет неоплаченное online-бронирование по инициативе
// клиента (закрыл окно оплаты). Слоты не занимались, освобождать нечего.
func (uc *UseCase) CancelPending(ctx context.Context, bookingID, customerID string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if customerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	b, err := uc.loadOwned(ctx, bookingID, customerID)
	if err != nil {
		return err
	}

	if !b.IsPendingPayment() {
		return fmt.Errorf("%w: booking %s is not awaiting online payment", ErrInvalidInput, b.ID)
	}

	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		if err := uc.bookingRepo.Delete(ctx, b.ID); err != nil {
			return uc.mapStoreError(err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("CancelPending: failed to delete booking %s: %v", b.ID, err)
		return err
	}

	uc.logger.Info("CancelPending: booking %s cancelled by customer %s", b.ID, customerID)
	return nil
}

// loadOwned загружает бронирование и проверяет владельца
func (uc *UseCase) loadOwned(ctx context.Context, bookingID, customerID string) (*domain.Booking, error) {
	b, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
		}
		uc.logger.Error("loadOwned: failed to load booking %s: %v", bookingID, err)
		return nil, uc.mapStoreError(err)
	}

	if b.CustomerID != customerID {
		return nil, fmt.Errorf("%w: booking %s belongs to another customer", ErrAccessDenied, bookingID)
	}

	return b, nil
}

// deletePending удаляет истекшее pending-бронирование; ошибка удаления не
// скрывает исходную причину отказа
func (uc *UseCase) deletePending(ctx context.Context, bookingID string) {
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		return uc.bookingRepo.Delete(ctx, bookingID)
	})
	if err != nil {
		uc.logger.Error("deletePending: failed to delete booking %s: %v", bookingID, err)
	}
}

// mapStoreError переводит ошибки репозиториев в ошибки usecase
func (uc *UseCase) mapStoreError(err error) error {
	if errors.Is(err, slotRepo.ErrExecQuery) || errors.Is(err, bookingRepo.ErrExecQuery) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// validateRequest проверяет структурную корректность запроса
func validateRequest(req Request) error {
	switch {
	case req.BookingID == "":
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	case req.CustomerID == "":
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	case req.OrderID == "":
		return fmt.Errorf("%w: order id is required", ErrInvalidInput)
	case req.PaymentID == "":
		return fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	case req.Signature == "":
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}
	return nil
}
