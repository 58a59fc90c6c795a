package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/PicklePlay-BookingService/internal/integrations/razorpay"
	"github.com/m04kA/PicklePlay-BookingService/pkg/ptr"
)

// UseCase use case создания бронирования.
//
// Оплата на месте: бронирование и перевод слотов в booked выполняются в
// одной сериализуемой транзакции; расхождение числа обновленных строк с
// числом запрошенных слотов откатывает всё целиком.
//
// Online-оплата: создается заказ в шлюзе и pending-бронирование со сроком
// истечения; слоты не трогаются до подтверждения платежа.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	payments     PaymentClient
	mailer       Mailer
	txManager    TxManager
	leadTime     time.Duration
	pendingTTL   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	payments PaymentClient,
	mailer Mailer,
	txManager TxManager,
	leadTimeMinutes int,
	pendingTTLMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		payments:     payments,
		mailer:       mailer,
		txManager:    txManager,
		leadTime:     time.Duration(leadTimeMinutes) * time.Minute,
		pendingTTL:   time.Duration(pendingTTLMinutes) * time.Minute,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает бронирование слотов одной даты
func (uc *UseCase) Create(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := uc.checkNotPast(req, now); err != nil {
		return nil, err
	}

	// Контактный профиль — вспомогательные данные: его отказ не должен
	// ронять бронирование, снапшот имени и email лежит в самом бронировании
	if err := uc.customerRepo.Upsert(ctx, &domain.Customer{
		ID:    req.CustomerID,
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	}); err != nil {
		uc.logger.Warn("Create: failed to upsert customer %s: %v", req.CustomerID, err)
	}

	if req.PaymentMethod == domain.PayOnline {
		return uc.createOnline(ctx, req, now)
	}
	return uc.createVenue(ctx, req)
}

// createVenue бронирование с оплатой на месте: слоты занимаются сразу
func (uc *UseCase) createVenue(ctx context.Context, req Request) (*Response, error) {
	bookingID := uuid.NewString()
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slots, err := uc.loadAndVerify(ctx, req.SlotIDs)
		if err != nil {
			return err
		}

		b := uc.buildBooking(bookingID, req, slots)
		b.PaymentStatus = domain.PaymentPending
		b.BookingStatus = domain.BookingConfirmed

		created, err = uc.bookingRepo.Create(ctx, b)
		if err != nil {
			uc.logger.Error("Create: failed to insert booking %s: %v", bookingID, err)
			return uc.mapStoreError(err)
		}

		affected, err := uc.slotRepo.MarkBooked(ctx, req.SlotIDs, bookingID)
		if err != nil {
			uc.logger.Error("Create: failed to mark slots booked for %s: %v", bookingID, err)
			return uc.mapStoreError(err)
		}
		// Часть слотов увели между FOR UPDATE и обновлением быть не может,
		// но проверка на число строк — последний рубеж атомарности
		if affected != int64(len(req.SlotIDs)) {
			uc.logger.Warn("Create: slot conflict for %s: want %d, marked %d", bookingID, len(req.SlotIDs), affected)
			return fmt.Errorf("%w: %d of %d slots already taken", ErrSlotConflict, int64(len(req.SlotIDs))-affected, len(req.SlotIDs))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Create: booking %s created (venue), date=%s, slots=%d, total=%.0f",
		created.ID, domain.FormatDate(created.Date), len(created.Slots), created.TotalAmount)

	uc.sendConfirmation(ctx, created)

	return &Response{Booking: created}, nil
}

// createOnline бронирование с online-оплатой: слоты остаются свободными до
// подтверждения платежа, бронирование живет до expires_at
func (uc *UseCase) createOnline(ctx context.Context, req Request, now time.Time) (*Response, error) {
	slots, err := uc.loadAndVerify(ctx, req.SlotIDs)
	if err != nil {
		return nil, err
	}

	bookingID := uuid.NewString()
	b := uc.buildBooking(bookingID, req, slots)
	b.PaymentStatus = domain.PaymentPending
	b.BookingStatus = domain.BookingPending

	order, err := uc.payments.CreateOrder(ctx, b.TotalAmount, bookingID, map[string]string{
		"booking_id":  bookingID,
		"customer_id": req.CustomerID,
	})
	if err != nil {
		uc.logger.Error("Create: failed to create payment order for %s: %v", bookingID, err)
		return nil, uc.mapPaymentError(err)
	}

	expiresAt := now.Add(uc.pendingTTL)
	b.PaymentOrderID = ptr.Ptr(order.ID)
	b.ExpiresAt = ptr.Ptr(expiresAt)

	var created *domain.Booking
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		created, err = uc.bookingRepo.Create(ctx, b)
		if err != nil {
			uc.logger.Error("Create: failed to insert pending booking %s: %v", bookingID, err)
			return uc.mapStoreError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Create: booking %s created (online, pending), order=%s, expires_at=%s",
		created.ID, order.ID, expiresAt.Format(time.RFC3339))

	return &Response{
		Booking: created,
		Order: &PaymentOrder{
			OrderID:  order.ID,
			Amount:   order.Amount,
			Currency: order.Currency,
		},
	}, nil
}

// loadAndVerify читает слоты (внутри транзакции репозиторий сам добавляет
// FOR UPDATE) и проверяет, что все существуют и свободны
func (uc *UseCase) loadAndVerify(ctx context.Context, slotIDs []string) ([]*domain.Slot, error) {
	slots, err := uc.slotRepo.GetByIDs(ctx, slotIDs)
	if err != nil {
		uc.logger.Error("Create: failed to load slots: %v", err)
		return nil, uc.mapStoreError(err)
	}

	if len(slots) != len(slotIDs) {
		return nil, fmt.Errorf("%w: found %d of %d requested slots", ErrSlotNotFound, len(slots), len(slotIDs))
	}

	for _, s := range slots {
		if !s.IsBookable() {
			return nil, fmt.Errorf("%w: slot %s has status %s", ErrSlotConflict, s.ID, s.Status)
		}
	}

	return slots, nil
}

// buildBooking собирает бронирование со снапшотами слотов и суммой по
// ценам из хранилища (цены клиента не принимаются на веру)
func (uc *UseCase) buildBooking(bookingID string, req Request, slots []*domain.Slot) *domain.Booking {
	snapshots := make([]domain.BookingSlot, 0, len(slots))
	var total float64
	for _, s := range slots {
		snapshots = append(snapshots, domain.BookingSlot{
			SlotID:    s.ID,
			Hour:      s.Hour,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     s.Price,
		})
		total += s.Price
	}

	return &domain.Booking{
		ID:            bookingID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Date:          domain.DateOnly(req.Date),
		Slots:         snapshots,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
	}
}

// checkNotPast отклоняет слоты, начало которых ближе leadTime от текущего
// момента. Сравнение по инстантам, а не по строкам дат.
func (uc *UseCase) checkNotPast(req Request, now time.Time) error {
	cutoff := now.Add(uc.leadTime)
	for _, id := range req.SlotIDs {
		slotDate, hour, _ := domain.ParseSlotID(id)
		start := time.Date(slotDate.Year(), slotDate.Month(), slotDate.Day(), hour, 0, 0, 0, now.Location())
		if !start.After(cutoff) {
			return fmt.Errorf("%w: slot %s starts at %s", ErrSlotInPast, id, start.Format(time.RFC3339))
		}
	}
	return nil
}

// sendConfirmation отправляет письмо-подтверждение; отказ почты не влияет
// на результат бронирования
func (uc *UseCase) sendConfirmation(ctx context.Context, b *domain.Booking) {
	if err := uc.mailer.SendBookingConfirmation(ctx, b); err != nil {
		uc.logger.Warn("Create: failed to send confirmation for %s: %v", b.ID, err)
	}
}

// mapStoreError переводит ошибки репозиториев в ошибки usecase
func (uc *UseCase) mapStoreError(err error) error {
	if errors.Is(err, slotRepo.ErrExecQuery) || errors.Is(err, bookingRepo.ErrExecQuery) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// mapPaymentError переводит ошибки платёжного шлюза в ошибки usecase
func (uc *UseCase) mapPaymentError(err error) error {
	if errors.Is(err, razorpay.ErrUnavailable) || errors.Is(err, razorpay.ErrOrderCreation) {
		return fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
