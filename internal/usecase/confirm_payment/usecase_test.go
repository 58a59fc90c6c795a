package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/booking"
)

// MockBookingRepository мок репозитория бронирований
type MockBookingRepository struct {
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Booking, error)
	ConfirmPaymentFunc func(ctx context.Context, id string, paymentID string) error
	DeleteFunc         func(ctx context.Context, id string) error

	confirmedID        string
	confirmedPaymentID string
	deletedID          string
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *MockBookingRepository) ConfirmPayment(ctx context.Context, id string, paymentID string) error {
	m.confirmedID = id
	m.confirmedPaymentID = paymentID
	if m.ConfirmPaymentFunc != nil {
		return m.ConfirmPaymentFunc(ctx, id, paymentID)
	}
	return nil
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockSlotRepository мок репозитория слотов
type MockSlotRepository struct {
	MarkBookedFunc func(ctx context.Context, slotIDs []string, bookingID string) (int64, error)

	markedSlotIDs []string
}

func (m *MockSlotRepository) MarkBooked(ctx context.Context, slotIDs []string, bookingID string) (int64, error) {
	m.markedSlotIDs = slotIDs
	if m.MarkBookedFunc != nil {
		return m.MarkBookedFunc(ctx, slotIDs, bookingID)
	}
	return int64(len(slotIDs)), nil
}

// MockPaymentVerifier мок проверки подписи платежа
type MockPaymentVerifier struct {
	VerifySignatureFunc func(orderID, paymentID, signature string) error
}

func (m *MockPaymentVerifier) VerifySignature(orderID, paymentID, signature string) error {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(orderID, paymentID, signature)
	}
	return nil
}

// MockMailer мок почтового клиента
type MockMailer struct {
	sent []*domain.Booking
}

func (m *MockMailer) SendBookingConfirmation(ctx context.Context, b *domain.Booking) error {
	m.sent = append(m.sent, b)
	return nil
}

// passTxManager исполняет функции без реальной транзакции
type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type testEnv struct {
	bookingRepo *MockBookingRepository
	slotRepo    *MockSlotRepository
	verifier    *MockPaymentVerifier
	mailer      *MockMailer
	uc          *UseCase
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		bookingRepo: &MockBookingRepository{},
		slotRepo:    &MockSlotRepository{},
		verifier:    &MockPaymentVerifier{},
		mailer:      &MockMailer{},
	}
	env.uc = NewUseCase(env.bookingRepo, env.slotRepo, env.verifier, env.mailer, passTxManager{}, noopLogger{})
	env.uc.timeProvider = &stubTimeProvider{now: now}
	return env
}

func pendingBooking(now time.Time) *domain.Booking {
	orderID := "order_abc"
	expiresAt := now.Add(10 * time.Minute)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	return &domain.Booking{
		ID:            "bk-1",
		CustomerID:    "user-1",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		Date:          date,
		Slots: []domain.BookingSlot{
			{SlotID: domain.SlotID(date, 9), Hour: 9, StartTime: "9:00", EndTime: "10:00", Price: 200},
			{SlotID: domain.SlotID(date, 10), Hour: 10, StartTime: "10:00", EndTime: "11:00", Price: 200},
		},
		TotalAmount:    400,
		PaymentMethod:  domain.PayOnline,
		PaymentStatus:  domain.PaymentPending,
		BookingStatus:  domain.BookingPending,
		PaymentOrderID: &orderID,
		ExpiresAt:      &expiresAt,
	}
}

func validConfirmRequest() Request {
	return Request{
		BookingID:  "bk-1",
		CustomerID: "user-1",
		OrderID:    "order_abc",
		PaymentID:  "pay_xyz",
		Signature:  "sig",
	}
}

func TestConfirm_BooksSlotsAndConfirms(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	pending := pendingBooking(now)
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		if env.bookingRepo.confirmedID != "" {
			paid := *pending
			paid.PaymentStatus = domain.PaymentPaid
			paid.BookingStatus = domain.BookingConfirmed
			paymentID := env.bookingRepo.confirmedPaymentID
			paid.PaymentID = &paymentID
			return &paid, nil
		}
		return pending, nil
	}

	resp, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, resp.Booking.PaymentStatus)
	assert.Equal(t, domain.BookingConfirmed, resp.Booking.BookingStatus)
	require.NotNil(t, resp.Booking.PaymentID)
	assert.Equal(t, "pay_xyz", *resp.Booking.PaymentID)

	// Слоты заняты ровно те, что в снапшоте бронирования
	assert.Equal(t, pending.SlotIDs(), env.slotRepo.markedSlotIDs)
	assert.Equal(t, "bk-1", env.bookingRepo.confirmedID)
	assert.Empty(t, env.bookingRepo.deletedID)

	require.Len(t, env.mailer.sent, 1)
}

func TestConfirm_DuplicateDeliveryIsNoOp(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	paid := pendingBooking(now)
	paid.PaymentStatus = domain.PaymentPaid
	paid.BookingStatus = domain.BookingConfirmed
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return paid, nil
	}

	resp, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, resp.Booking.PaymentStatus)

	// Повторная доставка ничего не трогает
	assert.Empty(t, env.slotRepo.markedSlotIDs)
	assert.Empty(t, env.bookingRepo.confirmedID)
	assert.Empty(t, env.mailer.sent)
}

func TestConfirm_InvalidSignature(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	pending := pendingBooking(now)
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pending, nil
	}
	env.verifier.VerifySignatureFunc = func(orderID, paymentID, signature string) error {
		return assert.AnError
	}

	_, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, env.slotRepo.markedSlotIDs)
}

func TestConfirm_ExpiredBookingDeleted(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	pending := pendingBooking(now)
	expiredAt := now.Add(-time.Minute)
	pending.ExpiresAt = &expiredAt
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pending, nil
	}

	_, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	assert.ErrorIs(t, err, ErrBookingExpired)
	assert.Equal(t, "bk-1", env.bookingRepo.deletedID)
	assert.Empty(t, env.slotRepo.markedSlotIDs)
}

func TestConfirm_SlotsTakenDuringPayment(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	pending := pendingBooking(now)
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pending, nil
	}
	// Занялась только одна строка из двух
	env.slotRepo.MarkBookedFunc = func(ctx context.Context, slotIDs []string, bookingID string) (int64, error) {
		return 1, nil
	}

	_, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	// Бронирование удалено в той же транзакции, платеж оператору на разбор
	assert.Equal(t, "bk-1", env.bookingRepo.deletedID)
	assert.Empty(t, env.bookingRepo.confirmedID)
	assert.Empty(t, env.mailer.sent)
}

func TestConfirm_AccessDenied(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pendingBooking(now), nil
	}

	req := validConfirmRequest()
	req.CustomerID = "user-2"
	_, err := env.uc.Confirm(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_OrderIDMismatch(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pendingBooking(now), nil
	}

	req := validConfirmRequest()
	req.OrderID = "order_other"
	_, err := env.uc.Confirm(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirm_BookingNotFound(t *testing.T) {
	env := newTestEnv(time.Now())

	_, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirm_VenueBookingRejected(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	venue := pendingBooking(now)
	venue.PaymentMethod = domain.PayAtVenue
	venue.BookingStatus = domain.BookingConfirmed
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return venue, nil
	}

	_, err := env.uc.Confirm(context.Background(), validConfirmRequest())

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancelPending_DeletesBooking(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pendingBooking(now), nil
	}

	err := env.uc.CancelPending(context.Background(), "bk-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "bk-1", env.bookingRepo.deletedID)
}

func TestCancelPending_OwnerOnly(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return pendingBooking(now), nil
	}

	err := env.uc.CancelPending(context.Background(), "bk-1", "user-2")

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, env.bookingRepo.deletedID)
}

func TestCancelPending_OnlyPendingPayment(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	confirmed := pendingBooking(now)
	confirmed.PaymentStatus = domain.PaymentPaid
	confirmed.BookingStatus = domain.BookingConfirmed
	env.bookingRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Booking, error) {
		return confirmed, nil
	}

	err := env.uc.CancelPending(context.Background(), "bk-1", "user-1")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, env.bookingRepo.deletedID)
}
