package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	"github.com/m04kA/PicklePlay-BookingService/internal/integrations/razorpay"
)

// MockSlotRepository мок репозитория слотов
type MockSlotRepository struct {
	GetByIDsFunc   func(ctx context.Context, ids []string) ([]*domain.Slot, error)
	MarkBookedFunc func(ctx context.Context, slotIDs []string, bookingID string) (int64, error)

	markedSlotIDs []string
	markedBooking string
}

func (m *MockSlotRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return []*domain.Slot{}, nil
}

func (m *MockSlotRepository) MarkBooked(ctx context.Context, slotIDs []string, bookingID string) (int64, error) {
	m.markedSlotIDs = slotIDs
	m.markedBooking = bookingID
	if m.MarkBookedFunc != nil {
		return m.MarkBookedFunc(ctx, slotIDs, bookingID)
	}
	return int64(len(slotIDs)), nil
}

// MockBookingRepository мок репозитория бронирований
type MockBookingRepository struct {
	CreateFunc func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)

	created *domain.Booking
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.created = b
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	return b, nil
}

// MockCustomerRepository мок репозитория клиентов
type MockCustomerRepository struct {
	UpsertFunc func(ctx context.Context, c *domain.Customer) error

	upserted *domain.Customer
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, c *domain.Customer) error {
	m.upserted = c
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, c)
	}
	return nil
}

// MockPaymentClient мок платёжного шлюза
type MockPaymentClient struct {
	CreateOrderFunc func(ctx context.Context, amountINR float64, receipt string, notes map[string]string) (*razorpay.Order, error)

	orderAmount  float64
	orderReceipt string
}

func (m *MockPaymentClient) CreateOrder(ctx context.Context, amountINR float64, receipt string, notes map[string]string) (*razorpay.Order, error) {
	m.orderAmount = amountINR
	m.orderReceipt = receipt
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountINR, receipt, notes)
	}
	return &razorpay.Order{ID: "order_test", Amount: int64(amountINR * 100), Currency: "INR"}, nil
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
	slotRepo     *MockSlotRepository
	bookingRepo  *MockBookingRepository
	customerRepo *MockCustomerRepository
	payments     *MockPaymentClient
	mailer       *MockMailer
	uc           *UseCase
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		slotRepo:     &MockSlotRepository{},
		bookingRepo:  &MockBookingRepository{},
		customerRepo: &MockCustomerRepository{},
		payments:     &MockPaymentClient{},
		mailer:       &MockMailer{},
	}
	env.uc = NewUseCase(
		env.slotRepo,
		env.bookingRepo,
		env.customerRepo,
		env.payments,
		env.mailer,
		passTxManager{},
		60, // lead time, minutes
		15, // pending TTL, minutes
		noopLogger{},
	)
	env.uc.timeProvider = &stubTimeProvider{now: now}
	return env
}

func availableSlots(date time.Time, hours ...int) []*domain.Slot {
	slots := make([]*domain.Slot, 0, len(hours))
	for _, h := range hours {
		slots = append(slots, domain.NewSlot(date, domain.TemplateEntry{Hour: h, Price: 200}))
	}
	return slots
}

func validRequest(date time.Time, method domain.PaymentMethod, hours ...int) Request {
	ids := make([]string, 0, len(hours))
	for _, h := range hours {
		ids = append(ids, domain.SlotID(date, h))
	}
	return Request{
		CustomerID:    "user-1",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		Date:          date,
		SlotIDs:       ids,
		PaymentMethod: method,
	}
}

func TestCreate_VenueBooksAllSlotsAtomically(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		return availableSlots(date, 9, 10), nil
	}

	resp, err := env.uc.Create(context.Background(), validRequest(date, domain.PayAtVenue, 9, 10))

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Nil(t, resp.Order)

	b := resp.Booking
	assert.Equal(t, 400.0, b.TotalAmount)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, domain.BookingConfirmed, b.BookingStatus)
	require.Len(t, b.Slots, 2)
	assert.Equal(t, domain.SlotID(date, 9), b.Slots[0].SlotID)
	assert.Equal(t, domain.SlotID(date, 10), b.Slots[1].SlotID)

	// Оба слота получили один и тот же booking id
	assert.Equal(t, b.ID, env.slotRepo.markedBooking)
	assert.Equal(t, b.SlotIDs(), env.slotRepo.markedSlotIDs)

	// Письмо-подтверждение отправлено
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, b.ID, env.mailer.sent[0].ID)
}

func TestCreate_VenueConflictWhenSlotTaken(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	env := newTestEnv(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		return availableSlots(date, 9, 10), nil
	}
	// Между чтением и обновлением один слот увели: обновилась одна строка из двух
	env.slotRepo.MarkBookedFunc = func(ctx context.Context, slotIDs []string, bookingID string) (int64, error) {
		return 1, nil
	}

	_, err := env.uc.Create(context.Background(), validRequest(date, domain.PayAtVenue, 9, 10))

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, env.mailer.sent)
}

func TestCreate_SlotAlreadyBooked(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	env := newTestEnv(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		slots := availableSlots(date, 9, 10)
		slots[1].Status = domain.SlotBooked
		return slots, nil
	}

	_, err := env.uc.Create(context.Background(), validRequest(date, domain.PayAtVenue, 9, 10))

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreate_SlotMissing(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	env := newTestEnv(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		return availableSlots(date, 9), nil
	}

	_, err := env.uc.Create(context.Background(), validRequest(date, domain.PayAtVenue, 9, 10))

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreate_PastSlotRejected(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	// 8:30 с буфером 60 минут: слот 9:00 уже нельзя бронировать
	env := newTestEnv(time.Date(2025, 6, 10, 8, 30, 0, 0, time.Local))

	_, err := env.uc.Create(context.Background(), validRequest(date, domain.PayAtVenue, 9))

	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestCreate_Validation(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	otherDate := time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local)
	env := newTestEnv(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))

	noSlots := validRequest(date, domain.PayAtVenue)
	_, err := env.uc.Create(context.Background(), noSlots)
	assert.ErrorIs(t, err, ErrInvalidInput)

	dup := validRequest(date, domain.PayAtVenue, 9)
	dup.SlotIDs = append(dup.SlotIDs, dup.SlotIDs[0])
	_, err = env.uc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, ErrInvalidInput)

	wrongDate := validRequest(date, domain.PayAtVenue, 9)
	wrongDate.SlotIDs = []string{domain.SlotID(otherDate, 9)}
	_, err = env.uc.Create(context.Background(), wrongDate)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badMethod := validRequest(date, "crypto", 9)
	_, err = env.uc.Create(context.Background(), badMethod)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noName := validRequest(date, domain.PayAtVenue, 9)
	noName.CustomerName = ""
	_, err = env.uc.Create(context.Background(), noName)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_OnlineLeavesSlotsFree(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		return availableSlots(date, 9, 10), nil
	}

	resp, err := env.uc.Create(context.Background(), validRequest(date, domain.PayOnline, 9, 10))

	require.NoError(t, err)
	require.NotNil(t, resp.Order)
	assert.Equal(t, "order_test", resp.Order.OrderID)
	assert.Equal(t, int64(40000), resp.Order.Amount) // 400 INR в пайсах
	assert.Equal(t, "INR", resp.Order.Currency)

	b := resp.Booking
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, domain.BookingPending, b.BookingStatus)
	require.NotNil(t, b.PaymentOrderID)
	assert.Equal(t, "order_test", *b.PaymentOrderID)
	require.NotNil(t, b.ExpiresAt)
	assert.Equal(t, now.Add(15*time.Minute), *b.ExpiresAt)

	// Сумма заказа взята из цен хранилища, receipt — id бронирования
	assert.Equal(t, 400.0, env.payments.orderAmount)
	assert.Equal(t, b.ID, env.payments.orderReceipt)

	// Слоты не занимались до подтверждения платежа
	assert.Empty(t, env.slotRepo.markedSlotIDs)

	// Письмо уходит только после подтверждения платежа
	assert.Empty(t, env.mailer.sent)
}

func TestCreate_OnlinePaymentGatewayDown(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	env := newTestEnv(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		return availableSlots(date, 9), nil
	}
	env.payments.CreateOrderFunc = func(ctx context.Context, amountINR float64, receipt string, notes map[string]string) (*razorpay.Order, error) {
		return nil, razorpay.ErrUnavailable
	}

	_, err := env.uc.Create(context.Background(), validRequest(date, domain.PayOnline, 9))

	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Nil(t, env.bookingRepo.created)
}

func TestCreate_CustomerUpsertFailureIsNotFatal(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	env := newTestEnv(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))

	env.slotRepo.GetByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Slot, error) {
		return availableSlots(date, 9), nil
	}
	env.customerRepo.UpsertFunc = func(ctx context.Context, c *domain.Customer) error {
		return assert.AnError
	}

	resp, err := env.uc.Create(context.Background(), validRequest(date, domain.PayAtVenue, 9))

	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
}
