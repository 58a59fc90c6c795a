package domain

import "time"

// PaymentMethod represents how the customer pays for a booking
type PaymentMethod string

const (
	PayAtVenue PaymentMethod = "venue"
	PayOnline  PaymentMethod = "online"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// BookingStatus represents the confirmation state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

// BookingSlot is a denormalized snapshot of one booked slot, taken at
// booking time so later slot mutations never alter booking history
type BookingSlot struct {
	SlotID    string
	Hour      int
	StartTime string
	EndTime   string
	Price     float64
}

// Booking represents a customer reservation of one or more slots on a
// single date.
//
// Invariant: TotalAmount equals the sum of the snapshotted slot prices.
// The slot list is immutable once the booking is created.
type Booking struct {
	ID            string // opaque id assigned at creation
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	Slots         []BookingSlot // ordered by hour
	TotalAmount   float64
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	BookingStatus BookingStatus

	// Online payment fields
	PaymentOrderID *string    // gateway order reference
	PaymentID      *string    // gateway payment reference, set on confirmation
	ExpiresAt      *time.Time // set while an online payment is pending

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPendingPayment returns true while an online booking awaits payment
// confirmation; its slots have not been flipped to booked yet
func (b *Booking) IsPendingPayment() bool {
	return b.PaymentMethod == PayOnline &&
		b.PaymentStatus == PaymentPending &&
		b.BookingStatus == BookingPending
}

// IsExpired returns true if a pending online booking outlived its expiry
func (b *Booking) IsExpired(now time.Time) bool {
	return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}

// SlotIDs returns the ids of the snapshotted slots in order
func (b *Booking) SlotIDs() []string {
	ids := make([]string, len(b.Slots))
	for i, s := range b.Slots {
		ids[i] = s.SlotID
	}
	return ids
}

// ValidPaymentMethod returns true if m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PayAtVenue || m == PayOnline
}

// ValidPaymentStatus returns true if s is a known payment status
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid
}

// BookingsFilter фильтр для выборки бронирований в админ-панели
type BookingsFilter struct {
	CustomerID    *string        // фильтр по клиенту (опционально)
	PaymentStatus *PaymentStatus // фильтр по статусу оплаты (опционально)
	Date          *time.Time     // фильтр по дате бронирования (опционально)
	Search        *string        // подстрока в имени/email клиента (опционально)
}
