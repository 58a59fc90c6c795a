package domain

import "time"

// SlotStatus represents the stored status of a slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
)

// ValidSlotStatus returns true if s is one of the known slot statuses
func ValidSlotStatus(s SlotStatus) bool {
	return s == SlotAvailable || s == SlotBooked || s == SlotUnavailable
}

// Slot represents one bookable one-hour court window on a calendar date.
//
// Invariant: Status == SlotBooked if and only if BookingID != nil. A slot
// never leaves SlotBooked through the ordinary flow; only deleting the
// owning booking releases it.
type Slot struct {
	ID        string // deterministic key, see SlotID
	Date      time.Time
	Hour      int // start hour of the one-hour window
	StartTime string
	EndTime   string
	Price     float64
	Status    SlotStatus
	BookingID *string
	CreatedAt time.Time
}

// IsBookable returns true if the slot can be targeted by a booking
func (s *Slot) IsBookable() bool {
	return s.Status == SlotAvailable
}

// Start returns the slot's start instant in the given location
func (s *Slot) Start(loc *time.Location) time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), s.Hour, 0, 0, 0, loc)
}

// NewSlot builds a slot from a template entry for the given date
func NewSlot(date time.Time, entry TemplateEntry) *Slot {
	return &Slot{
		ID:        SlotID(date, entry.Hour),
		Date:      date,
		Hour:      entry.Hour,
		StartTime: HourString(entry.Hour),
		EndTime:   HourString(entry.Hour + 1),
		Price:     entry.Price,
		Status:    SlotAvailable,
		BookingID: nil,
	}
}
