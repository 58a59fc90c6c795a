package domain

// Court day template: one bookable hour per slot, first slot starts at
// OpenHour, last slot starts at LastSlotHour (and ends an hour later).
const (
	OpenHour     = 8
	LastSlotHour = 20
	SlotsPerDay  = LastSlotHour - OpenHour + 1 // 13
)

// Default configuration values
const (
	DefaultSlotPrice           = 200.0 // INR per hour
	DefaultHorizonDays         = 60
	DefaultLeadTimeMinutes     = 60 // booking lead-time buffer
	DefaultPendingTTLMinutes   = 15 // unpaid online bookings expire after this
	DefaultGenerationBatchDays = 30
)

// Business validation constants
const (
	MinGenerationDays  = 1
	MaxGenerationDays  = 365
	MaxSlotsPerBooking = SlotsPerDay
	MaxNameLength      = 200
	MaxEmailLength     = 254
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TemplateEntry одна позиция дневного шаблона слотов
type TemplateEntry struct {
	Hour  int
	Price float64
}

// DayTemplate возвращает полный дневной шаблон: 13 слотов с 8:00 до 21:00
// по указанной цене за час
func DayTemplate(price float64) []TemplateEntry {
	template := make([]TemplateEntry, 0, SlotsPerDay)
	for hour := OpenHour; hour <= LastSlotHour; hour++ {
		template = append(template, TemplateEntry{Hour: hour, Price: price})
	}
	return template
}
