package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotID_Format(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "SLOT_2025-06-10_8", SlotID(date, 8))
	assert.Equal(t, "SLOT_2025-06-10_20", SlotID(date, 20))
}

func TestSlotID_Deterministic(t *testing.T) {
	// Один и тот же календарный день в разное время суток дает один ключ
	morning := time.Date(2025, 6, 10, 0, 30, 0, 0, time.Local)
	night := time.Date(2025, 6, 10, 23, 59, 0, 0, time.Local)

	assert.Equal(t, SlotID(morning, 9), SlotID(night, 9))
}

func TestSlotID_Injective(t *testing.T) {
	// Нет коллизий на диапазоне дат и рабочих часов
	seen := make(map[string]struct{})
	start := time.Date(2025, 1, 28, 0, 0, 0, 0, time.Local)

	for day := 0; day < 10; day++ {
		date := start.AddDate(0, 0, day)
		for hour := OpenHour; hour <= LastSlotHour; hour++ {
			id := SlotID(date, hour)
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	}

	assert.Len(t, seen, 10*SlotsPerDay)
}

func TestParseSlotID_Roundtrip(t *testing.T) {
	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)
	id := SlotID(date, 15)

	parsedDate, hour, ok := ParseSlotID(id)
	require.True(t, ok)
	assert.Equal(t, 15, hour)
	assert.True(t, SameDay(date, parsedDate))
}

func TestParseSlotID_Malformed(t *testing.T) {
	cases := []string{
		"",
		"SLOT_",
		"SLOT_2025-06-10",
		"SLOT_2025-06-10_7",   // час до открытия
		"SLOT_2025-06-10_21",  // час после последнего слота
		"SLOT_2025-06-10_abc",
		"BOOKING_2025-06-10_9",
		"SLOT_10.06.2025_9",
	}

	for _, id := range cases {
		_, _, ok := ParseSlotID(id)
		assert.False(t, ok, "expected %q to be rejected", id)
	}
}

func TestFormatDate_LocalCalendarFields(t *testing.T) {
	// Момент до полуночи в зоне UTC-5: сериализация через UTC сдвинула бы день
	loc := time.FixedZone("UTC-5", -5*60*60)
	date := time.Date(2025, 6, 10, 23, 30, 0, 0, loc)

	assert.Equal(t, "2025-06-10", FormatDate(date))
}

func TestDayTemplate(t *testing.T) {
	template := DayTemplate(200)

	require.Len(t, template, SlotsPerDay)
	assert.Equal(t, OpenHour, template[0].Hour)
	assert.Equal(t, LastSlotHour, template[len(template)-1].Hour)
	for _, entry := range template {
		assert.Equal(t, 200.0, entry.Price)
	}
}

func TestNewSlot(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	slot := NewSlot(date, TemplateEntry{Hour: 9, Price: 200})

	assert.Equal(t, "SLOT_2025-06-10_9", slot.ID)
	assert.Equal(t, "9:00", slot.StartTime)
	assert.Equal(t, "10:00", slot.EndTime)
	assert.Equal(t, SlotAvailable, slot.Status)
	assert.Nil(t, slot.BookingID)
}
