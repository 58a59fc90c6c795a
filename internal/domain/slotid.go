package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const slotIDPrefix = "SLOT_"

// SlotID derives the deterministic slot identifier SLOT_<YYYY-MM-DD>_<hour>.
//
// The date part is built from the local calendar fields of date, never from
// a timezone-sensitive serialization: formatting through UTC can shift the
// day near midnight in zones behind UTC. Injective over date x [OpenHour,
// LastSlotHour].
func SlotID(date time.Time, hour int) string {
	return fmt.Sprintf("%s%s_%d", slotIDPrefix, FormatDate(date), hour)
}

// ParseSlotID splits a slot identifier back into its date and hour.
// Returns false for anything that SlotID could not have produced.
func ParseSlotID(id string) (date time.Time, hour int, ok bool) {
	rest, found := strings.CutPrefix(id, slotIDPrefix)
	if !found {
		return time.Time{}, 0, false
	}

	dateStr, hourStr, found := strings.Cut(rest, "_")
	if !found {
		return time.Time{}, 0, false
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, 0, false
	}

	hour, err = strconv.Atoi(hourStr)
	if err != nil || hour < OpenHour || hour > LastSlotHour {
		return time.Time{}, 0, false
	}

	return date, hour, true
}

// FormatDate formats a calendar date as YYYY-MM-DD using its local
// calendar fields
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a local calendar date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// HourString renders an hour-of-day as the display form used in slot
// start/end times ("8:00", "21:00")
func HourString(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// DateOnly strips the time-of-day component, keeping the calendar date
// in its original location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
