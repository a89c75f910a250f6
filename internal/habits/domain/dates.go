package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDayKey is returned when a ledger key is not a canonical
// YYYY-MM-DD calendar date.
var ErrInvalidDayKey = errors.New("invalid day key")

const dayKeyLayout = "2006-01-02"

// DayKey identifies one calendar day, canonical form YYYY-MM-DD.
// The key carries no time of day and no timezone: it is the calendar date
// as observed wherever the entry was recorded.
type DayKey struct {
	year  int
	month time.Month
	day   int
}

// DayOf returns the DayKey for the calendar date of t, in t's location.
func DayOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{year: y, month: m, day: d}
}

// ParseDayKey parses a canonical YYYY-MM-DD key. Non-canonical input
// (wrong layout, missing zero padding, impossible dates) is rejected.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return DayKey{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	k := DayOf(t)
	if k.String() != s {
		return DayKey{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	return k, nil
}

// String returns the canonical YYYY-MM-DD form.
func (k DayKey) String() string {
	return k.Time().Format(dayKeyLayout)
}

// Time returns midnight UTC of the key's calendar date. The UTC anchor is
// only an internal canonical representation for date arithmetic; it does not
// imply the entry was recorded in UTC.
func (k DayKey) Time() time.Time {
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the key is the zero value.
func (k DayKey) IsZero() bool {
	return k.year == 0 && k.month == 0 && k.day == 0
}

// Prev returns the previous calendar day.
func (k DayKey) Prev() DayKey {
	return DayOf(k.Time().AddDate(0, 0, -1))
}

// Next returns the next calendar day.
func (k DayKey) Next() DayKey {
	return DayOf(k.Time().AddDate(0, 0, 1))
}

// AddDays returns the key n calendar days later (earlier when n < 0).
func (k DayKey) AddDays(n int) DayKey {
	return DayOf(k.Time().AddDate(0, 0, n))
}

// Before reports whether k is strictly earlier than other.
func (k DayKey) Before(other DayKey) bool {
	return k.Time().Before(other.Time())
}

// After reports whether k is strictly later than other.
func (k DayKey) After(other DayKey) bool {
	return other.Before(k)
}

// DaysUntil returns the number of calendar days from k to other.
// Negative when other is earlier than k.
func (k DayKey) DaysUntil(other DayKey) int {
	return int(other.Time().Sub(k.Time()) / (24 * time.Hour))
}

// Weekday returns the day of week for the key's date.
func (k DayKey) Weekday() time.Weekday {
	return k.Time().Weekday()
}

// MonthLabel returns the "January 2006" style bucket label for the key.
func (k DayKey) MonthLabel() string {
	return k.Time().Format("January 2006")
}

// DaysBetween returns every DayKey in [start, end] inclusive, ascending.
// Returns nil when end is before start.
func DaysBetween(start, end DayKey) []DayKey {
	if end.Before(start) {
		return nil
	}
	days := make([]DayKey, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.Next() {
		days = append(days, d)
	}
	return days
}
