package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 local is still the same calendar day locally.
	late := time.Date(2024, time.March, 15, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-15", DayOf(late).String())

	// Time of day is discarded entirely.
	assert.Equal(t, DayOf(late), DayOf(late.Add(-20*time.Hour)))
}

func TestParseDayKey(t *testing.T) {
	k, err := ParseDayKey("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", k.String())
	assert.Equal(t, time.Friday, k.Weekday())

	tests := []string{
		"2024-1-05",      // missing zero padding
		"2024-01-5",
		"05-01-2024",
		"2024-13-01",     // impossible month
		"2024-02-30",     // impossible day
		"2024-01-05T00:00:00Z",
		"",
		"yesterday",
	}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDayKey(raw)
			assert.ErrorIs(t, err, ErrInvalidDayKey)
		})
	}
}

func TestDayKey_Arithmetic(t *testing.T) {
	k, _ := ParseDayKey("2024-03-01")

	assert.Equal(t, "2024-02-29", k.Prev().String()) // leap year
	assert.Equal(t, "2024-03-02", k.Next().String())
	assert.Equal(t, "2024-03-11", k.AddDays(10).String())
	assert.Equal(t, "2024-02-20", k.AddDays(-10).String())

	assert.True(t, k.Prev().Before(k))
	assert.True(t, k.Next().After(k))
	assert.Equal(t, 10, k.DaysUntil(k.AddDays(10)))
	assert.Equal(t, -3, k.DaysUntil(k.AddDays(-3)))
}

func TestDayKey_MonthLabel(t *testing.T) {
	k, _ := ParseDayKey("2024-07-19")
	assert.Equal(t, "July 2024", k.MonthLabel())
}

func TestDaysBetween(t *testing.T) {
	start, _ := ParseDayKey("2024-01-30")
	end, _ := ParseDayKey("2024-02-02")

	days := DaysBetween(start, end)
	require.Len(t, days, 4)
	assert.Equal(t, "2024-01-30", days[0].String())
	assert.Equal(t, "2024-02-02", days[3].String())

	assert.Len(t, DaysBetween(start, start), 1)
	assert.Nil(t, DaysBetween(end, start))
}
