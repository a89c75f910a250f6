package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	// 2024-03-15 is a Friday.
	friday9am := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("no reminder configured", func(t *testing.T) {
		next, err := NextOccurrence("", nil, friday9am)
		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("later today", func(t *testing.T) {
		next, err := NextOccurrence("18:30", nil, friday9am)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC), *next)
	})

	t.Run("time already passed rolls to tomorrow", func(t *testing.T) {
		next, err := NextOccurrence("07:00", nil, friday9am)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC), *next)
	})

	t.Run("exact match fires now", func(t *testing.T) {
		next, err := NextOccurrence("09:00", nil, friday9am)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, friday9am, *next)
	})

	t.Run("skips to the next allowed weekday", func(t *testing.T) {
		next, err := NextOccurrence("08:00", []time.Weekday{time.Monday}, friday9am)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC), *next)
		assert.Equal(t, time.Monday, next.Weekday())
	})

	t.Run("same weekday later time fires today", func(t *testing.T) {
		next, err := NextOccurrence("18:00", []time.Weekday{time.Friday}, friday9am)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC), *next)
	})

	t.Run("same weekday earlier time waits a week", func(t *testing.T) {
		next, err := NextOccurrence("07:00", []time.Weekday{time.Friday}, friday9am)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, time.Date(2024, 3, 22, 7, 0, 0, 0, time.UTC), *next)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := NextOccurrence("9am", nil, friday9am)
		assert.ErrorIs(t, err, ErrInvalidReminderTime)
	})
}
