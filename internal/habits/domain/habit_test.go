package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noon returns a mid-day instant on the given day, far from any rollover.
func noon(t *testing.T, s string) time.Time {
	t.Helper()
	return day(t, s).Time().Add(12 * time.Hour)
}

func TestNewHabit(t *testing.T) {
	ownerID := uuid.New()
	habit, err := NewHabit(ownerID, "Morning walk", "20 minutes before work")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, habit.ID())
	assert.Equal(t, ownerID, habit.OwnerID())
	assert.Equal(t, "Morning walk", habit.Name())
	assert.Equal(t, StatusUntracked, habit.TodayStatus())
	assert.Equal(t, 0, habit.Streak())
	assert.Equal(t, 0, habit.LongestStreak())
	assert.Nil(t, habit.LastCompleted())
	assert.Equal(t, 0, habit.Ledger().Len())
	assert.False(t, habit.IsArchived())
}

func TestNewHabit_EmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := NewHabit(uuid.New(), name, "")
		assert.ErrorIs(t, err, ErrHabitEmptyName)
	}
}

func TestNewHabit_EmitsEvent(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Read", "")
	require.NoError(t, err)

	events := habit.DomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*HabitCreated)
	require.True(t, ok)
	assert.Equal(t, habit.ID(), created.HabitID)
	assert.Equal(t, "Read", created.Name)
}

func TestHabit_SetStatus_CompletedToday(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")

	err := habit.SetStatus(DayOf(now), StatusCompleted, now)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, habit.TodayStatus())
	assert.Equal(t, 1, habit.Streak())
	assert.Equal(t, 1, habit.LongestStreak())
	require.NotNil(t, habit.LastCompleted())
	assert.Equal(t, now, *habit.LastCompleted())
}

func TestHabit_SetStatus_Idempotent(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	d := DayOf(now)

	require.NoError(t, habit.SetStatus(d, StatusCompleted, now))
	require.NoError(t, habit.SetStatus(d, StatusCompleted, now))

	assert.Equal(t, 1, habit.Streak())
	assert.Equal(t, 1, habit.LongestStreak())
	assert.Equal(t, 1, habit.Ledger().Len())
}

func TestHabit_SetStatus_ConsecutiveDaysGrowStreak(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	start := day(t, "2024-01-01")

	for i := 0; i < 5; i++ {
		now := start.AddDays(i).Time().Add(9 * time.Hour)
		require.NoError(t, habit.SetStatus(DayOf(now), StatusCompleted, now))
		assert.Equal(t, i+1, habit.Streak())
		assert.GreaterOrEqual(t, habit.LongestStreak(), habit.Streak())
	}

	assert.Equal(t, 5, habit.LongestStreak())
}

func TestHabit_SetStatus_FailedTodayZeroesStreak(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	start := day(t, "2024-01-01")
	for i := 0; i < 3; i++ {
		now := start.AddDays(i).Time().Add(9 * time.Hour)
		require.NoError(t, habit.SetStatus(DayOf(now), StatusCompleted, now))
	}

	now := start.AddDays(3).Time().Add(9 * time.Hour)
	require.NoError(t, habit.SetStatus(DayOf(now), StatusFailed, now))

	assert.Equal(t, 0, habit.Streak())
	assert.Equal(t, StatusFailed, habit.TodayStatus())
	assert.Equal(t, 3, habit.LongestStreak())
}

func TestHabit_SetStatus_RetroactiveEditLeavesTodayAlone(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	today := DayOf(now)

	require.NoError(t, habit.SetStatus(today, StatusCompleted, now))
	lastCompleted := habit.LastCompleted()

	// Fail a day last week: ledger and streak may move, live state must not.
	require.NoError(t, habit.SetStatus(today.AddDays(-7), StatusFailed, now))

	assert.Equal(t, StatusCompleted, habit.TodayStatus())
	assert.Equal(t, lastCompleted, habit.LastCompleted())
	assert.Equal(t, 1, habit.Streak())
}

func TestHabit_SetStatus_RetroactiveCompletionExtendsStreak(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	today := DayOf(now)

	require.NoError(t, habit.SetStatus(today, StatusCompleted, now))
	require.NoError(t, habit.SetStatus(today.AddDays(-2), StatusCompleted, now))
	assert.Equal(t, 1, habit.Streak(), "gap at yesterday keeps streak at 1")

	// Filling the gap joins the runs; the streak reflects the present ledger.
	require.NoError(t, habit.SetStatus(today.Prev(), StatusCompleted, now))
	assert.Equal(t, 3, habit.Streak())
	assert.Equal(t, 3, habit.LongestStreak())

	// lastCompleted still reflects the today edit, not the backfills.
	require.NotNil(t, habit.LastCompleted())
	assert.Equal(t, now, *habit.LastCompleted())
}

func TestHabit_SetStatus_FailedPastDateRecomputes(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	today := DayOf(now)
	for i := 0; i < 4; i++ {
		require.NoError(t, habit.SetStatus(today.AddDays(-i), StatusCompleted, now))
	}
	assert.Equal(t, 4, habit.Streak())

	// Failing two days ago cuts the live run down to today+yesterday.
	require.NoError(t, habit.SetStatus(today.AddDays(-2), StatusFailed, now))
	assert.Equal(t, 2, habit.Streak())
	assert.Equal(t, 4, habit.LongestStreak())
	assert.Equal(t, StatusCompleted, habit.TodayStatus())
}

func TestHabit_SetStatus_UntrackedTodayClearsLiveStatus(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	today := DayOf(now)

	require.NoError(t, habit.SetStatus(today, StatusCompleted, now))
	require.NoError(t, habit.SetStatus(today, StatusUntracked, now))

	assert.Equal(t, StatusUntracked, habit.TodayStatus())
	assert.Equal(t, 0, habit.Ledger().Len())
	assert.Equal(t, 0, habit.Streak())
	assert.Equal(t, 1, habit.LongestStreak())
}

func TestHabit_SetStatus_InvalidStatus(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")

	err := habit.SetStatus(DayOf(now), Status("skipped"), now)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, 0, habit.Ledger().Len())
}

func TestHabit_SetStatus_Archived(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	habit.Archive()

	now := noon(t, "2024-01-10")
	err := habit.SetStatus(DayOf(now), StatusCompleted, now)
	assert.ErrorIs(t, err, ErrHabitArchived)
}

func TestHabit_LongestStreakNeverBelowStreak(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	start := day(t, "2024-01-01")

	statuses := []Status{
		StatusCompleted, StatusCompleted, StatusFailed, StatusCompleted,
		StatusCompleted, StatusCompleted, StatusUntracked, StatusCompleted,
	}
	for i, s := range statuses {
		now := start.AddDays(i).Time().Add(9 * time.Hour)
		require.NoError(t, habit.SetStatus(DayOf(now), s, now))
		assert.GreaterOrEqual(t, habit.LongestStreak(), habit.Streak())
	}
}

func TestHabit_Recalculate_Idempotent(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	today := DayOf(now)
	require.NoError(t, habit.SetStatus(today.Prev(), StatusCompleted, now))
	require.NoError(t, habit.SetStatus(today, StatusCompleted, now))

	habit.Recalculate(now)
	habit.Recalculate(now)

	assert.Equal(t, 2, habit.Streak())
	assert.Equal(t, 2, habit.LongestStreak())
}

func TestHabit_Recalculate_NextMorning(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	now := noon(t, "2024-01-10")
	require.NoError(t, habit.SetStatus(DayOf(now), StatusCompleted, now))

	// Next morning, today untracked: yesterday anchors the streak.
	habit.Recalculate(now.Add(24 * time.Hour))
	assert.Equal(t, 1, habit.Streak())

	// Two days on, the streak is gone.
	habit.Recalculate(now.Add(48 * time.Hour))
	assert.Equal(t, 0, habit.Streak())
	assert.Equal(t, 1, habit.LongestStreak())
}

func TestHabit_SetReminder(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	habit.ClearDomainEvents()

	err := habit.SetReminder("07:30", []time.Weekday{time.Monday, time.Thursday})
	require.NoError(t, err)
	assert.Equal(t, "07:30", habit.ReminderTime())
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, habit.ReminderDays())

	events := habit.DomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*HabitReminderChanged)
	require.True(t, ok)
	assert.Equal(t, "07:30", changed.ReminderTime)
}

func TestHabit_SetReminder_NoopEmitsNothing(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")
	require.NoError(t, habit.SetReminder("07:30", nil))
	habit.ClearDomainEvents()

	require.NoError(t, habit.SetReminder("07:30", nil))
	assert.Empty(t, habit.DomainEvents())
}

func TestHabit_SetReminder_Validation(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")

	for _, raw := range []string{"7:30", "24:00", "12:60", "noonish", "07:30:00"} {
		t.Run(raw, func(t *testing.T) {
			assert.ErrorIs(t, habit.SetReminder(raw, nil), ErrInvalidReminderTime)
		})
	}

	// Clearing the reminder drops the days with it.
	require.NoError(t, habit.SetReminder("07:30", []time.Weekday{time.Monday}))
	require.NoError(t, habit.SetReminder("", []time.Weekday{time.Friday}))
	assert.Empty(t, habit.ReminderTime())
	assert.Empty(t, habit.ReminderDays())
}

func TestHabit_IsDueOn(t *testing.T) {
	habit, _ := NewHabit(uuid.New(), "Read", "")

	monday := day(t, "2024-01-08").Time()
	saturday := day(t, "2024-01-13").Time()

	// No reminder days: due every day.
	assert.True(t, habit.IsDueOn(monday))
	assert.True(t, habit.IsDueOn(saturday))

	require.NoError(t, habit.SetReminder("07:30", []time.Weekday{time.Monday, time.Wednesday}))
	assert.True(t, habit.IsDueOn(monday))
	assert.False(t, habit.IsDueOn(saturday))

	habit.Archive()
	assert.False(t, habit.IsDueOn(monday))
}

func TestRehydrateHabit(t *testing.T) {
	id := uuid.New()
	ownerID := uuid.New()
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)

	ledger := NewLedger()
	ledger.Set(day(t, "2024-01-05"), StatusCompleted)

	habit := RehydrateHabit(
		id, ownerID, "Read", "Before bed",
		StatusCompleted, 3, 9, &last, ledger,
		"21:00", []time.Weekday{time.Sunday}, false,
		createdAt, updatedAt,
	)

	assert.Equal(t, id, habit.ID())
	assert.Equal(t, ownerID, habit.OwnerID())
	assert.Equal(t, 3, habit.Streak())
	assert.Equal(t, 9, habit.LongestStreak())
	assert.Equal(t, StatusCompleted, habit.TodayStatus())
	assert.Equal(t, createdAt, habit.CreatedAt())
	assert.Equal(t, updatedAt, habit.UpdatedAt())
	assert.Empty(t, habit.DomainEvents())
}

func TestRehydrateHabit_CorruptTodayStatus(t *testing.T) {
	habit := RehydrateHabit(
		uuid.New(), uuid.New(), "Read", "",
		Status("wat"), 0, 0, nil, nil,
		"", nil, false,
		time.Now(), time.Now(),
	)

	assert.Equal(t, StatusUntracked, habit.TodayStatus())
	assert.NotNil(t, habit.Ledger())
}
