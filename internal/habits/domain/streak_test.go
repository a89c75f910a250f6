package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreakAt_EmptyLedger(t *testing.T) {
	assert.Equal(t, 0, StreakAt(NewLedger(), day(t, "2024-01-10")))
}

func TestStreakAt_SingleCompletionToday(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-01-10")
	l.Set(ref, StatusCompleted)

	assert.Equal(t, 1, StreakAt(l, ref))
}

func TestStreakAt_UntrackedTodayAnchorsOnYesterday(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-01-10")
	l.Set(ref.Prev(), StatusCompleted)
	l.Set(ref.AddDays(-2), StatusCompleted)

	// Today not yet tracked: streak is still alive through yesterday.
	assert.Equal(t, 2, StreakAt(l, ref))
}

func TestStreakAt_FailedTodayStillAnchorsOnYesterday(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-01-10")
	l.Set(ref, StatusFailed)
	l.Set(ref.Prev(), StatusCompleted)

	assert.Equal(t, 1, StreakAt(l, ref))
}

func TestStreakAt_NoAnchor(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-01-10")
	l.Set(ref.Prev(), StatusFailed)
	l.Set(ref.AddDays(-2), StatusCompleted)

	// Neither today nor yesterday completed: streak is dead even though
	// older completions exist.
	assert.Equal(t, 0, StreakAt(l, ref))
}

func TestStreakAt_GapBreaksStreak(t *testing.T) {
	ref := day(t, "2024-01-10")

	tests := []struct {
		name    string
		between Status
		want    int
	}{
		{"failed day between", StatusFailed, 1},
		{"untracked day between", StatusUntracked, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			l.Set(ref, StatusCompleted)
			l.Set(ref.Prev(), tc.between)
			l.Set(ref.AddDays(-2), StatusCompleted)

			assert.Equal(t, tc.want, StreakAt(l, ref))
		})
	}
}

func TestStreakAt_LongRun(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-06-30")
	for i := 0; i < 40; i++ {
		l.Set(ref.AddDays(-i), StatusCompleted)
	}

	assert.Equal(t, 40, StreakAt(l, ref))
}

func TestStreakAt_WalkIsCapped(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-06-30")
	for i := 0; i < maxStreakWalk+30; i++ {
		l.Set(ref.AddDays(-i), StatusCompleted)
	}

	assert.Equal(t, maxStreakWalk, StreakAt(l, ref))
}

func TestStreakAt_Deterministic(t *testing.T) {
	l := NewLedger()
	ref := day(t, "2024-01-10")
	l.Set(ref, StatusCompleted)
	l.Set(ref.Prev(), StatusCompleted)

	first := StreakAt(l, ref)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, StreakAt(l, ref))
	}
}
