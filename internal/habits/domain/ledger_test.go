package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, s string) DayKey {
	t.Helper()
	k, err := ParseDayKey(s)
	if err != nil {
		t.Fatalf("bad day key %q: %v", s, err)
	}
	return k
}

func TestLedger_GetDefaultsToUntracked(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, StatusUntracked, l.Get(day(t, "2024-01-01")))

	var nilLedger *Ledger
	assert.Equal(t, StatusUntracked, nilLedger.Get(day(t, "2024-01-01")))
}

func TestLedger_SetOverwrites(t *testing.T) {
	l := NewLedger()
	d := day(t, "2024-01-01")

	l.Set(d, StatusCompleted)
	assert.Equal(t, StatusCompleted, l.Get(d))

	l.Set(d, StatusFailed)
	assert.Equal(t, StatusFailed, l.Get(d))
	assert.Equal(t, 1, l.Len())
}

func TestLedger_SetUntrackedRemovesKey(t *testing.T) {
	l := NewLedger()
	d := day(t, "2024-01-01")

	l.Set(d, StatusCompleted)
	assert.Equal(t, 1, l.Len())

	l.Set(d, StatusUntracked)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, StatusUntracked, l.Get(d))
	assert.Empty(t, l.TrackedDays())
}

func TestLedger_TrackedDaysSorted(t *testing.T) {
	l := NewLedger()
	l.Set(day(t, "2024-01-03"), StatusFailed)
	l.Set(day(t, "2024-01-01"), StatusCompleted)
	l.Set(day(t, "2024-01-02"), StatusCompleted)

	tracked := l.TrackedDays()
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, keyStrings(tracked))

	completed := l.CompletedDays()
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, keyStrings(completed))
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	l := NewLedger()
	d := day(t, "2024-01-01")
	l.Set(d, StatusCompleted)

	c := l.Clone()
	c.Set(d, StatusFailed)

	assert.Equal(t, StatusCompleted, l.Get(d))
	assert.Equal(t, StatusFailed, c.Get(d))
}

func TestParseStatus_UnknownFoldsToUntracked(t *testing.T) {
	assert.Equal(t, StatusCompleted, ParseStatus("completed"))
	assert.Equal(t, StatusFailed, ParseStatus("failed"))
	assert.Equal(t, StatusUntracked, ParseStatus("untracked"))
	assert.Equal(t, StatusUntracked, ParseStatus("done"))
	assert.Equal(t, StatusUntracked, ParseStatus(""))
	assert.Equal(t, StatusUntracked, ParseStatus("COMPLETED"))
}

func keyStrings(days []DayKey) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
