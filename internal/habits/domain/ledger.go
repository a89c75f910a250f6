package domain

import "sort"

// Status is the tri-state outcome recorded for one habit on one day.
type Status string

const (
	// StatusUntracked means no outcome is recorded. Untracked days are never
	// stored in the ledger; absence of a key is the representation.
	StatusUntracked Status = "untracked"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusUntracked, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTracked reports whether s records an explicit outcome.
func (s Status) IsTracked() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ParseStatus maps a persisted value onto a Status. Unknown values fold to
// StatusUntracked so that historical data with corrupt entries still
// aggregates instead of failing.
func ParseStatus(raw string) Status {
	s := Status(raw)
	if !s.IsValid() {
		return StatusUntracked
	}
	return s
}

// Ledger is the per-habit map from calendar day to recorded outcome.
// It is the single source of truth for every derived statistic; it caches
// nothing itself.
type Ledger struct {
	entries map[DayKey]Status
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[DayKey]Status)}
}

// Get returns the recorded status for a day, StatusUntracked when absent.
func (l *Ledger) Get(day DayKey) Status {
	if l == nil || l.entries == nil {
		return StatusUntracked
	}
	if s, ok := l.entries[day]; ok {
		return s
	}
	return StatusUntracked
}

// Set records the status for a day. Setting StatusUntracked removes the
// entry so tracked-day iteration only visits days with an explicit outcome.
func (l *Ledger) Set(day DayKey, status Status) {
	if l.entries == nil {
		l.entries = make(map[DayKey]Status)
	}
	if status == StatusUntracked {
		delete(l.entries, day)
		return
	}
	l.entries[day] = status
}

// Len returns the number of tracked days.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// TrackedDays returns every day with an explicit outcome, ascending.
func (l *Ledger) TrackedDays() []DayKey {
	if l == nil {
		return nil
	}
	days := make([]DayKey, 0, len(l.entries))
	for d := range l.entries {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// CompletedDays returns every day marked completed, ascending.
func (l *Ledger) CompletedDays() []DayKey {
	if l == nil {
		return nil
	}
	days := make([]DayKey, 0, len(l.entries))
	for d, s := range l.entries {
		if s == StatusCompleted {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Clone returns an independent copy of the ledger. Aggregators read clones
// so a ledger is never observed mid-mutation.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	if l == nil {
		return c
	}
	for d, s := range l.entries {
		c.entries[d] = s
	}
	return c
}
