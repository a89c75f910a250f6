package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	ErrHabitEmptyName      = errors.New("habit name cannot be empty")
	ErrHabitArchived       = errors.New("habit is archived")
	ErrInvalidStatus       = errors.New("invalid habit status")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
)

var reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Habit tracks one recurring practice: a per-day completion ledger plus the
// streak figures derived from it. The streak fields are caches recomputed on
// every mutation; the ledger is the only real state.
type Habit struct {
	sharedDomain.BaseAggregateRoot
	ownerID       uuid.UUID
	name          string
	description   string
	todayStatus   Status // live state for the current calendar day only
	streak        int
	longestStreak int
	lastCompleted *time.Time
	ledger        *Ledger
	reminderTime  string // "HH:MM", empty when no reminder
	reminderDays  []time.Weekday
	archived      bool
}

// NewHabit creates a habit with an empty ledger.
func NewHabit(ownerID uuid.UUID, name, description string) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitEmptyName
	}

	h := &Habit{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		name:              name,
		description:       strings.TrimSpace(description),
		todayStatus:       StatusUntracked,
		ledger:            NewLedger(),
	}

	h.AddDomainEvent(NewHabitCreated(h))

	return h, nil
}

// Getters
func (h *Habit) OwnerID() uuid.UUID           { return h.ownerID }
func (h *Habit) Name() string                 { return h.name }
func (h *Habit) Description() string          { return h.description }
func (h *Habit) TodayStatus() Status          { return h.todayStatus }
func (h *Habit) Streak() int                  { return h.streak }
func (h *Habit) LongestStreak() int           { return h.longestStreak }
func (h *Habit) LastCompleted() *time.Time    { return h.lastCompleted }
func (h *Habit) Ledger() *Ledger              { return h.ledger }
func (h *Habit) ReminderTime() string         { return h.reminderTime }
func (h *Habit) ReminderDays() []time.Weekday { return h.reminderDays }
func (h *Habit) IsArchived() bool             { return h.archived }

// SetName updates the habit name.
func (h *Habit) SetName(name string) error {
	if h.archived {
		return ErrHabitArchived
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitEmptyName
	}
	h.name = name
	h.Touch()
	return nil
}

// SetDescription updates the description.
func (h *Habit) SetDescription(desc string) error {
	if h.archived {
		return ErrHabitArchived
	}
	h.description = strings.TrimSpace(desc)
	h.Touch()
	return nil
}

// SetStatus records the outcome for one calendar day and brings every
// derived field back in line with the ledger.
//
// Only an edit to today's date may move the live todayStatus/lastCompleted
// fields; retroactive edits affect the ledger and the streak caches alone.
// Failing today zeroes the streak outright, while failing a past day merely
// triggers recomputation against the present ledger.
func (h *Habit) SetStatus(day DayKey, status Status, now time.Time) error {
	if h.archived {
		return ErrHabitArchived
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	h.ledger.Set(day, status)

	today := DayOf(now)
	isToday := day == today

	switch {
	case status == StatusCompleted:
		h.streak = StreakAt(h.ledger, today)
		if isToday {
			completedAt := now
			h.lastCompleted = &completedAt
			h.todayStatus = StatusCompleted
		}
		if h.streak > h.longestStreak {
			h.longestStreak = h.streak
		}
		h.AddDomainEvent(NewHabitCompleted(h, day))

	case status == StatusFailed && isToday:
		h.streak = 0
		h.todayStatus = StatusFailed

	default:
		// Failed on a past day, or untracked anywhere: the present streak is
		// whatever the ledger now says, and the live fields stay put unless
		// the edit clears today itself.
		h.streak = StreakAt(h.ledger, today)
		if h.streak > h.longestStreak {
			h.longestStreak = h.streak
		}
		if isToday && status == StatusUntracked {
			h.todayStatus = StatusUntracked
		}
	}

	h.Touch()
	h.AddDomainEvent(NewHabitStatusChanged(h, day, status))

	return nil
}

// Recalculate refreshes the streak caches from the ledger as of now.
// Idempotent; calling it any number of times yields the same result.
func (h *Habit) Recalculate(now time.Time) {
	h.streak = StreakAt(h.ledger, DayOf(now))
	if h.streak > h.longestStreak {
		h.longestStreak = h.streak
	}
}

// SetReminder updates the reminder schedule. An empty timeOfDay clears the
// reminder. Emits HabitReminderChanged only when something actually changed,
// so notification scheduling is not churned by no-op writes.
func (h *Habit) SetReminder(timeOfDay string, days []time.Weekday) error {
	if h.archived {
		return ErrHabitArchived
	}
	if timeOfDay != "" && !reminderTimePattern.MatchString(timeOfDay) {
		return ErrInvalidReminderTime
	}
	if timeOfDay == "" {
		days = nil
	}

	if h.reminderTime == timeOfDay && equalWeekdays(h.reminderDays, days) {
		return nil
	}

	h.reminderTime = timeOfDay
	h.reminderDays = days
	h.Touch()
	h.AddDomainEvent(NewHabitReminderChanged(h))
	return nil
}

// IsDueOn reports whether the habit is scheduled for the given date.
// A habit with no reminderDays configured is due every day.
func (h *Habit) IsDueOn(date time.Time) bool {
	if h.archived {
		return false
	}
	if len(h.reminderDays) == 0 {
		return true
	}
	weekday := date.Weekday()
	for _, d := range h.reminderDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// Archive marks the habit as archived.
func (h *Habit) Archive() {
	if !h.archived {
		h.archived = true
		h.Touch()
		h.AddDomainEvent(NewHabitArchived(h))
	}
}

// Unarchive restores an archived habit.
func (h *Habit) Unarchive() {
	if h.archived {
		h.archived = false
		h.Touch()
	}
}

func equalWeekdays(a, b []time.Weekday) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RehydrateHabit recreates a habit from persisted state without emitting
// events.
func RehydrateHabit(
	id uuid.UUID,
	ownerID uuid.UUID,
	name string,
	description string,
	todayStatus Status,
	streak int,
	longestStreak int,
	lastCompleted *time.Time,
	ledger *Ledger,
	reminderTime string,
	reminderDays []time.Weekday,
	archived bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Habit {
	if ledger == nil {
		ledger = NewLedger()
	}
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Habit{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		ownerID:           ownerID,
		name:              name,
		description:       description,
		todayStatus:       ParseStatus(string(todayStatus)),
		streak:            streak,
		longestStreak:     longestStreak,
		lastCompleted:     lastCompleted,
		ledger:            ledger,
		reminderTime:      reminderTime,
		reminderDays:      reminderDays,
		archived:          archived,
	}
}
