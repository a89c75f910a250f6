package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

const aggregateType = "Habit"

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h *Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.created"),
		HabitID:   h.ID(),
		OwnerID:   h.OwnerID(),
		Name:      h.Name(),
	}
}

// HabitStatusChanged is emitted for every ledger write, including
// retroactive edits.
type HabitStatusChanged struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Day     string    `json:"day"`
	Status  string    `json:"status"`
	Streak  int       `json:"streak"`
}

// NewHabitStatusChanged creates a HabitStatusChanged event.
func NewHabitStatusChanged(h *Habit, day DayKey, status Status) *HabitStatusChanged {
	return &HabitStatusChanged{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.status_changed"),
		HabitID:   h.ID(),
		OwnerID:   h.OwnerID(),
		Day:       day.String(),
		Status:    string(status),
		Streak:    h.Streak(),
	}
}

// HabitCompleted is emitted when a day is marked completed.
type HabitCompleted struct {
	sharedDomain.BaseEvent
	HabitID       uuid.UUID `json:"habit_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Day           string    `json:"day"`
	Streak        int       `json:"streak"`
	LongestStreak int       `json:"longest_streak"`
}

// NewHabitCompleted creates a HabitCompleted event.
func NewHabitCompleted(h *Habit, day DayKey) *HabitCompleted {
	return &HabitCompleted{
		BaseEvent:     sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.completed"),
		HabitID:       h.ID(),
		OwnerID:       h.OwnerID(),
		Day:           day.String(),
		Streak:        h.Streak(),
		LongestStreak: h.LongestStreak(),
	}
}

// HabitReminderChanged is emitted when the reminder schedule changes.
// The notification side listens for this routing key alone; status
// mutations never reach it.
type HabitReminderChanged struct {
	sharedDomain.BaseEvent
	HabitID      uuid.UUID      `json:"habit_id"`
	OwnerID      uuid.UUID      `json:"owner_id"`
	ReminderTime string         `json:"reminder_time"`
	ReminderDays []time.Weekday `json:"reminder_days"`
}

// NewHabitReminderChanged creates a HabitReminderChanged event.
func NewHabitReminderChanged(h *Habit) *HabitReminderChanged {
	return &HabitReminderChanged{
		BaseEvent:    sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.reminder_changed"),
		HabitID:      h.ID(),
		OwnerID:      h.OwnerID(),
		ReminderTime: h.ReminderTime(),
		ReminderDays: h.ReminderDays(),
	}
}

// HabitArchived is emitted when a habit is archived.
type HabitArchived struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// NewHabitArchived creates a HabitArchived event.
func NewHabitArchived(h *Habit) *HabitArchived {
	return &HabitArchived{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.archived"),
		HabitID:   h.ID(),
		OwnerID:   h.OwnerID(),
	}
}
