package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

// GoalAdded is emitted when a goal is created.
type GoalAdded struct {
	sharedDomain.BaseEvent
	GoalID  uuid.UUID `json:"goal_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Title   string    `json:"title"`
}

// NewGoalAdded creates a GoalAdded event.
func NewGoalAdded(g *Goal) *GoalAdded {
	return &GoalAdded{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), "Goal", "journal.goal.added"),
		GoalID:    g.ID(),
		OwnerID:   g.OwnerID(),
		Title:     g.Title(),
	}
}

// GoalCompleted is emitted when a goal is marked done.
type GoalCompleted struct {
	sharedDomain.BaseEvent
	GoalID      uuid.UUID  `json:"goal_id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(g *Goal) *GoalCompleted {
	return &GoalCompleted{
		BaseEvent:   sharedDomain.NewBaseEvent(g.ID(), "Goal", "journal.goal.completed"),
		GoalID:      g.ID(),
		OwnerID:     g.OwnerID(),
		CompletedAt: g.CompletedAt(),
	}
}

// DeedRecorded is emitted when a deed is recorded.
type DeedRecorded struct {
	sharedDomain.BaseEvent
	DeedID  uuid.UUID `json:"deed_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	DoneAt  time.Time `json:"done_at"`
}

// NewDeedRecorded creates a DeedRecorded event.
func NewDeedRecorded(d *Deed) *DeedRecorded {
	return &DeedRecorded{
		BaseEvent: sharedDomain.NewBaseEvent(d.ID(), "Deed", "journal.deed.recorded"),
		DeedID:    d.ID(),
		OwnerID:   d.OwnerID(),
		DoneAt:    d.DoneAt(),
	}
}

// ReflectionWritten is emitted when a reflection is written.
type ReflectionWritten struct {
	sharedDomain.BaseEvent
	ReflectionID uuid.UUID `json:"reflection_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	WrittenAt    time.Time `json:"written_at"`
}

// NewReflectionWritten creates a ReflectionWritten event.
func NewReflectionWritten(r *Reflection) *ReflectionWritten {
	return &ReflectionWritten{
		BaseEvent:    sharedDomain.NewBaseEvent(r.ID(), "Reflection", "journal.reflection.written"),
		ReflectionID: r.ID(),
		OwnerID:      r.OwnerID(),
		WrittenAt:    r.WrittenAt(),
	}
}
