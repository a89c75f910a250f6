package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	ErrGoalEmptyTitle       = errors.New("goal title cannot be empty")
	ErrGoalAlreadyCompleted = errors.New("goal is already completed")
)

// Goal is a dated intention the owner wants to finish within a period.
type Goal struct {
	sharedDomain.BaseAggregateRoot
	ownerID     uuid.UUID
	title       string
	completed   bool
	completedAt *time.Time
}

// NewGoal creates a new open goal.
func NewGoal(ownerID uuid.UUID, title string) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrGoalEmptyTitle
	}

	g := &Goal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		title:             title,
	}
	g.AddDomainEvent(NewGoalAdded(g))
	return g, nil
}

func (g *Goal) OwnerID() uuid.UUID      { return g.ownerID }
func (g *Goal) Title() string           { return g.title }
func (g *Goal) IsCompleted() bool       { return g.completed }
func (g *Goal) CompletedAt() *time.Time { return g.completedAt }

// Complete marks the goal as done. Completing twice is an error so callers
// can distinguish a stale command from a fresh one.
func (g *Goal) Complete(now time.Time) error {
	if g.completed {
		return ErrGoalAlreadyCompleted
	}
	g.completed = true
	g.completedAt = &now
	g.Touch()
	g.AddDomainEvent(NewGoalCompleted(g))
	return nil
}

// RehydrateGoal recreates a goal from persisted state without emitting events.
func RehydrateGoal(id, ownerID uuid.UUID, title string, completed bool, completedAt *time.Time, createdAt, updatedAt time.Time) *Goal {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Goal{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		ownerID:           ownerID,
		title:             title,
		completed:         completed,
		completedAt:       completedAt,
	}
}
