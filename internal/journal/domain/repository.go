package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GoalRepository persists goals. Period counts use [start, end).
type GoalRepository interface {
	Save(ctx context.Context, goal *Goal) error
	// FindByID returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error)
	CountGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error)
	CountCompletedGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error)
}

// DeedRepository persists deeds.
type DeedRepository interface {
	Save(ctx context.Context, deed *Deed) error
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Deed, error)
	CountDeeds(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error)
}

// ReflectionRepository persists reflections.
type ReflectionRepository interface {
	Save(ctx context.Context, reflection *Reflection) error
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Reflection, error)
	CountReflections(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error)
}
