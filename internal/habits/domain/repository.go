package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for habit persistence.
type Repository interface {
	// Save persists a habit (create or update).
	Save(ctx context.Context, habit *Habit) error

	// FindByID finds a habit by its ID. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)

	// FindByOwnerID finds all habits for an owner.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Habit, error)

	// FindActiveByOwnerID finds all non-archived habits for an owner.
	FindActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Habit, error)

	// FindDueToday finds habits scheduled for the current date.
	FindDueToday(ctx context.Context, ownerID uuid.UUID) ([]*Habit, error)

	// Delete removes a habit and its ledger entries.
	Delete(ctx context.Context, id uuid.UUID) error
}
