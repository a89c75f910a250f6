package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
)

// ErrHabitNotFound is returned when a habit is not found.
var ErrHabitNotFound = errors.New("habit not found")

// GetHabitQuery contains the parameters for getting a single habit.
type GetHabitQuery struct {
	HabitID uuid.UUID
	OwnerID uuid.UUID
}

// GetHabitHandler handles the GetHabitQuery.
type GetHabitHandler struct {
	habitRepo domain.Repository
}

// NewGetHabitHandler creates a new GetHabitHandler.
func NewGetHabitHandler(habitRepo domain.Repository) *GetHabitHandler {
	return &GetHabitHandler{habitRepo: habitRepo}
}

// Handle executes the GetHabitQuery. A habit owned by someone else is
// indistinguishable from a missing one.
func (h *GetHabitHandler) Handle(ctx context.Context, query GetHabitQuery) (*HabitDTO, error) {
	habit, err := h.habitRepo.FindByID(ctx, query.HabitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrHabitNotFound
	}
	if habit.OwnerID() != query.OwnerID {
		return nil, ErrHabitNotFound
	}

	dto := toHabitDTO(habit, time.Now())
	return &dto, nil
}
