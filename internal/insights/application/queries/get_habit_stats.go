package queries

import (
	"context"
	"errors"

	"github.com/google/uuid"

	habitsDomain "github.com/tendhq/tend/internal/habits/domain"
)

// ErrHabitNotFound is returned when a habit is not found.
var ErrHabitNotFound = errors.New("habit not found")

// HabitStatsDTO carries every per-habit aggregation in one read.
type HabitStatsDTO struct {
	HabitID       uuid.UUID
	Name          string
	Streak        int
	LongestStreak int
	TrackedDays   int
	CompletedDays int
	OverallRate   int // completed/tracked over the whole ledger
	Weekdays      map[string]BreakdownBucket
	Months        []MonthBucket
	Runs          []StreakRun
}

// GetHabitStatsQuery contains the parameters for the per-habit stats read.
type GetHabitStatsQuery struct {
	HabitID uuid.UUID
	OwnerID uuid.UUID
}

// GetHabitStatsHandler handles the GetHabitStatsQuery.
type GetHabitStatsHandler struct {
	habitRepo habitsDomain.Repository
}

// NewGetHabitStatsHandler creates a new GetHabitStatsHandler.
func NewGetHabitStatsHandler(habitRepo habitsDomain.Repository) *GetHabitStatsHandler {
	return &GetHabitStatsHandler{habitRepo: habitRepo}
}

// Handle executes the GetHabitStatsQuery.
func (h *GetHabitStatsHandler) Handle(ctx context.Context, query GetHabitStatsQuery) (*HabitStatsDTO, error) {
	habit, err := h.habitRepo.FindByID(ctx, query.HabitID)
	if err != nil {
		return nil, err
	}
	if habit == nil || habit.OwnerID() != query.OwnerID {
		return nil, ErrHabitNotFound
	}

	tracked := habit.Ledger().TrackedDays()
	completed := habit.Ledger().CompletedDays()

	return &HabitStatsDTO{
		HabitID:       habit.ID(),
		Name:          habit.Name(),
		Streak:        habit.Streak(),
		LongestStreak: habit.LongestStreak(),
		TrackedDays:   len(tracked),
		CompletedDays: len(completed),
		OverallRate:   percentage(len(completed), len(tracked)),
		Weekdays:      WeekdayBreakdown(habit),
		Months:        MonthlyBreakdown(habit),
		Runs:          StreakRuns(habit),
	}, nil
}
