package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
)

// HabitDTO is a data transfer object for habits.
type HabitDTO struct {
	ID            uuid.UUID
	Name          string
	Description   string
	TodayStatus   string
	Streak        int
	LongestStreak int
	LastCompleted *time.Time
	TrackedDays   int
	ReminderTime  string
	ReminderDays  []time.Weekday
	IsArchived    bool
	IsDueToday    bool
	CreatedAt     time.Time
}

// ListHabitsQuery contains the parameters for listing habits.
type ListHabitsQuery struct {
	OwnerID         uuid.UUID
	IncludeArchived bool
	OnlyDueToday    bool
	HasStreak       bool   // only habits with a live streak
	SortBy          string // "streak", "longest_streak", "name", "created_at"
	SortOrder       string // "asc", "desc"
}

// ListHabitsHandler handles the ListHabitsQuery.
type ListHabitsHandler struct {
	habitRepo domain.Repository
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(habitRepo domain.Repository) *ListHabitsHandler {
	return &ListHabitsHandler{habitRepo: habitRepo}
}

// Handle executes the ListHabitsQuery.
func (h *ListHabitsHandler) Handle(ctx context.Context, query ListHabitsQuery) ([]HabitDTO, error) {
	var habits []*domain.Habit
	var err error

	switch {
	case query.OnlyDueToday:
		habits, err = h.habitRepo.FindDueToday(ctx, query.OwnerID)
	case query.IncludeArchived:
		habits, err = h.habitRepo.FindByOwnerID(ctx, query.OwnerID)
	default:
		habits, err = h.habitRepo.FindActiveByOwnerID(ctx, query.OwnerID)
	}
	if err != nil {
		return nil, err
	}

	if query.HasStreak {
		habits = filterHasStreak(habits)
	}

	sortHabits(habits, query.SortBy, query.SortOrder)

	return toHabitDTOs(habits), nil
}

func filterHasStreak(habits []*domain.Habit) []*domain.Habit {
	var filtered []*domain.Habit
	for _, h := range habits {
		if h.Streak() > 0 {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

func sortHabits(habits []*domain.Habit, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	desc := sortOrder != "asc"

	sort.SliceStable(habits, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "streak":
			return habits[i].Streak() < habits[j].Streak()
		case "longest_streak":
			return habits[i].LongestStreak() < habits[j].LongestStreak()
		case "created_at":
			return habits[i].CreatedAt().Before(habits[j].CreatedAt())
		default:
			return habits[i].Name() < habits[j].Name()
		}
	})
}

func toHabitDTOs(habits []*domain.Habit) []HabitDTO {
	today := time.Now()
	dtos := make([]HabitDTO, len(habits))
	for i, h := range habits {
		dtos[i] = toHabitDTO(h, today)
	}
	return dtos
}

func toHabitDTO(h *domain.Habit, today time.Time) HabitDTO {
	return HabitDTO{
		ID:            h.ID(),
		Name:          h.Name(),
		Description:   h.Description(),
		TodayStatus:   string(h.TodayStatus()),
		Streak:        h.Streak(),
		LongestStreak: h.LongestStreak(),
		LastCompleted: h.LastCompleted(),
		TrackedDays:   h.Ledger().Len(),
		ReminderTime:  h.ReminderTime(),
		ReminderDays:  h.ReminderDays(),
		IsArchived:    h.IsArchived(),
		IsDueToday:    h.IsDueOn(today),
		CreatedAt:     h.CreatedAt(),
	}
}
