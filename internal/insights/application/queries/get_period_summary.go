package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	habitsDomain "github.com/tendhq/tend/internal/habits/domain"
	journalDomain "github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

// Period selects the summary window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// GoalSummary aggregates the owner's goals for the period.
type GoalSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"`
}

// HabitSummary aggregates the owner's habits as of the reference day.
type HabitSummary struct {
	TotalHabits    int `json:"total_habits"`
	CompletedToday int `json:"completed_today"`
	Rate           int `json:"rate"`
	ActiveStreaks  int `json:"active_streaks"`
	WithMomentum   int `json:"with_momentum"`
}

// DeedSummary aggregates the owner's deeds for the period.
type DeedSummary struct {
	Total int `json:"total"`
}

// ReflectionSummary aggregates the owner's reflections for the period.
type ReflectionSummary struct {
	Total int `json:"total"`
}

// PeriodSummary is the one-screen overview of a period.
type PeriodSummary struct {
	Period      Period            `json:"period"`
	Goals       GoalSummary       `json:"goals"`
	Habits      HabitSummary      `json:"habits"`
	Deeds       DeedSummary       `json:"deeds"`
	Reflections ReflectionSummary `json:"reflections"`
}

// SummaryCache is an optional read-through cache for period summaries.
// Implementations must treat misses and errors identically: (nil, false).
type SummaryCache interface {
	Get(ctx context.Context, ownerID uuid.UUID, period Period) (*PeriodSummary, bool)
	Set(ctx context.Context, ownerID uuid.UUID, period Period, summary *PeriodSummary)
}

// GetPeriodSummaryQuery contains the parameters for the summary read.
type GetPeriodSummaryQuery struct {
	OwnerID uuid.UUID
	Period  Period
}

// GetPeriodSummaryHandler assembles the period summary from the habit and
// journal repositories. All fetches run behind a circuit breaker; any
// failure degrades the whole result to the all-zero summary rather than
// surfacing a partial one.
type GetPeriodSummaryHandler struct {
	habitRepo      habitsDomain.Repository
	goalRepo       journalDomain.GoalRepository
	deedRepo       journalDomain.DeedRepository
	reflectionRepo journalDomain.ReflectionRepository
	cache          SummaryCache
	clock          sharedDomain.Clock
	logger         *slog.Logger
	breaker        *gobreaker.CircuitBreaker[*PeriodSummary]
}

// NewGetPeriodSummaryHandler creates a new GetPeriodSummaryHandler.
// cache may be nil.
func NewGetPeriodSummaryHandler(
	habitRepo habitsDomain.Repository,
	goalRepo journalDomain.GoalRepository,
	deedRepo journalDomain.DeedRepository,
	reflectionRepo journalDomain.ReflectionRepository,
	cache SummaryCache,
	clock sharedDomain.Clock,
	logger *slog.Logger,
) *GetPeriodSummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "period-summary",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &GetPeriodSummaryHandler{
		habitRepo:      habitRepo,
		goalRepo:       goalRepo,
		deedRepo:       deedRepo,
		reflectionRepo: reflectionRepo,
		cache:          cache,
		clock:          clock,
		logger:         logger,
		breaker:        gobreaker.NewCircuitBreaker[*PeriodSummary](settings),
	}
}

// Handle executes the GetPeriodSummaryQuery. It never returns an error for
// collaborator failures: the zero-valued summary is the degraded answer.
func (h *GetPeriodSummaryHandler) Handle(ctx context.Context, query GetPeriodSummaryQuery) *PeriodSummary {
	period := query.Period
	if period == "" {
		period = PeriodToday
	}

	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, query.OwnerID, period); ok {
			return cached
		}
	}

	summary, err := h.breaker.Execute(func() (*PeriodSummary, error) {
		return h.compute(ctx, query.OwnerID, period)
	})
	if err != nil {
		h.logger.Warn("period summary degraded to zero values",
			"owner_id", query.OwnerID,
			"period", string(period),
			"error", err,
		)
		return &PeriodSummary{Period: period}
	}

	if h.cache != nil {
		h.cache.Set(ctx, query.OwnerID, period, summary)
	}
	return summary
}

func (h *GetPeriodSummaryHandler) compute(ctx context.Context, ownerID uuid.UUID, period Period) (*PeriodSummary, error) {
	now := h.clock.Now()
	start, end := periodBounds(period, now)

	habits, err := h.habitRepo.FindActiveByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalGoals, err := h.goalRepo.CountGoals(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	completedGoals, err := h.goalRepo.CountCompletedGoals(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	deeds, err := h.deedRepo.CountDeeds(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	reflections, err := h.reflectionRepo.CountReflections(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	return &PeriodSummary{
		Period: period,
		Goals: GoalSummary{
			Total:     totalGoals,
			Completed: completedGoals,
			Rate:      percentage(completedGoals, totalGoals),
		},
		Habits:      habitSummary(habits, now),
		Deeds:       DeedSummary{Total: deeds},
		Reflections: ReflectionSummary{Total: reflections},
	}, nil
}

func habitSummary(habits []*habitsDomain.Habit, now time.Time) HabitSummary {
	today := habitsDomain.DayOf(now)
	yesterday := today.Prev()

	s := HabitSummary{TotalHabits: len(habits)}
	for _, habit := range habits {
		if habit.Ledger().Get(today) == habitsDomain.StatusCompleted {
			s.CompletedToday++
		}
		if habit.Streak() >= 2 && habit.Ledger().Get(yesterday) == habitsDomain.StatusCompleted {
			s.ActiveStreaks++
		}
		if habit.Streak() > 0 {
			s.WithMomentum++
		}
	}
	s.Rate = percentage(s.CompletedToday, s.TotalHabits)
	return s
}

// periodBounds returns the half-open [start, end) window for a period,
// anchored at the local midnight of now's calendar day.
func periodBounds(period Period, now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)

	switch period {
	case PeriodWeek:
		return midnight.AddDate(0, 0, -6), tomorrow
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), tomorrow
	default:
		return midnight, tomorrow
	}
}
