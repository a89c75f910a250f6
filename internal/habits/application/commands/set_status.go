package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrNotOwner      = errors.New("user does not own this habit")
)

// SetStatusCommand records the outcome for one calendar day. An empty Day
// targets the current day.
type SetStatusCommand struct {
	HabitID uuid.UUID
	OwnerID uuid.UUID
	Day     string
	Status  string
}

// SetStatusResult contains the habit state after the edit.
type SetStatusResult struct {
	HabitID       uuid.UUID
	Day           string
	Status        domain.Status
	TodayStatus   domain.Status
	Streak        int
	LongestStreak int
}

// SetStatusHandler handles the SetStatusCommand.
type SetStatusHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewSetStatusHandler creates a new SetStatusHandler.
func NewSetStatusHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *SetStatusHandler {
	return &SetStatusHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the SetStatusCommand.
func (h *SetStatusHandler) Handle(ctx context.Context, cmd SetStatusCommand) (*SetStatusResult, error) {
	now := h.clock.Now()

	day := domain.DayOf(now)
	if cmd.Day != "" {
		parsed, err := domain.ParseDayKey(cmd.Day)
		if err != nil {
			return nil, err
		}
		day = parsed
	}

	var result *SetStatusResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return ErrHabitNotFound
		}
		if habit.OwnerID() != cmd.OwnerID {
			return ErrNotOwner
		}

		if err := habit.SetStatus(day, domain.Status(cmd.Status), now); err != nil {
			return err
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		events := habit.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.OwnerID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &SetStatusResult{
			HabitID:       habit.ID(),
			Day:           day.String(),
			Status:        domain.Status(cmd.Status),
			TodayStatus:   habit.TodayStatus(),
			Streak:        habit.Streak(),
			LongestStreak: habit.LongestStreak(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
