package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// UpdateReminderCommand sets or clears a habit's reminder schedule.
// An empty ReminderTime clears the reminder entirely.
type UpdateReminderCommand struct {
	HabitID      uuid.UUID
	OwnerID      uuid.UUID
	ReminderTime string
	ReminderDays []time.Weekday
}

// UpdateReminderResult contains the schedule after the update.
type UpdateReminderResult struct {
	HabitID      uuid.UUID
	ReminderTime string
	ReminderDays []time.Weekday
}

// UpdateReminderHandler handles the UpdateReminderCommand.
type UpdateReminderHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateReminderHandler creates a new UpdateReminderHandler.
func NewUpdateReminderHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateReminderHandler {
	return &UpdateReminderHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateReminderCommand.
func (h *UpdateReminderHandler) Handle(ctx context.Context, cmd UpdateReminderCommand) (*UpdateReminderResult, error) {
	var result *UpdateReminderResult

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

		if err := habit.SetReminder(cmd.ReminderTime, cmd.ReminderDays); err != nil {
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

		result = &UpdateReminderResult{
			HabitID:      habit.ID(),
			ReminderTime: habit.ReminderTime(),
			ReminderDays: habit.ReminderDays(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
