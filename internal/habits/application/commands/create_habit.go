package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// CreateHabitCommand contains the data needed to create a habit.
type CreateHabitCommand struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}

// CreateHabitResult contains the result of creating a habit.
type CreateHabitResult struct {
	HabitID uuid.UUID
	Name    string
}

// CreateHabitHandler handles the CreateHabitCommand.
type CreateHabitHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateHabitHandler creates a new CreateHabitHandler.
func NewCreateHabitHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateHabitHandler {
	return &CreateHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateHabitCommand.
func (h *CreateHabitHandler) Handle(ctx context.Context, cmd CreateHabitCommand) (*CreateHabitResult, error) {
	var result *CreateHabitResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := domain.NewHabit(cmd.OwnerID, cmd.Name, cmd.Description)
		if err != nil {
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

		result = &CreateHabitResult{
			HabitID: habit.ID(),
			Name:    habit.Name(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
