package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// ArchiveHabitCommand contains the data needed to archive a habit.
type ArchiveHabitCommand struct {
	HabitID uuid.UUID
	OwnerID uuid.UUID
}

// ArchiveHabitHandler handles the ArchiveHabitCommand.
type ArchiveHabitHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewArchiveHabitHandler creates a new ArchiveHabitHandler.
func NewArchiveHabitHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ArchiveHabitHandler {
	return &ArchiveHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the ArchiveHabitCommand.
func (h *ArchiveHabitHandler) Handle(ctx context.Context, cmd ArchiveHabitCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
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

		habit.Archive()

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		events := habit.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.OwnerID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
