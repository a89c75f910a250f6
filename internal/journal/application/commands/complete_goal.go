package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// CompleteGoalCommand marks a goal as done.
type CompleteGoalCommand struct {
	GoalID  uuid.UUID
	OwnerID uuid.UUID
}

// CompleteGoalHandler handles the CompleteGoalCommand.
type CompleteGoalHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewCompleteGoalHandler creates a new CompleteGoalHandler.
func NewCompleteGoalHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *CompleteGoalHandler {
	return &CompleteGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the CompleteGoalCommand.
func (h *CompleteGoalHandler) Handle(ctx context.Context, cmd CompleteGoalCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.goalRepo.FindByID(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}
		if goal == nil {
			return ErrGoalNotFound
		}
		if goal.OwnerID() != cmd.OwnerID {
			return ErrNotOwner
		}

		if err := goal.Complete(h.clock.Now()); err != nil {
			return err
		}

		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}

		events := goal.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.OwnerID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
