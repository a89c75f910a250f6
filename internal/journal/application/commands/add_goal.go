package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrNotOwner     = errors.New("user does not own this entry")
)

// AddGoalCommand contains the data needed to add a goal.
type AddGoalCommand struct {
	OwnerID uuid.UUID
	Title   string
}

// AddGoalResult contains the result of adding a goal.
type AddGoalResult struct {
	GoalID uuid.UUID
	Title  string
}

// AddGoalHandler handles the AddGoalCommand.
type AddGoalHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewAddGoalHandler creates a new AddGoalHandler.
func NewAddGoalHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *AddGoalHandler {
	return &AddGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the AddGoalCommand.
func (h *AddGoalHandler) Handle(ctx context.Context, cmd AddGoalCommand) (*AddGoalResult, error) {
	var result *AddGoalResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := domain.NewGoal(cmd.OwnerID, cmd.Title)
		if err != nil {
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
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &AddGoalResult{GoalID: goal.ID(), Title: goal.Title()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
