package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// WriteReflectionCommand records a journal reflection.
type WriteReflectionCommand struct {
	OwnerID uuid.UUID
	Text    string
}

// WriteReflectionResult contains the result of writing a reflection.
type WriteReflectionResult struct {
	ReflectionID uuid.UUID
}

// WriteReflectionHandler handles the WriteReflectionCommand.
type WriteReflectionHandler struct {
	reflectionRepo domain.ReflectionRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	clock          sharedDomain.Clock
}

// NewWriteReflectionHandler creates a new WriteReflectionHandler.
func NewWriteReflectionHandler(reflectionRepo domain.ReflectionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *WriteReflectionHandler {
	return &WriteReflectionHandler{
		reflectionRepo: reflectionRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		clock:          clock,
	}
}

// Handle executes the WriteReflectionCommand.
func (h *WriteReflectionHandler) Handle(ctx context.Context, cmd WriteReflectionCommand) (*WriteReflectionResult, error) {
	var result *WriteReflectionResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		reflection, err := domain.NewReflection(cmd.OwnerID, cmd.Text, h.clock.Now())
		if err != nil {
			return err
		}

		if err := h.reflectionRepo.Save(txCtx, reflection); err != nil {
			return err
		}

		events := reflection.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.OwnerID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &WriteReflectionResult{ReflectionID: reflection.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
