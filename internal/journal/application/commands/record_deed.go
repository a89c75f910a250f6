package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// RecordDeedCommand records a good deed.
type RecordDeedCommand struct {
	OwnerID uuid.UUID
	Note    string
}

// RecordDeedResult contains the result of recording a deed.
type RecordDeedResult struct {
	DeedID uuid.UUID
}

// RecordDeedHandler handles the RecordDeedCommand.
type RecordDeedHandler struct {
	deedRepo   domain.DeedRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewRecordDeedHandler creates a new RecordDeedHandler.
func NewRecordDeedHandler(deedRepo domain.DeedRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *RecordDeedHandler {
	return &RecordDeedHandler{
		deedRepo:   deedRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the RecordDeedCommand.
func (h *RecordDeedHandler) Handle(ctx context.Context, cmd RecordDeedCommand) (*RecordDeedResult, error) {
	var result *RecordDeedResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		deed, err := domain.NewDeed(cmd.OwnerID, cmd.Note, h.clock.Now())
		if err != nil {
			return err
		}

		if err := h.deedRepo.Save(txCtx, deed); err != nil {
			return err
		}

		events := deed.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.OwnerID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &RecordDeedResult{DeedID: deed.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
