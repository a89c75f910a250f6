package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var ErrDeedEmptyNote = errors.New("deed note cannot be empty")

// Deed records a good deed done at a point in time.
type Deed struct {
	sharedDomain.BaseAggregateRoot
	ownerID uuid.UUID
	note    string
	doneAt  time.Time
}

// NewDeed records a deed done at the given instant.
func NewDeed(ownerID uuid.UUID, note string, doneAt time.Time) (*Deed, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrDeedEmptyNote
	}

	d := &Deed{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		note:              note,
		doneAt:            doneAt,
	}
	d.AddDomainEvent(NewDeedRecorded(d))
	return d, nil
}

func (d *Deed) OwnerID() uuid.UUID { return d.ownerID }
func (d *Deed) Note() string       { return d.note }
func (d *Deed) DoneAt() time.Time  { return d.doneAt }

// RehydrateDeed recreates a deed from persisted state without emitting events.
func RehydrateDeed(id, ownerID uuid.UUID, note string, doneAt, createdAt, updatedAt time.Time) *Deed {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Deed{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		ownerID:           ownerID,
		note:              note,
		doneAt:            doneAt,
	}
}
