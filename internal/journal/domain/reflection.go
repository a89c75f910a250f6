package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var ErrReflectionEmptyText = errors.New("reflection text cannot be empty")

// Reflection is a free-form journal entry.
type Reflection struct {
	sharedDomain.BaseAggregateRoot
	ownerID   uuid.UUID
	text      string
	writtenAt time.Time
}

// NewReflection records a reflection written at the given instant.
func NewReflection(ownerID uuid.UUID, text string, writtenAt time.Time) (*Reflection, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrReflectionEmptyText
	}

	r := &Reflection{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		text:              text,
		writtenAt:         writtenAt,
	}
	r.AddDomainEvent(NewReflectionWritten(r))
	return r, nil
}

func (r *Reflection) OwnerID() uuid.UUID   { return r.ownerID }
func (r *Reflection) Text() string         { return r.text }
func (r *Reflection) WrittenAt() time.Time { return r.writtenAt }

// RehydrateReflection recreates a reflection from persisted state.
func RehydrateReflection(id, ownerID uuid.UUID, text string, writtenAt, createdAt, updatedAt time.Time) *Reflection {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Reflection{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		ownerID:           ownerID,
		text:              text,
		writtenAt:         writtenAt,
	}
}
