package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ID is the opaque identifier of every persisted entity.
type ID = uuid.UUID

// Base carries the identity and audit columns shared by all tables.
// The ID is assigned by the persistence layer on first save.
type Base struct {
	ID        ID        `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a fresh ID to rows that don't have one yet.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsNew reports whether the entity has never been saved.
func (b *Base) IsNew() bool {
	return b.ID == uuid.Nil
}

// ParseID parses the textual form of an ID.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// EntityID returns the identifier, satisfying interfaces that only need it.
func (b Base) EntityID() ID {
	return b.ID
}
