package shared

import "time"

// Entity is the base interface for all ledger entities
type Entity interface {
	GetID() int64
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities.
// IDs are assigned by the tenant database sequence on insert.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// IsNew reports whether the entity has not been persisted yet
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}

// NewBaseEntity creates a base entity stamped with the given time
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp
func (e *BaseEntity) Touch(now time.Time) {
	e.UpdatedAt = now
}
