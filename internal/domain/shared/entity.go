package shared

import "time"

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uint
	GetCreatedAt() time.Time
}

// BaseEntity provides common fields for all entities.
// The identity is assigned by the store on insert; a zero ID therefore
// marks an entity that has never been persisted.
type BaseEntity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uint {
	return e.ID
}

// GetCreatedAt returns the registration timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}
