package persistence

import (
	"context"

	"github.com/sistemaventa/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository implements shared.Repository for one entity type on
// top of GORM. Predicates are evaluated in process against the loaded
// rows, keeping them opaque to the store; row counts here are small
// reference and resource tables.
//
// Reads preload every association; writes omit them, so reference
// rows (roles) are never touched through a resource write.
type GormRepository[T any] struct {
	db      *gorm.DB
	orderBy string
}

// NewGormRepository creates a repository ordered by the integer
// primary key, which fixes the Get tie-break for non-unique
// predicates.
func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db, orderBy: "id"}
}

// NewGormRepositoryOrdered creates a repository with a custom order
// expression, for tables without an id column.
func NewGormRepositoryOrdered[T any](db *gorm.DB, orderBy string) *GormRepository[T] {
	return &GormRepository[T]{db: db, orderBy: orderBy}
}

// Query returns all entities matching the predicate in primary-key order
func (r *GormRepository[T]) Query(ctx context.Context, pred shared.Predicate[T]) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Preload(clause.Associations).
		Order(r.orderBy).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return rows, nil
	}

	matches := make([]T, 0, len(rows))
	for i := range rows {
		if pred(&rows[i]) {
			matches = append(matches, rows[i])
		}
	}
	return matches, nil
}

// Get returns the first match in primary-key order, or nil when absent
func (r *GormRepository[T]) Get(ctx context.Context, pred shared.Predicate[T]) (*T, error) {
	rows, err := r.Query(ctx, pred)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Create inserts the entity; the store-assigned identity is written back
func (r *GormRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(entity).Error
}

// Edit writes the entity back and reports whether a row was affected
func (r *GormRepository[T]) Edit(ctx context.Context, entity *T) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(entity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the entity by primary key and reports whether a row
// was affected
func (r *GormRepository[T]) Delete(ctx context.Context, entity *T) (bool, error) {
	res := r.db.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
