package shared

import "context"

// Predicate is an opaque boolean-valued filter over one entity.
// Repositories evaluate it against every candidate row; callers never
// hand the store a query-expression type.
type Predicate[T any] func(*T) bool

// Repository is the base interface for all repositories. It operates
// on one entity type at a time.
//
// Get with a predicate that matches more than one row returns the
// first match in primary-key order; rely on that only when the
// predicate is known to be unique.
type Repository[T any] interface {
	// Query returns all entities matching the predicate, in
	// primary-key order. A nil predicate matches everything.
	Query(ctx context.Context, pred Predicate[T]) ([]T, error)

	// Get returns the first entity matching the predicate, or nil
	// (with a nil error) when nothing matches.
	Get(ctx context.Context, pred Predicate[T]) (*T, error)

	// Create persists a new entity. On success the store-assigned
	// identity is written back; an identity of zero signals that the
	// insert took no effect.
	Create(ctx context.Context, entity *T) error

	// Edit writes back an entity previously obtained from this
	// repository. It reports whether the write affected a row.
	Edit(ctx context.Context, entity *T) (bool, error)

	// Delete removes the entity and reports whether a row was
	// actually deleted.
	Delete(ctx context.Context, entity *T) (bool, error)
}
