package catalog

import (
	"context"

	"github.com/sistemaventa/backend/internal/domain/catalog"
	"github.com/sistemaventa/backend/internal/domain/shared"
)

// CategoryService handles the plain create/edit/delete lifecycle of
// product categories.
type CategoryService struct {
	categories shared.Repository[catalog.Category]
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories shared.Repository[catalog.Category]) *CategoryService {
	return &CategoryService{categories: categories}
}

func byID(id uint) shared.Predicate[catalog.Category] {
	return func(c *catalog.Category) bool { return c.ID == id }
}

// List returns every category
func (s *CategoryService) List(ctx context.Context) ([]catalog.Category, error) {
	return s.categories.Query(ctx, nil)
}

// Create persists a new category
func (s *CategoryService) Create(ctx context.Context, category *catalog.Category) (*catalog.Category, error) {
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	if category.ID == 0 {
		return nil, shared.ErrPersistenceFailure
	}
	return category, nil
}

// Edit loads the category by id and overwrites its description and
// active flag.
func (s *CategoryService) Edit(ctx context.Context, category *catalog.Category) (*catalog.Category, error) {
	current, err := s.categories.Get(ctx, byID(category.ID))
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, shared.ErrNotFound
	}

	if err := current.Update(category.Description, category.Active); err != nil {
		return nil, err
	}

	ok, err := s.categories.Edit(ctx, current)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrPersistenceFailure
	}
	return current, nil
}

// Delete removes a category by id
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	current, err := s.categories.Get(ctx, byID(id))
	if err != nil {
		return err
	}
	if current == nil {
		return shared.ErrNotFound
	}

	ok, err := s.categories.Delete(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrPersistenceFailure
	}
	return nil
}
