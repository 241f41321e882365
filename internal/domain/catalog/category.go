package catalog

import (
	"strings"

	"github.com/sistemaventa/backend/internal/domain/shared"
)

// Category represents a product category in the catalog
type Category struct {
	shared.BaseEntity
	Description string `gorm:"type:varchar(50);not null" json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates an active category with a validated description
func NewCategory(description string) (*Category, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Category description is required")
	}

	return &Category{
		Description: description,
		Active:      true,
	}, nil
}

// Update overwrites the mutable fields of the category
func (c *Category) Update(description string, active bool) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("VALIDATION_FAILURE", "Category description is required")
	}

	c.Description = description
	c.Active = active
	return nil
}
