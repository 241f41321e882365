package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates an active category", func(t *testing.T) {
		category, err := NewCategory("Bebidas")
		require.NoError(t, err)
		assert.Equal(t, "Bebidas", category.Description)
		assert.True(t, category.Active)
	})

	t.Run("trims the description", func(t *testing.T) {
		category, err := NewCategory("  Abarrotes  ")
		require.NoError(t, err)
		assert.Equal(t, "Abarrotes", category.Description)
	})

	t.Run("rejects a blank description", func(t *testing.T) {
		_, err := NewCategory("   ")
		assert.Error(t, err)
	})
}

func TestCategoryUpdate(t *testing.T) {
	category, err := NewCategory("Bebidas")
	require.NoError(t, err)

	t.Run("overwrites description and active flag", func(t *testing.T) {
		require.NoError(t, category.Update("Licores", false))
		assert.Equal(t, "Licores", category.Description)
		assert.False(t, category.Active)
	})

	t.Run("rejects a blank description", func(t *testing.T) {
		assert.Error(t, category.Update("", true))
	})
}
