package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubStorage_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the content and returns a URL", func(t *testing.T) {
		stub := NewStubStorage()

		url, err := stub.Upload(ctx, strings.NewReader("content"), "carpeta_usuario", "photo.png")
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/carpeta_usuario/photo", url)

		data, ok := stub.Object("carpeta_usuario", "photo.png")
		require.True(t, ok)
		assert.Equal(t, "content", string(data))
	})

	t.Run("overwrites under the same filename", func(t *testing.T) {
		stub := NewStubStorage()

		_, err := stub.Upload(ctx, strings.NewReader("first"), "carpeta_logo", "logo.png")
		require.NoError(t, err)
		_, err = stub.Upload(ctx, strings.NewReader("second"), "carpeta_logo", "logo.png")
		require.NoError(t, err)

		data, _ := stub.Object("carpeta_logo", "logo.png")
		assert.Equal(t, "second", string(data))
		assert.Equal(t, 1, stub.Len())
	})

	t.Run("rejects an empty filename", func(t *testing.T) {
		stub := NewStubStorage()
		_, err := stub.Upload(ctx, strings.NewReader("x"), "carpeta_logo", "")
		assert.Error(t, err)
	})
}

func TestStubStorage_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a stored object", func(t *testing.T) {
		stub := NewStubStorage()
		_, err := stub.Upload(ctx, strings.NewReader("content"), "carpeta_usuario", "photo.png")
		require.NoError(t, err)

		ok, err := stub.Remove(ctx, "carpeta_usuario", "photo.png")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, stub.Len())
	})

	t.Run("reports false for an unknown object", func(t *testing.T) {
		stub := NewStubStorage()
		ok, err := stub.Remove(ctx, "carpeta_usuario", "ghost.png")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPublicID(t *testing.T) {
	assert.Equal(t, "photo", publicID("photo.png"))
	assert.Equal(t, "archive.tar", publicID("archive.tar.gz"))
	assert.Equal(t, "noext", publicID("noext"))
}
