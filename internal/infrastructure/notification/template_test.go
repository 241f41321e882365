package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestHTTPTemplateFetcher_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the body of a 200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html>Hola</html>"))
		}))
		defer srv.Close()

		body, err := NewHTTPTemplateFetcher(0).Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html>Hola</html>", body)
	})

	t.Run("decodes a non-utf8 charset", func(t *testing.T) {
		encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("Contraseña"))
		require.NoError(t, err)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write(encoded)
		}))
		defer srv.Close()

		body, err := NewHTTPTemplateFetcher(0).Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "Contraseña", body)
	})

	t.Run("reads an unknown charset as-is", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=x-no-such-charset")
			_, _ = w.Write([]byte("plain"))
		}))
		defer srv.Close()

		body, err := NewHTTPTemplateFetcher(0).Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "plain", body)
	})

	t.Run("rejects a non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := NewHTTPTemplateFetcher(0).Fetch(ctx, srv.URL)
		assert.Error(t, err)
	})

	t.Run("times out a slow server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		_, err := NewHTTPTemplateFetcher(50 * time.Millisecond).Fetch(ctx, srv.URL)
		assert.Error(t, err)
	})

	t.Run("rejects an unreachable URL", func(t *testing.T) {
		_, err := NewHTTPTemplateFetcher(time.Second).Fetch(ctx, "http://127.0.0.1:1")
		assert.Error(t, err)
	})
}
