package httpads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nico-ST/SvenSwipe/internal/ads"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provider(url string) *HTTPProvider {
	return &HTTPProvider{
		URL:    url,
		Logger: logger.New(logger.Opts{}),
		Client: http.DefaultClient,
	}
}

func TestLoadReportsHeight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "320", r.URL.Query().Get("width"))
		w.Header().Set("X-Banner-Height", "50")
		_, _ = w.Write([]byte("creative-bytes"))
	}))
	defer srv.Close()

	banner, err := provider(srv.URL).Load(context.Background(), 320)
	require.NoError(t, err)
	assert.Equal(t, 50, banner.Height)
	assert.Equal(t, []byte("creative-bytes"), banner.Creative)
}

func TestLoadFailuresYieldNoBanner(t *testing.T) {
	t.Run("no fill", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		_, err := provider(srv.URL).Load(context.Background(), 320)
		assert.ErrorIs(t, err, ads.ErrNoFill)
	})

	t.Run("missing height header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("x"))
		}))
		defer srv.Close()

		_, err := provider(srv.URL).Load(context.Background(), 320)
		assert.Error(t, err)
	})

	t.Run("unconfigured server", func(t *testing.T) {
		_, err := provider("").Load(context.Background(), 320)
		assert.ErrorIs(t, err, ads.ErrNoFill)
	})
}
