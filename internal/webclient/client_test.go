package webclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientGet(t *testing.T) {
	t.Run("sends browser headers and returns body", func(t *testing.T) {
		var gotUA, gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		c := New(Options{})
		resp, err := c.Get(context.Background(), srv.URL, "text/html")
		require.NoError(t, err)
		require.Equal(t, "<html></html>", string(resp.Body))
		require.Equal(t, "text/html", resp.ContentType)
		require.Equal(t, DefaultUserAgent, gotUA)
		require.Equal(t, "text/html", gotAccept)
	})

	t.Run("non-200 is a status error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := New(Options{}).Get(context.Background(), srv.URL, "")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("body size is capped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 64)))
		}))
		defer srv.Close()

		_, err := New(Options{MaxBodySize: 16}).Get(context.Background(), srv.URL, "")
		require.ErrorIs(t, err, ErrBodyTooLarge)
	})

	t.Run("timeout aborts slow servers", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := New(Options{Timeout: 50 * time.Millisecond}).Get(context.Background(), srv.URL, "")
		require.Error(t, err)
	})

	t.Run("redirect loops are cut off", func(t *testing.T) {
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, srv.URL+"/loop", http.StatusFound)
		}))
		defer srv.Close()

		_, err := New(Options{}).Get(context.Background(), srv.URL, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "too many redirects")
	})
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://ethereum.org", "https://ethereum.org"},
		{"http://example.com/path?q=1", "http://example.com/path?q=1"},
		{"ethereum.org", "https://ethereum.org"},
		{"  www.aave.com/  ", "https://www.aave.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeURL(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	for _, raw := range []string{"", "   ", "https://", "ftp://files.example", "://broken"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := NormalizeURL(raw)
			require.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}
