package description

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jakoblorz/go-builderdata/internal/webclient"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantText   string
		wantSource Source
	}{
		{
			name:       "meta description",
			html:       `<html><head><meta name="description" content="  Decentralized platform  "></head></html>`,
			wantText:   "Decentralized platform",
			wantSource: SourceMetaDescription,
		},
		{
			name: "meta description wins over open graph",
			html: `<head>
				<meta property="og:description" content="From OG">
				<meta name="description" content="From meta">
			</head>`,
			wantText:   "From meta",
			wantSource: SourceMetaDescription,
		},
		{
			name:       "open graph when description is missing",
			html:       `<head><meta property="og:description" content="Open graph text"></head>`,
			wantText:   "Open graph text",
			wantSource: SourceOpenGraph,
		},
		{
			name: "empty meta description falls through",
			html: `<head>
				<meta name="description" content="   ">
				<meta property="og:description" content="Second choice">
			</head>`,
			wantText:   "Second choice",
			wantSource: SourceOpenGraph,
		},
		{
			name:       "twitter card",
			html:       `<head><meta name="twitter:description" content="Card text"></head>`,
			wantText:   "Card text",
			wantSource: SourceTwitterCard,
		},
		{
			name:       "first paragraph fallback",
			html:       `<body><p>  A lending protocol for   digital assets. </p><p>Other</p></body>`,
			wantText:   "A lending protocol for digital assets.",
			wantSource: SourceParagraph,
		},
		{
			name:       "short paragraph is ignored",
			html:       `<body><p>Home</p></body>`,
			wantText:   "",
			wantSource: SourceNone,
		},
		{
			name:       "overlong paragraph is ignored",
			html:       "<body><p>" + strings.Repeat("word ", 120) + "</p></body>",
			wantText:   "",
			wantSource: SourceNone,
		},
		{
			name:       "nothing found",
			html:       `<html><head><title>Hi</title></head><body></body></html>`,
			wantText:   "",
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, source, err := Extract([]byte(tt.html))
			require.NoError(t, err)
			require.Equal(t, tt.wantText, text)
			require.Equal(t, tt.wantSource, source)
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><meta name="description" content=" X "></head></html>`))
	})
	mux.HandleFunc("/blank", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`<html></html>`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(webclient.New(webclient.Options{}))

	t.Run("returns trimmed meta description", func(t *testing.T) {
		res := f.Fetch(context.Background(), srv.URL+"/ok")
		require.True(t, res.Found())
		require.True(t, res.Attempted)
		require.Equal(t, "X", res.Text)
		require.Equal(t, SourceMetaDescription, res.Source)
	})

	t.Run("page without description", func(t *testing.T) {
		res := f.Fetch(context.Background(), srv.URL+"/blank")
		require.False(t, res.Found())
		require.True(t, res.Attempted)
		require.Equal(t, "no description found", res.Reason)
	})

	t.Run("server error degrades to empty", func(t *testing.T) {
		res := f.Fetch(context.Background(), srv.URL+"/broken")
		require.False(t, res.Found())
		require.True(t, res.Attempted)
		require.Contains(t, res.Reason, "500")
	})

	t.Run("empty url makes no request", func(t *testing.T) {
		before := atomic.LoadInt32(&hits)
		res := f.Fetch(context.Background(), "")
		require.False(t, res.Found())
		require.False(t, res.Attempted)
		require.Equal(t, before, atomic.LoadInt32(&hits))
	})

	t.Run("invalid url degrades to empty without a request", func(t *testing.T) {
		for _, homepage := range []string{"://not a url", "ftp://files.example", "https://"} {
			res := f.Fetch(context.Background(), homepage)
			require.False(t, res.Found(), homepage)
			require.False(t, res.Attempted, homepage)
			require.Contains(t, res.Reason, "invalid url", homepage)
		}
	})
}
