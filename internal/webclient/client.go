// Package webclient wraps net/http with the settings shared by the logo and
// description fetchers: a per-request timeout, browser-like headers, a cookie
// jar and a response size cap.
package webclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultUserAgent resembles a desktop browser; some sites refuse
	// requests from obvious HTTP libraries.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 5 << 20

	maxRedirects = 5
)

var (
	ErrBodyTooLarge = errors.New("response body too large")
	ErrInvalidURL   = errors.New("invalid url")
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

// Response is a fully read 200 response.
type Response struct {
	Body        []byte
	ContentType string
	FinalURL    string
}

// Client performs single-attempt GET requests.
type Client struct {
	http        *http.Client
	userAgent   string
	maxBodySize int64
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}

	// cookiejar.New never returns a non-nil error
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (max %d)", maxRedirects)
				}
				return nil
			},
		},
		userAgent:   opts.UserAgent,
		maxBodySize: opts.MaxBodySize,
	}
}

// HTTPClient exposes the underlying client for SDKs that take an *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Get fetches url and returns the body of a 200 response. Any other status is
// reported as a *StatusError.
func (c *Client) Get(ctx context.Context, url, accept string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("%w (exceeds %d bytes)", ErrBodyTooLarge, c.maxBodySize)
	}

	return &Response{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// NormalizeURL turns a homepage as typed into a CSV cell into an absolute
// http(s) URL. A missing scheme becomes https. Anything that still lacks a
// host or uses another scheme is rejected with ErrInvalidURL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: no host in %q", ErrInvalidURL, raw)
	}

	return u.String(), nil
}
