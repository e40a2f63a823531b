// Package logo downloads project avatars for the output image tree.
package logo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/jakoblorz/go-builderdata/internal/webclient"
)

// DefaultAvatarBaseURL is the unavatar.io service resolving social handles
// to profile images.
const DefaultAvatarBaseURL = "https://unavatar.io"

const imageAccept = "image/avif,image/webp,image/png,image/*;q=0.8,*/*;q=0.5"

// Source names the service a logo came from.
type Source string

const (
	SourceNone     Source = ""
	SourceUnavatar Source = "unavatar"
	SourceGitHub   Source = "github"
)

// Result describes a single logo attempt. Failures are values, not errors:
// a missing logo never stops a run.
type Result struct {
	OK     bool
	Source Source

	// Attempted is true when a network request was made
	Attempted bool

	// Requests counts the HTTP calls behind the result. The GitHub
	// fallback makes two: the users API lookup and the avatar download.
	Requests int

	// Reason explains a failure
	Reason string
}

func failed(source Source, requests int, format string, args ...any) Result {
	return Result{Source: source, Attempted: requests > 0, Requests: requests, Reason: fmt.Sprintf(format, args...)}
}

// Fetcher downloads avatars and stores them through a FileSystem.
type Fetcher struct {
	fs            filesystem.FileSystem
	client        *webclient.Client
	avatarBaseURL string
	gh            *github.Client
}

// NewFetcher creates a Fetcher. An empty avatarBaseURL selects unavatar.io.
func NewFetcher(fs filesystem.FileSystem, client *webclient.Client, avatarBaseURL string) *Fetcher {
	if avatarBaseURL == "" {
		avatarBaseURL = DefaultAvatarBaseURL
	}

	return &Fetcher{
		fs:            fs,
		client:        client,
		avatarBaseURL: strings.TrimRight(avatarBaseURL, "/"),
		gh:            github.NewClient(client.HTTPClient()),
	}
}

// WithGitHubBaseURL points the GitHub API client at another endpoint.
func (f *Fetcher) WithGitHubBaseURL(baseURL string) (*Fetcher, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
	}
	f.gh.BaseURL = u
	return f, nil
}

// Fetch resolves the avatar of the X/Twitter profile at twitterURL and writes
// it to dest. Empty or unrecognised URLs fail without a network call.
func (f *Fetcher) Fetch(ctx context.Context, twitterURL, dest string) Result {
	if twitterURL == "" {
		return failed(SourceUnavatar, 0, "no twitter link")
	}

	handle := ExtractHandle(twitterURL)
	if handle == "" {
		return failed(SourceUnavatar, 0, "no handle in %q", twitterURL)
	}

	// fallback=false makes unavatar answer 404 instead of a placeholder image
	avatarURL := fmt.Sprintf("%s/twitter/%s?fallback=false", f.avatarBaseURL, url.PathEscape(handle))
	return f.download(ctx, SourceUnavatar, avatarURL, dest, 0)
}

// FetchGitHub resolves the avatar of the user or organisation owning
// githubURL through the GitHub users API and writes it to dest.
func (f *Fetcher) FetchGitHub(ctx context.Context, githubURL, dest string) Result {
	if githubURL == "" {
		return failed(SourceGitHub, 0, "no github link")
	}

	owner := ExtractGitHubOwner(githubURL)
	if owner == "" {
		return failed(SourceGitHub, 0, "no owner in %q", githubURL)
	}

	user, _, err := f.gh.Users.Get(ctx, owner)
	if err != nil {
		return failed(SourceGitHub, 1, "failed to look up %s: %v", owner, err)
	}

	avatarURL := user.GetAvatarURL()
	if avatarURL == "" {
		return failed(SourceGitHub, 1, "%s has no avatar", owner)
	}

	return f.download(ctx, SourceGitHub, avatarURL, dest, 1)
}

// download fetches avatarURL after prior requests made by the caller.
func (f *Fetcher) download(ctx context.Context, source Source, avatarURL, dest string, prior int) Result {
	requests := prior + 1

	resp, err := f.client.Get(ctx, avatarURL, imageAccept)
	if err != nil {
		return failed(source, requests, "%v", err)
	}
	if len(resp.Body) == 0 {
		return failed(source, requests, "empty image from %s", avatarURL)
	}

	if err := filesystem.WriteFileAtomic(f.fs, dest, resp.Body, 0644); err != nil {
		return failed(source, requests, "%v", err)
	}

	return Result{OK: true, Source: source, Attempted: true, Requests: requests}
}
