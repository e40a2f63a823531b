package logo

import (
	"net/url"
	"strings"
)

// reservedPaths are X/Twitter routes that are not profile handles.
var reservedPaths = map[string]bool{
	"home":    true,
	"i":       true,
	"intent":  true,
	"search":  true,
	"share":   true,
	"hashtag": true,
}

// ExtractHandle returns the profile handle of an x.com or twitter.com URL,
// or "" when url is not a profile link.
func ExtractHandle(profileURL string) string {
	segment := firstPathSegment(profileURL, "x.com", "twitter.com")
	segment = strings.TrimPrefix(segment, "@")
	if reservedPaths[strings.ToLower(segment)] {
		return ""
	}
	return segment
}

// ExtractGitHubOwner returns the user or organisation of a github.com URL.
func ExtractGitHubOwner(githubURL string) string {
	return firstPathSegment(githubURL, "github.com")
}

func firstPathSegment(raw string, hosts ...string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "mobile.")

	known := false
	for _, h := range hosts {
		if host == h {
			known = true
			break
		}
	}
	if !known {
		return ""
	}

	segment, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	return segment
}
