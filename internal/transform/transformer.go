// Package transform turns CSV rows into projects, attaching best-effort
// enrichment (scraped description, downloaded logo) along the way.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jakoblorz/go-builderdata/internal/description"
	"github.com/jakoblorz/go-builderdata/internal/logo"
	"github.com/jakoblorz/go-builderdata/internal/models"
	"github.com/jakoblorz/go-builderdata/internal/slug"
)

// LogoFetcher downloads a project logo to a destination path.
type LogoFetcher interface {
	Fetch(ctx context.Context, twitterURL, dest string) logo.Result
	FetchGitHub(ctx context.Context, githubURL, dest string) logo.Result
}

// DescriptionFetcher scrapes a description from a homepage.
type DescriptionFetcher interface {
	Fetch(ctx context.Context, homepageURL string) description.Result
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options controls which enrichment steps run.
type Options struct {
	// OutputDir is the root of the generated tree; logos go below OutputDir/imgs
	OutputDir string

	SkipLogos        bool
	SkipDescriptions bool

	// GitHubFallback tries the GitHub owner avatar when no X/Twitter logo was
	// found. Off unless configured; it costs two requests per row.
	GitHubFallback bool

	// RateLimit is the pause after every enrichment request
	RateLimit time.Duration
}

// RowError rejects a single row without aborting the run.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// Outcome is a transformed row.
type Outcome struct {
	Project *models.Project

	// Sector and Type are the grouping values of the row as written
	Sector string
	Type   string

	Logo        logo.Result
	Description description.Result

	// Requests counts the enrichment attempts that went to the network
	Requests int
}

// DescriptionFetched reports whether the description came from the homepage.
func (o *Outcome) DescriptionFetched() bool {
	return o.Description.Found()
}

// Transformer converts rows into projects.
type Transformer struct {
	opts         Options
	logos        LogoFetcher
	descriptions DescriptionFetcher
	sleep        SleepFunc
	logger       *slog.Logger
}

// New creates a Transformer. Either fetcher may be nil when its step is skipped.
func New(opts Options, logos LogoFetcher, descriptions DescriptionFetcher, logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Transformer{
		opts:         opts,
		logos:        logos,
		descriptions: descriptions,
		sleep:        Sleep,
		logger:       logger,
	}
}

// WithSleep replaces the rate-limit pause.
func (t *Transformer) WithSleep(sleep SleepFunc) *Transformer {
	t.sleep = sleep
	return t
}

// Transform builds the project of row. Invalid rows yield a *RowError;
// any other error means ctx was cancelled while waiting.
func (t *Transformer) Transform(ctx context.Context, row models.Row) (*Outcome, error) {
	name := row.Get(models.ColumnName)
	sector := row.Get(models.ColumnSector)
	projectType := row.Get(models.ColumnType)
	website := row.Get(models.ColumnWebsite)

	if missing := missingFields(map[string]string{
		models.ColumnName:    name,
		models.ColumnSector:  sector,
		models.ColumnType:    projectType,
		models.ColumnWebsite: website,
	}); len(missing) > 0 {
		return nil, &RowError{Line: row.Line, Reason: "missing " + strings.Join(missing, ", ")}
	}

	id := slug.Slugify(name)
	if id == "" {
		return nil, &RowError{Line: row.Line, Reason: fmt.Sprintf("name %q has no usable characters for an id", name)}
	}
	if slug.Slugify(sector) == "" || slug.Slugify(projectType) == "" {
		return nil, &RowError{Line: row.Line, Reason: "sector and type need at least one letter or digit"}
	}

	project := &models.Project{
		ID:          id,
		Name:        name,
		Description: row.Get(models.ColumnDescription),
		Location:    row.Get(models.ColumnLocation),
		Links: models.Links{
			Homepage: website,
			Twitter:  row.Get(models.ColumnX, models.ColumnTwitter),
			GitHub:   row.Get(models.ColumnGitHub),
		},
	}

	outcome := &Outcome{Project: project, Sector: sector, Type: projectType}
	logger := t.logger.With("line", row.Line, "project", id)

	if project.Description == "" && !t.opts.SkipDescriptions && t.descriptions != nil {
		res := t.descriptions.Fetch(ctx, website)
		outcome.Description = res
		if res.Found() {
			project.Description = res.Text
			logger.Debug("description fetched", "source", res.Source)
		} else {
			logger.Debug("description not found", "reason", res.Reason)
		}
		if err := t.afterRequests(ctx, outcome, boolToInt(res.Attempted)); err != nil {
			return nil, err
		}
	}

	if !t.opts.SkipLogos && t.logos != nil {
		if err := t.attachLogo(ctx, outcome, sector, projectType, logger); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

func (t *Transformer) attachLogo(ctx context.Context, outcome *Outcome, sector, projectType string, logger *slog.Logger) error {
	project := outcome.Project
	rel := LogoPath(sector, projectType, project.ID)
	dest := filepath.Join(t.opts.OutputDir, filepath.FromSlash(strings.TrimPrefix(rel, "/")))

	var res logo.Result
	if project.Links.Twitter != "" {
		res = t.logos.Fetch(ctx, project.Links.Twitter, dest)
		if err := t.afterRequests(ctx, outcome, logoRequests(res)); err != nil {
			return err
		}
	}

	if !res.OK && t.opts.GitHubFallback && project.Links.GitHub != "" {
		if res.Reason != "" {
			logger.Debug("logo not found, trying github", "reason", res.Reason)
		}
		res = t.logos.FetchGitHub(ctx, project.Links.GitHub, dest)
		if err := t.afterRequests(ctx, outcome, logoRequests(res)); err != nil {
			return err
		}
	}

	outcome.Logo = res
	switch {
	case res.OK:
		project.Links.Logo = rel
		logger.Debug("logo downloaded", "source", res.Source, "path", rel)
	case res.Reason != "":
		logger.Debug("logo download failed", "reason", res.Reason)
	default:
		logger.Debug("no social links, skipping logo")
	}

	return nil
}

// afterRequests applies the rate limit once per request that reached the
// network.
func (t *Transformer) afterRequests(ctx context.Context, outcome *Outcome, n int) error {
	for i := 0; i < n; i++ {
		outcome.Requests++
		if t.opts.RateLimit <= 0 {
			continue
		}
		if err := t.sleep(ctx, t.opts.RateLimit); err != nil {
			return err
		}
	}
	return nil
}

func logoRequests(res logo.Result) int {
	if res.Requests == 0 && res.Attempted {
		return 1
	}
	return res.Requests
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// LogoPath returns the public path of a project logo. Sector and type keep
// their casing; whitespace is dropped and path separators are replaced.
func LogoPath(sector, projectType, id string) string {
	return path.Join("/imgs", pathSegment(sector), pathSegment(projectType), id+".png")
}

func pathSegment(s string) string {
	seg := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == '/' || r == '\\':
			return '-'
		}
		return r
	}, s)

	if seg == "" || seg == "." || seg == ".." {
		return slug.Slugify(s)
	}
	return seg
}

func missingFields(fields map[string]string) []string {
	var missing []string
	for _, c := range models.RequiredColumns {
		if fields[c] == "" {
			missing = append(missing, c)
		}
	}
	return missing
}

// Sleep waits for d unless ctx is cancelled first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
