// Package processor runs a full CSV to JSON conversion: read, transform every
// row in order, aggregate, write.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-builderdata/internal/aggregate"
	"github.com/jakoblorz/go-builderdata/internal/csvinput"
	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/jakoblorz/go-builderdata/internal/models"
	"github.com/jakoblorz/go-builderdata/internal/slug"
	"github.com/jakoblorz/go-builderdata/internal/transform"
)

// RowTransformer is implemented by *transform.Transformer.
type RowTransformer interface {
	Transform(ctx context.Context, row models.Row) (*transform.Outcome, error)
}

// Skip records a rejected row.
type Skip struct {
	Line   int
	Name   string
	Reason string
}

// Summary is the result of a run.
type Summary struct {
	Rows                int
	Processed           int
	Skipped             int
	LogosDownloaded     int
	DescriptionsFetched int
	Requests            int
	Sectors             int

	Skips        []Skip
	ProjectFiles []string
	MapFiles     []string
}

// Processor owns a single run. It is not safe for concurrent use.
type Processor struct {
	fs          filesystem.FileSystem
	transformer RowTransformer
	writer      *aggregate.Writer
	reporter    Reporter
	logger      *slog.Logger
}

// New creates a Processor. A nil reporter disables progress output.
func New(fs filesystem.FileSystem, transformer RowTransformer, writer *aggregate.Writer, reporter Reporter, logger *slog.Logger) *Processor {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		fs:          fs,
		transformer: transformer,
		writer:      writer,
		reporter:    reporter,
		logger:      logger,
	}
}

// Run processes the CSV at csvPath. Row problems are counted in the summary;
// the returned error is reserved for fatal conditions (unreadable input,
// missing columns, unwritable output, cancellation).
func (p *Processor) Run(ctx context.Context, csvPath string) (*Summary, error) {
	table, err := csvinput.ReadFile(p.fs, csvPath)
	if err != nil {
		return nil, err
	}

	if err := p.writer.Prepare(); err != nil {
		return nil, err
	}

	summary := &Summary{Rows: len(table.Rows)}
	acc := aggregate.NewAccumulator()

	p.reporter.Start(len(table.Rows))
	defer p.reporter.Finish()

	for i, row := range table.Rows {
		name := row.Get(models.ColumnName)
		p.logger.Debug("processing row", "row", fmt.Sprintf("%d/%d", i+1, len(table.Rows)), "line", row.Line, "name", name)

		outcome, err := p.processRow(ctx, acc, row)
		if err != nil {
			var rowErr *transform.RowError
			if !errors.As(err, &rowErr) {
				return summary, fmt.Errorf("processing interrupted at line %d: %w", row.Line, err)
			}

			summary.Skipped++
			summary.Skips = append(summary.Skips, Skip{Line: row.Line, Name: name, Reason: rowErr.Reason})
			p.logger.Warn("skipping row", "line", row.Line, "reason", rowErr.Reason)
			p.reporter.Advance(Event{Line: row.Line, Name: name, Skipped: true})
			continue
		}

		summary.Processed++
		summary.Requests += outcome.Requests
		if outcome.Project.HasLogo() {
			summary.LogosDownloaded++
		}
		if outcome.DescriptionFetched() {
			summary.DescriptionsFetched++
		}
		p.reporter.Advance(Event{Line: row.Line, Name: name, Project: outcome.Project.ID})
	}

	written, err := p.writer.Write(acc)
	if err != nil {
		return summary, err
	}

	summary.ProjectFiles = written.ProjectFiles
	summary.MapFiles = written.MapFiles
	summary.Sectors = len(written.MapFiles)

	p.logger.Debug("run complete",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"logos", summary.LogosDownloaded,
		"sectors", summary.Sectors)

	return summary, nil
}

// processRow transforms row and adds it to acc. Duplicate ids are reported
// as row errors so the first project keeps its file.
func (p *Processor) processRow(ctx context.Context, acc *aggregate.Accumulator, row models.Row) (*transform.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A colliding row must not download over the first project's logo.
	if id := slug.Slugify(row.Get(models.ColumnName)); acc.Has(id) {
		return nil, &transform.RowError{Line: row.Line, Reason: fmt.Sprintf("%s %q", aggregate.ErrDuplicateID, id)}
	}

	outcome, err := p.transformer.Transform(ctx, row)
	if err != nil {
		return nil, err
	}

	if err := acc.Add(outcome.Project, outcome.Sector, outcome.Type); err != nil {
		return nil, &transform.RowError{Line: row.Line, Reason: err.Error()}
	}

	return outcome, nil
}
