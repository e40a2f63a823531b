package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jakoblorz/go-builderdata/internal/aggregate"
	"github.com/jakoblorz/go-builderdata/internal/config"
	"github.com/jakoblorz/go-builderdata/internal/description"
	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/jakoblorz/go-builderdata/internal/logo"
	"github.com/jakoblorz/go-builderdata/internal/processor"
	"github.com/jakoblorz/go-builderdata/internal/transform"
	"github.com/jakoblorz/go-builderdata/internal/tui"
	"github.com/jakoblorz/go-builderdata/internal/webclient"
	"github.com/spf13/cobra"
)

const configEnv = config.EnvPrefix + "_CONFIG"

// RunCommand converts one CSV file
type RunCommand struct {
	fs     filesystem.FileSystem
	prompt Prompter
}

// Run executes the conversion
func (c *RunCommand) Run(cmd *cobra.Command, args []string) error {
	csvPath, outputDir := args[0], args[1]
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	opts, err := c.resolveOptions(cmd)
	if err != nil {
		return err
	}

	progress := !opts.Quiet && !opts.Verbose && c.prompt.Progress()
	logger := newLogger(errOut, logLevel(opts, progress))

	writer := aggregate.NewWriter(c.fs, outputDir)
	proceed, err := c.confirmOverwrite(writer, opts)
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(out, "Aborted, nothing was written")
		return nil
	}

	client := webclient.New(webclient.Options{
		Timeout:   opts.Timeout,
		UserAgent: opts.UserAgent,
	})

	transformer := transform.New(transform.Options{
		OutputDir:        outputDir,
		SkipLogos:        opts.SkipLogos,
		SkipDescriptions: opts.SkipDescriptions,
		GitHubFallback:   opts.LogoGithubFallback,
		RateLimit:        opts.RateLimitDuration(),
	}, logo.NewFetcher(c.fs, client, opts.AvatarBaseURL), description.NewFetcher(client), logger)

	var reporter processor.Reporter
	if progress {
		reporter = tui.NewProgressReporter(errOut)
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "📦 Processing %s -> %s\n\n", csvPath, outputDir)
	}

	summary, err := processor.New(c.fs, transformer, writer, reporter, logger).Run(cmd.Context(), csvPath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted, no output was written: %w", err)
		}
		return err
	}

	if opts.Quiet {
		return nil
	}

	report, err := tui.RenderSummary(summary)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	fmt.Fprintln(out, report)
	fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("✓ Wrote %d project(s) and %d sector map(s) to %s", len(summary.ProjectFiles), len(summary.MapFiles), outputDir)))

	return nil
}

// resolveOptions layers defaults, config file and environment, then the
// flags the user actually set.
func (c *RunCommand) resolveOptions(cmd *cobra.Command) (config.Options, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv(configEnv)
	}

	opts, err := config.Load(c.fs, path)
	if err != nil {
		return opts, err
	}

	if flags.Changed("verbose") {
		opts.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("quiet") {
		opts.Quiet, _ = flags.GetBool("quiet")
	}
	if flags.Changed("skip-logos") {
		opts.SkipLogos, _ = flags.GetBool("skip-logos")
	}
	if flags.Changed("skip-descriptions") {
		opts.SkipDescriptions, _ = flags.GetBool("skip-descriptions")
	}
	if flags.Changed("rate-limit") {
		opts.RateLimit, _ = flags.GetFloat64("rate-limit")
	}
	if flags.Changed("timeout") {
		opts.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("yes") {
		opts.AssumeYes, _ = flags.GetBool("yes")
	}

	if opts.Quiet {
		opts.Verbose = false
	}

	return opts, opts.Validate()
}

func (c *RunCommand) confirmOverwrite(writer *aggregate.Writer, opts config.Options) (bool, error) {
	if opts.AssumeYes || !c.prompt.Interactive() {
		return true, nil
	}

	existing, err := writer.ExistingProjects()
	if err != nil || len(existing) == 0 {
		return true, nil
	}

	ok, err := c.prompt.ConfirmOverwrite(writer.ProjectsDir(), len(existing))
	if err != nil {
		return false, fmt.Errorf("failed to confirm overwrite: %w", err)
	}
	return ok, nil
}

// logLevel picks the minimum log level. The progress bar redraws the same
// terminal lines as the log, so only errors are written while it runs; the
// skipped rows still show up in the summary.
func logLevel(opts config.Options, progress bool) slog.Level {
	switch {
	case opts.Quiet, progress:
		return slog.LevelError
	case opts.Verbose:
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}
