package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/jakoblorz/go-builderdata/internal/tui"
	"github.com/jakoblorz/go-builderdata/internal/webclient"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, prompt Prompter) *cobra.Command {
	cmd := &RunCommand{
		fs:     fs,
		prompt: prompt,
	}

	rootCmd := &cobra.Command{
		Use:   "builderdata <csv_file> <output_dir>",
		Short: "Convert a project CSV into the builder data JSON tree",
		Long: `Reads a CSV of projects and writes one JSON document per project plus
one map per sector below <output_dir>/data. Logos are downloaded to
<output_dir>/imgs and missing descriptions are scraped from the homepage.`,
		Args:          cobra.ExactArgs(2),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cmd.Run,
	}

	rootCmd.Flags().BoolP("verbose", "v", false, "Log every row and enrichment result")
	rootCmd.Flags().BoolP("quiet", "q", false, "Only print errors")
	rootCmd.Flags().Bool("skip-logos", false, "Do not download logos")
	rootCmd.Flags().Bool("skip-descriptions", false, "Do not scrape missing descriptions")
	rootCmd.Flags().Float64("rate-limit", 0.5, "Seconds to wait after every enrichment request")
	rootCmd.Flags().Duration("timeout", webclient.DefaultTimeout, "HTTP timeout per request")
	rootCmd.Flags().String("config", "", "YAML config file (env: "+configEnv+")")
	rootCmd.Flags().BoolP("yes", "y", false, "Overwrite existing output without asking")

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand(filesystem.NewOSFileSystem(), NewTerminalPrompter(os.Stdin, os.Stderr))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("❌ "+err.Error()))
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
