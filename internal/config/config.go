// Package config resolves run options from defaults, an optional YAML file
// and BUILDERDATA_* environment variables. Command-line flags are applied on
// top by the cli package.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/jakoblorz/go-builderdata/internal/webclient"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "BUILDERDATA"

// DefaultAvatarBaseURL is the avatar service used for X/Twitter logos.
const DefaultAvatarBaseURL = "https://unavatar.io"

var ErrInvalidConfig = errors.New("invalid configuration")

// Options holds all settings of a run.
type Options struct {
	// Verbose enables per-row debug logging.
	Verbose bool `yaml:"verbose" split_words:"true"`

	// Quiet limits output to errors. It wins over Verbose.
	Quiet bool `yaml:"quiet" split_words:"true"`

	SkipLogos        bool `yaml:"skip_logos" split_words:"true"`
	SkipDescriptions bool `yaml:"skip_descriptions" split_words:"true"`

	// RateLimit is the pause after every enrichment request, in seconds (default 0.5).
	RateLimit float64 `yaml:"rate_limit" split_words:"true"`

	// Timeout bounds every HTTP request (default 10s).
	Timeout time.Duration `yaml:"timeout" split_words:"true"`

	// AssumeYes skips the overwrite confirmation.
	AssumeYes bool `yaml:"assume_yes" split_words:"true"`

	UserAgent     string `yaml:"user_agent" split_words:"true"`
	AvatarBaseURL string `yaml:"avatar_base_url" split_words:"true"`

	// LogoGithubFallback tries the GitHub owner avatar when the X/Twitter
	// lookup finds nothing (default false). Env key LOGO_GITHUB_FALLBACK.
	LogoGithubFallback bool `yaml:"logo_github_fallback" split_words:"true"`
}

// Default returns the built-in settings.
func Default() Options {
	return Options{
		RateLimit:          0.5,
		Timeout:            webclient.DefaultTimeout,
		UserAgent:          webclient.DefaultUserAgent,
		AvatarBaseURL:      DefaultAvatarBaseURL,
		LogoGithubFallback: false,
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then the environment. Keys absent from the file or environment keep
// their previous value.
func Load(fs filesystem.FileSystem, path string) (Options, error) {
	opts := Default()

	if path != "" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return opts, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &opts); err != nil {
		return opts, fmt.Errorf("failed to read environment: %w", err)
	}

	return opts, nil
}

// Validate rejects settings no run can use.
func (o Options) Validate() error {
	if o.RateLimit < 0 || math.IsNaN(o.RateLimit) || math.IsInf(o.RateLimit, 0) {
		return fmt.Errorf("%w: rate limit must be a non-negative number of seconds, got %v", ErrInvalidConfig, o.RateLimit)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, o.Timeout)
	}
	if !o.SkipLogos && o.AvatarBaseURL == "" {
		return fmt.Errorf("%w: avatar base url is empty", ErrInvalidConfig)
	}
	return nil
}

// RateLimitDuration converts RateLimit to a time.Duration.
func (o Options) RateLimitDuration() time.Duration {
	return time.Duration(o.RateLimit * float64(time.Second))
}
