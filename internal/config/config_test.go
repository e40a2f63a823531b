package config

import (
	"testing"
	"time"

	"github.com/jakoblorz/go-builderdata/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	opts, err := Load(filesystem.NewMockFileSystem(), "")
	require.NoError(t, err)
	require.Equal(t, Default(), opts)
	require.Equal(t, 500*time.Millisecond, opts.RateLimitDuration())
	require.False(t, opts.LogoGithubFallback, "github avatar fallback is opt-in")
	require.NoError(t, opts.Validate())
}

func TestLoad_File(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/cfg/builderdata.yaml", []byte(`
verbose: true
skip_logos: true
rate_limit: 1.5
timeout: 30s
user_agent: test-agent
logo_github_fallback: true
`))

	opts, err := Load(fs, "/cfg/builderdata.yaml")
	require.NoError(t, err)

	require.True(t, opts.Verbose)
	require.True(t, opts.SkipLogos)
	require.False(t, opts.SkipDescriptions)
	require.Equal(t, 1500*time.Millisecond, opts.RateLimitDuration())
	require.Equal(t, 30*time.Second, opts.Timeout)
	require.Equal(t, "test-agent", opts.UserAgent)
	require.True(t, opts.LogoGithubFallback)
	require.Equal(t, DefaultAvatarBaseURL, opts.AvatarBaseURL, "unset keys keep their default")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/builderdata.yaml", []byte("rate_limit: 2\nquiet: false\n"))

	t.Setenv("BUILDERDATA_RATE_LIMIT", "0")
	t.Setenv("BUILDERDATA_QUIET", "true")
	t.Setenv("BUILDERDATA_AVATAR_BASE_URL", "http://localhost:9999")
	t.Setenv("BUILDERDATA_LOGO_GITHUB_FALLBACK", "true")

	opts, err := Load(fs, "/builderdata.yaml")
	require.NoError(t, err)
	require.Zero(t, opts.RateLimit)
	require.True(t, opts.Quiet)
	require.Equal(t, "http://localhost:9999", opts.AvatarBaseURL)
	require.True(t, opts.LogoGithubFallback)
}

func TestLoad_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("LOGO_GITHUB_FALLBACK", "true")
	t.Setenv("TIMEOUT", "1s")
	t.Setenv("QUIET", "true")

	opts, err := Load(filesystem.NewMockFileSystem(), "")
	require.NoError(t, err)
	require.Equal(t, Default(), opts)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filesystem.NewMockFileSystem(), "/nope.yaml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		fs := filesystem.NewMockFileSystem()
		fs.AddFile("/bad.yaml", []byte("rate_limit: [1, 2"))

		_, err := Load(fs, "/bad.yaml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("malformed env", func(t *testing.T) {
		t.Setenv("BUILDERDATA_TIMEOUT", "soon")

		_, err := Load(filesystem.NewMockFileSystem(), "")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		valid  bool
	}{
		{name: "defaults", mutate: func(*Options) {}, valid: true},
		{name: "zero rate limit", mutate: func(o *Options) { o.RateLimit = 0 }, valid: true},
		{name: "negative rate limit", mutate: func(o *Options) { o.RateLimit = -1 }},
		{name: "zero timeout", mutate: func(o *Options) { o.Timeout = 0 }},
		{name: "empty avatar url", mutate: func(o *Options) { o.AvatarBaseURL = "" }},
		{name: "empty avatar url without logos", mutate: func(o *Options) { o.AvatarBaseURL = ""; o.SkipLogos = true }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
