package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/lockdam/internal/errs"
)

// isolate points HOME at an empty directory so a developer's own config file
// never leaks into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, "home", cfg.Page)
	assert.True(t, cfg.AltScreen)
	assert.Equal(t, time.Second, cfg.Clock.Interval)
	assert.Equal(t, 50*time.Millisecond, cfg.Scroll.Debounce)
	assert.Equal(t, 80, cfg.Onboarding.CompactWidth)
	assert.False(t, cfg.Onboarding.Seen)
	assert.Equal(t, 7*24*time.Hour, cfg.Source.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "lockdam.log", filepath.Base(cfg.Log.File))
}

func TestFileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
theme: Light
page: about
clock:
  interval: 250ms
scroll:
  debounce: 80ms
onboarding:
  compact_width: 100
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "about", cfg.Page)
	assert.Equal(t, 250*time.Millisecond, cfg.Clock.Interval)
	assert.Equal(t, 80*time.Millisecond, cfg.Scroll.Debounce)
	assert.Equal(t, 100, cfg.Onboarding.CompactWidth)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "theme: light\n")
	t.Setenv("LOCKDAM_THEME", "dark")
	t.Setenv("LOCKDAM_ONBOARDING_SEEN", "true")
	t.Setenv("LOCKDAM_CACHE_DIR", "/tmp/lockdam-sources")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.Onboarding.Seen)
	assert.Equal(t, "/tmp/lockdam-sources", cfg.Source.CacheDir)
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LOCKDAM_THEME", "dark")

	flags := pflag.NewFlagSet("lockdam", pflag.ContinueOnError)
	flags.String("theme", "auto", "")
	flags.String("page", "home", "")
	flags.Bool("seen-onboarding", false, "")
	require.NoError(t, flags.Parse([]string{"--theme", "time", "--seen-onboarding"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "time", cfg.Theme)
	assert.True(t, cfg.Onboarding.Seen)
	assert.Equal(t, "home", cfg.Page, "unset flags keep lower layers")
}

func TestUserConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "lockdam")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("page: litreview\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "litreview", cfg.Page)
}

func TestMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	var pe *errs.ParseError
	require.ErrorAs(t, err, &pe)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown theme", "theme: sepia\n", "config.theme"},
		{"unknown page", "page: blog\n", "config.page"},
		{"zero debounce", "scroll:\n  debounce: 0s\n", "config.scroll.debounce"},
		{"bad log level", "log:\n  level: loud\n", "config.log.level"},
		{"bad compact width", "onboarding:\n  compact_width: -1\n", "config.onboarding.compactwidth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.body), nil)
			var ve *errs.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
