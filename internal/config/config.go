// Package config loads lockdam's settings from defaults, an optional YAML
// file, LOCKDAM_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/csheth/lockdam/internal/errs"
)

// EnvPrefix namespaces environment overrides, e.g. LOCKDAM_THEME.
const EnvPrefix = "LOCKDAM"

type ClockConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
}

type ScrollConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gt=0"`
}

type OnboardingConfig struct {
	CompactWidth int  `mapstructure:"compact_width" validate:"gt=0"`
	Seen         bool `mapstructure:"seen"`
}

type SourceConfig struct {
	CacheDir     string        `mapstructure:"cache_dir"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
	ExcerptLimit int           `mapstructure:"excerpt_limit" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Theme      string           `mapstructure:"theme" validate:"oneof=auto dark time light"`
	Page       string           `mapstructure:"page" validate:"oneof=home about litreview artifacts"`
	Content    string           `mapstructure:"content"`
	AltScreen  bool             `mapstructure:"alt_screen"`
	Seed       uint64           `mapstructure:"seed"`
	Clock      ClockConfig      `mapstructure:"clock"`
	Scroll     ScrollConfig     `mapstructure:"scroll"`
	Onboarding OnboardingConfig `mapstructure:"onboarding"`
	Source     SourceConfig     `mapstructure:"source"`
	Log        LogConfig        `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Theme:     "auto",
		Page:      "home",
		AltScreen: true,
		Clock:     ClockConfig{Interval: time.Second},
		Scroll:    ScrollConfig{Debounce: 50 * time.Millisecond},
		Onboarding: OnboardingConfig{
			CompactWidth: 80,
		},
		Source: SourceConfig{CacheTTL: 7 * 24 * time.Hour, ExcerptLimit: 600},
		Log:    LogConfig{Level: "info", File: defaultLogFile()},
	}
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"theme":           "theme",
	"page":            "page",
	"content":         "content",
	"seen-onboarding": "onboarding.seen",
	"log-level":       "log.level",
	"log-file":        "log.file",
	"seed":            "seed",
}

// Load resolves the configuration. An explicit path must exist; without one
// ~/.config/lockdam/config.yaml is read when present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("source.cache_dir", EnvPrefix+"_CACHE_DIR")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errs.NewParseError(path, err)
		}
	} else if userPath, ok := userConfigPath(); ok {
		v.SetConfigFile(userPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errs.NewParseError(userPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.Page = strings.ToLower(strings.TrimSpace(cfg.Page))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, errs.FromValidator("config", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("page", cfg.Page)
	v.SetDefault("content", cfg.Content)
	v.SetDefault("alt_screen", cfg.AltScreen)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("clock.interval", cfg.Clock.Interval)
	v.SetDefault("scroll.debounce", cfg.Scroll.Debounce)
	v.SetDefault("onboarding.compact_width", cfg.Onboarding.CompactWidth)
	v.SetDefault("onboarding.seen", cfg.Onboarding.Seen)
	v.SetDefault("source.cache_dir", cfg.Source.CacheDir)
	v.SetDefault("source.cache_ttl", cfg.Source.CacheTTL)
	v.SetDefault("source.excerpt_limit", cfg.Source.ExcerptLimit)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

func userConfigPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, ".config", "lockdam", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func defaultLogFile() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "lockdam", "lockdam.log")
}
