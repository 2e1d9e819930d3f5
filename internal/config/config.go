package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// DiffContextLines is the number of context lines in stash diffs.
	DiffContextLines int `mapstructure:"diff_context_lines"`
	// CommandTimeout bounds every git invocation.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	// CacheTTL is how long a stash listing is reused across refreshes.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// WatchDebounce coalesces bursts of stash ref changes.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// StatusTTL and ErrorTTL control how long status messages stay visible.
	StatusTTL time.Duration `mapstructure:"status_ttl"`
	ErrorTTL  time.Duration `mapstructure:"error_ttl"`
	// TickInterval is the UI clock used to expire status messages.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// IncludeUntracked is the initial state of the new-stash toggle.
	IncludeUntracked bool `mapstructure:"include_untracked"`
	// RequireStashMessage rejects new stashes with an empty message
	// instead of letting git generate one.
	RequireStashMessage bool `mapstructure:"require_stash_message"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
	// LogFile overrides the per-session log file location.
	LogFile string `mapstructure:"log_file"`
	// MaxLogFiles bounds the number of rotated session logs kept.
	MaxLogFiles int `mapstructure:"max_log_files"`
	// Keys overrides individual key bindings.
	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from ~/.config/zgs/config.yaml, then ./config.yaml.
// When file is non-empty only that file is read and it must exist.
// ZGS_* environment variables override file values, e.g. ZGS_CACHE_TTL=5s
// or ZGS_KEYS_DROP=x,delete.
func Load(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDirectory())
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("ZGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file means defaults.
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or env is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("diff_context_lines", 3)
	v.SetDefault("command_timeout", 30*time.Second)
	v.SetDefault("cache_ttl", 2*time.Second)
	v.SetDefault("watch_debounce", 300*time.Millisecond)
	v.SetDefault("status_ttl", 3*time.Second)
	v.SetDefault("error_ttl", 5*time.Second)
	v.SetDefault("tick_interval", 250*time.Millisecond)
	v.SetDefault("include_untracked", false)
	v.SetDefault("require_stash_message", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")
	v.SetDefault("max_log_files", 20)
	kb := DefaultKeyBindings()
	for action, keys := range kb.byAction() {
		v.SetDefault("keys."+action, *keys)
	}
}

func (c *Config) validate() error {
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("config: unknown theme %q (want dark or light)", c.Theme)
	}
	if c.DiffContextLines < 0 {
		return fmt.Errorf("config: diff_context_lines must be >= 0, got %d", c.DiffContextLines)
	}
	for name, d := range map[string]time.Duration{
		"command_timeout": c.CommandTimeout,
		"status_ttl":      c.StatusTTL,
		"error_ttl":       c.ErrorTTL,
		"tick_interval":   c.TickInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", name, d)
		}
	}
	if c.CacheTTL < 0 || c.WatchDebounce < 0 {
		return errors.New("config: cache_ttl and watch_debounce must not be negative")
	}
	for action, keys := range c.Keys.byAction() {
		if len(*keys) == 0 {
			return fmt.Errorf("config: keys.%s has no keys bound", action)
		}
	}
	return nil
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zgs")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "zgs")
}
