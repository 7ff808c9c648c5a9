package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zephyrtronium/scicalc"
)

// Config holds application configuration.
type Config struct {
	AngleMode string `mapstructure:"angle_mode"`
	Language  string
	History   HistoryConfig
}

// HistoryConfig holds history store settings.
type HistoryConfig struct {
	Enabled bool
	Path    string
	Limit   int
	// Instance names the calculator whose history is shown. Separate
	// instances sharing a database keep separate histories.
	Instance string
}

// Languages lists the supported message languages.
var Languages = []string{"en", "pt_br"}

// Angle parses the configured angle mode.
func (c Config) Angle() (scicalc.AngleMode, error) {
	return scicalc.ParseAngleMode(c.AngleMode)
}

// Validate checks the configuration for values the application cannot use.
func (c Config) Validate() error {
	if _, err := c.Angle(); err != nil {
		return fmt.Errorf("angle_mode: %w", err)
	}
	ok := false
	for _, l := range Languages {
		if c.Language == l {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("language: unsupported language %q", c.Language)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit: must be positive, not %d", c.History.Limit)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path: required when history is enabled")
	}
	return nil
}

func dataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

func configPath() string {
	if p := os.Getenv("SCICALC_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "scicalc", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// SCICALC_, e.g. SCICALC_ANGLE_MODE or SCICALC_HISTORY_LIMIT.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("angle_mode", scicalc.Degrees.String())
	v.SetDefault("language", "en")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(dataHome(), "scicalc", "history.db"))
	v.SetDefault("history.limit", 50)
	v.SetDefault("history.instance", "default")

	v.SetConfigType("toml")
	v.SetConfigFile(configPath())

	v.SetEnvPrefix("SCICALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Language = strings.ToLower(c.Language)
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. The TUI uses it to remember the angle mode.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("angle_mode", cfg.AngleMode)
	v.Set("language", cfg.Language)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("history.limit", cfg.History.Limit)
	v.Set("history.instance", cfg.History.Instance)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
