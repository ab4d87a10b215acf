package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
	// Driver is "sqlite3" (mattn, cgo) or "sqlite" (modernc, pure Go).
	Driver string `mapstructure:"driver"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string        `mapstructure:"currency_symbol"`
	StopTimeout    time.Duration `mapstructure:"stop_timeout"`
}

// NotifyConfig enables cross-process change notifications over Redis.
// An empty RedisAddr keeps notifications in-process.
type NotifyConfig struct {
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	Channel       string `mapstructure:"channel"`
}

// LogConfig holds the log destination used by the TUI.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Enabled reports whether a Redis bridge should be started.
func (n NotifyConfig) Enabled() bool {
	return strings.TrimSpace(n.RedisAddr) != ""
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "inventory")
}

// DefaultPath is the config file location used when INVENTORY_CONFIG is unset.
func DefaultPath() string {
	if p := os.Getenv("INVENTORY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "inventory", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix INVENTORY_.
// A .env file in the working directory is loaded first and never overrides
// variables already set in the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv("INVENTORY_CONFIG"))
}

// LoadFrom is Load with an explicit config file. The file must exist; an
// empty path falls back to ~/.config/inventory/config.toml, which may be absent.
func LoadFrom(cfgPath string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "inventory.db"))
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.stop_timeout", "5s")
	v.SetDefault("notify.redis_addr", "")
	v.SetDefault("notify.redis_password", "")
	v.SetDefault("notify.redis_db", 0)
	v.SetDefault("notify.channel", "inventory:invalidations")
	v.SetDefault("log.file", filepath.Join(dataDir(), "inventory.log"))

	v.SetConfigType("toml")

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "inventory"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INVENTORY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the rest of the app cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is empty")
	}
	switch c.Database.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.UI.StopTimeout < 0 {
		return fmt.Errorf("config: ui.stop_timeout must not be negative")
	}
	return nil
}

// Save writes the provided config to path, creating the directory if needed.
// An empty path means DefaultPath().
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.driver", cfg.Database.Driver)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.stop_timeout", cfg.UI.StopTimeout.String())
	v.Set("notify.redis_addr", cfg.Notify.RedisAddr)
	v.Set("notify.redis_password", cfg.Notify.RedisPassword)
	v.Set("notify.redis_db", cfg.Notify.RedisDB)
	v.Set("notify.channel", cfg.Notify.Channel)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
