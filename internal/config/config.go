package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Elevation ElevationConfig `mapstructure:"elevation"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Events    EventsConfig    `mapstructure:"events"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	GinMode string `mapstructure:"ginmode" validate:"oneof=debug release test"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// ElevationConfig selects and tunes the elevation provider
type ElevationConfig struct {
	Provider       string        `mapstructure:"provider" validate:"oneof=usgs openmeteo"`
	BaseURL        string        `mapstructure:"baseurl" validate:"omitempty,url"`
	UserAgent      string        `mapstructure:"useragent" validate:"required"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ConnectTimeout time.Duration `mapstructure:"connecttimeout" validate:"gt=0"`
	MaxConcurrency int           `mapstructure:"maxconcurrency" validate:"min=1,max=64"`
}

// TelemetryConfig holds OpenTelemetry tracing configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	ServiceName string `mapstructure:"servicename" validate:"required"`
}

// EventsConfig holds the event broker configuration. Events are off when NATSURL is empty.
type EventsConfig struct {
	NATSURL string `mapstructure:"natsurl" validate:"omitempty,url"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"provider":    "elevation.provider",
	"concurrency": "elevation.maxconcurrency",
	"timeout":     "elevation.timeout",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// Load reads configuration from file, environment variables and, when flags
// is not nil, command line flags. A "config" flag, if present and set, names
// the config file explicitly.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.medi-elevation")

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("elevation.provider", "usgs")
	v.SetDefault("elevation.baseurl", "")
	v.SetDefault("elevation.useragent", "medi-elevation/1.0 (elevation lookup)")
	v.SetDefault("elevation.timeout", "10s")
	v.SetDefault("elevation.connecttimeout", "10s")
	v.SetDefault("elevation.maxconcurrency", 8)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.servicename", "medi-elevation")
	v.SetDefault("events.natsurl", "")

	// Read from environment variables: MEDI_ELEVATION_ELEVATION_PROVIDER -> elevation.provider
	v.SetEnvPrefix("MEDI_ELEVATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("config"); f != nil && f.Changed {
			v.SetConfigFile(f.Value.String())
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// configKey turns "Config.Elevation.MaxConcurrency" into "elevation.maxconcurrency".
func configKey(namespace string) string {
	_, rest, _ := strings.Cut(namespace, ".")
	return strings.ToLower(rest)
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

// NewStderrLogger is NewLogger writing to stderr, for commands whose stdout is data.
func (c *Config) NewStderrLogger() *slog.Logger {
	return c.newLogger(os.Stderr)
}

func (c *Config) newLogger(w *os.File) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
