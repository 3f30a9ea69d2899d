package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sglre6355/cherry/internal/settings"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,notEmpty"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr   string `env:"METRICS_ADDR" envDefault:":9090"`
	DefaultPrefix string `env:"DEFAULT_PREFIX" envDefault:"!"`

	// EnabledModules limits which registered modules are loaded. Empty loads all.
	EnabledModules []string `env:"ENABLED_MODULES" envSeparator:","`

	Settings settings.Config
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseLogLevel converts a LOG_LEVEL value to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", level)
	}
}
