// Package settings persists per-guild bot settings: the command prefix and
// the music repeat flag.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown settings backend")

// Store is the per-guild settings store.
// Getters return zero values for guilds without a row; setters create the row.
type Store interface {
	// CreateGuild adds a row with default settings. Existing rows are kept.
	CreateGuild(ctx context.Context, guildID snowflake.ID) error

	// RemoveGuild deletes the guild's row.
	RemoveGuild(ctx context.Context, guildID snowflake.ID) error

	// ListGuilds returns every guild with a row.
	ListGuilds(ctx context.Context) ([]snowflake.ID, error)

	// GetPrefix returns the guild's prefix, or "" if unset.
	GetPrefix(ctx context.Context, guildID snowflake.ID) (string, error)
	SetPrefix(ctx context.Context, guildID snowflake.ID, prefix string) error

	GetRepeat(ctx context.Context, guildID snowflake.ID) (bool, error)
	SetRepeat(ctx context.Context, guildID snowflake.ID, enabled bool) error

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config selects and configures the settings backend.
type Config struct {
	Backend       string `env:"SETTINGS_BACKEND" envDefault:"memory"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"cherry.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	PostgresDSN   string `env:"POSTGRES_DSN"`
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("POSTGRES_DSN is required for the postgres backend")
		}
		return OpenPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
