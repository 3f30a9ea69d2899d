package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS guilds (
	guild_id     BIGINT PRIMARY KEY,
	guild_prefix TEXT NOT NULL DEFAULT '',
	guild_repeat BOOLEAN NOT NULL DEFAULT FALSE
)`

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore keeps settings in a PostgreSQL table.
type PostgresStore struct {
	db DB
}

// OpenPostgres connects a pool to dsn and applies the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	store, err := NewPostgresStore(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStore wraps db and applies the schema.
func NewPostgresStore(ctx context.Context, db DB) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create guilds table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// guild ids are stored as BIGINT; snowflakes fit in 63 bits.
func pgID(guildID snowflake.ID) int64 {
	return int64(guildID)
}

func (s *PostgresStore) CreateGuild(ctx context.Context, guildID snowflake.ID) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO guilds (guild_id) VALUES ($1) ON CONFLICT (guild_id) DO NOTHING`,
		pgID(guildID),
	)
	if err != nil {
		return fmt.Errorf("create guild: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveGuild(ctx context.Context, guildID snowflake.ID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM guilds WHERE guild_id = $1`, pgID(guildID)); err != nil {
		return fmt.Errorf("remove guild: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListGuilds(ctx context.Context) ([]snowflake.ID, error) {
	rows, err := s.db.Query(ctx, `SELECT guild_id FROM guilds ORDER BY guild_id`)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	raw, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan guilds: %w", err)
	}

	ids := make([]snowflake.ID, len(raw))
	for i, id := range raw {
		ids[i] = snowflake.ID(id)
	}
	return ids, nil
}

func (s *PostgresStore) GetPrefix(ctx context.Context, guildID snowflake.ID) (string, error) {
	var prefix string
	err := s.db.QueryRow(ctx,
		`SELECT guild_prefix FROM guilds WHERE guild_id = $1`, pgID(guildID),
	).Scan(&prefix)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("get prefix: %w", err)
	}
	return prefix, nil
}

func (s *PostgresStore) SetPrefix(ctx context.Context, guildID snowflake.ID, prefix string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO guilds (guild_id, guild_prefix) VALUES ($1, $2)
		 ON CONFLICT (guild_id) DO UPDATE SET guild_prefix = EXCLUDED.guild_prefix`,
		pgID(guildID), prefix,
	)
	if err != nil {
		return fmt.Errorf("set prefix: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRepeat(ctx context.Context, guildID snowflake.ID) (bool, error) {
	var repeat bool
	err := s.db.QueryRow(ctx,
		`SELECT guild_repeat FROM guilds WHERE guild_id = $1`, pgID(guildID),
	).Scan(&repeat)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("get repeat: %w", err)
	}
	return repeat, nil
}

func (s *PostgresStore) SetRepeat(ctx context.Context, guildID snowflake.ID, enabled bool) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO guilds (guild_id, guild_repeat) VALUES ($1, $2)
		 ON CONFLICT (guild_id) DO UPDATE SET guild_repeat = EXCLUDED.guild_repeat`,
		pgID(guildID), enabled,
	)
	if err != nil {
		return fmt.Errorf("set repeat: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

var _ Store = (*PostgresStore)(nil)
