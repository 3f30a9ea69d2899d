package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/disgoorg/snowflake/v2"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS guilds (
	Guild_Id     TEXT PRIMARY KEY,
	Guild_Prefix TEXT NOT NULL DEFAULT '',
	Guild_Repeat INTEGER NOT NULL DEFAULT 0
);`

// SQLiteStore keeps settings in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under concurrent updates.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create guilds table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateGuild(ctx context.Context, guildID snowflake.ID) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guilds (Guild_Id) VALUES (?) ON CONFLICT (Guild_Id) DO NOTHING`,
		guildID.String(),
	)
	if err != nil {
		return fmt.Errorf("create guild: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RemoveGuild(ctx context.Context, guildID snowflake.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM guilds WHERE Guild_Id = ?`, guildID.String()); err != nil {
		return fmt.Errorf("remove guild: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListGuilds(ctx context.Context) ([]snowflake.ID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT Guild_Id FROM guilds`)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}
	defer rows.Close()

	var ids []snowflake.ID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan guild: %w", err)
		}
		id, err := snowflake.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse guild id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	slices.Sort(ids)
	return ids, nil
}

func (s *SQLiteStore) GetPrefix(ctx context.Context, guildID snowflake.ID) (string, error) {
	var prefix string
	err := s.db.QueryRowContext(ctx,
		`SELECT Guild_Prefix FROM guilds WHERE Guild_Id = ?`, guildID.String(),
	).Scan(&prefix)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("get prefix: %w", err)
	}
	return prefix, nil
}

func (s *SQLiteStore) SetPrefix(ctx context.Context, guildID snowflake.ID, prefix string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guilds (Guild_Id, Guild_Prefix) VALUES (?, ?)
		 ON CONFLICT (Guild_Id) DO UPDATE SET Guild_Prefix = excluded.Guild_Prefix`,
		guildID.String(), prefix,
	)
	if err != nil {
		return fmt.Errorf("set prefix: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetRepeat(ctx context.Context, guildID snowflake.ID) (bool, error) {
	var repeat int
	err := s.db.QueryRowContext(ctx,
		`SELECT Guild_Repeat FROM guilds WHERE Guild_Id = ?`, guildID.String(),
	).Scan(&repeat)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("get repeat: %w", err)
	}
	return repeat != 0, nil
}

func (s *SQLiteStore) SetRepeat(ctx context.Context, guildID snowflake.ID, enabled bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guilds (Guild_Id, Guild_Repeat) VALUES (?, ?)
		 ON CONFLICT (Guild_Id) DO UPDATE SET Guild_Repeat = excluded.Guild_Repeat`,
		guildID.String(), enabled,
	)
	if err != nil {
		return fmt.Errorf("set repeat: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
