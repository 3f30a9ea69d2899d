package settings

import (
	"context"
	"slices"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

type guildRow struct {
	prefix string
	repeat bool
}

// MemoryStore keeps settings in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	guilds map[snowflake.ID]guildRow
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{guilds: make(map[snowflake.ID]guildRow)}
}

func (s *MemoryStore) CreateGuild(_ context.Context, guildID snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guilds[guildID]; !ok {
		s.guilds[guildID] = guildRow{}
	}
	return nil
}

func (s *MemoryStore) RemoveGuild(_ context.Context, guildID snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.guilds, guildID)
	return nil
}

func (s *MemoryStore) ListGuilds(context.Context) ([]snowflake.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]snowflake.ID, 0, len(s.guilds))
	for id := range s.guilds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MemoryStore) GetPrefix(_ context.Context, guildID snowflake.ID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.guilds[guildID].prefix, nil
}

func (s *MemoryStore) SetPrefix(_ context.Context, guildID snowflake.ID, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.guilds[guildID]
	row.prefix = prefix
	s.guilds[guildID] = row
	return nil
}

func (s *MemoryStore) GetRepeat(_ context.Context, guildID snowflake.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.guilds[guildID].repeat, nil
}

func (s *MemoryStore) SetRepeat(_ context.Context, guildID snowflake.ID, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.guilds[guildID]
	row.repeat = enabled
	s.guilds[guildID] = row
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
