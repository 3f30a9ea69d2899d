package infrastructure

import (
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

func newTestSession(guildID snowflake.ID) *domain.Session {
	return domain.NewSession(guildID, snowflake.ID(100), snowflake.ID(200), domain.StandardVolume)
}

func TestMemoryRepository_Get(t *testing.T) {
	repo := NewMemoryRepository()
	guildID := snowflake.ID(123)

	if repo.Get(guildID) != nil {
		t.Fatal("expected nil for non-existent session")
	}

	session := newTestSession(guildID)
	repo.Save(session)

	if repo.Get(guildID) != session {
		t.Error("expected same session instance")
	}

	if repo.Get(snowflake.ID(456)) != nil {
		t.Error("expected nil for different guild")
	}
}

func TestMemoryRepository_SaveOverwrites(t *testing.T) {
	repo := NewMemoryRepository()
	guildID := snowflake.ID(123)

	repo.Save(newTestSession(guildID))
	replacement := newTestSession(guildID)
	repo.Save(replacement)

	if repo.Get(guildID) != replacement {
		t.Error("expected new session after overwrite")
	}
	if repo.Count() != 1 {
		t.Errorf("expected 1 session, got %d", repo.Count())
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	guildID := snowflake.ID(123)

	repo.Save(newTestSession(guildID))
	repo.Delete(guildID)

	if repo.Get(guildID) != nil {
		t.Error("expected nil after delete")
	}

	// Deleting twice is a no-op.
	repo.Delete(guildID)
	if repo.Count() != 0 {
		t.Errorf("expected 0 sessions, got %d", repo.Count())
	}
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(guildID snowflake.ID) {
			defer wg.Done()
			repo.Save(newTestSession(guildID))
			_ = repo.Get(guildID)
			_ = repo.Count()
		}(snowflake.ID(i + 1))
	}
	wg.Wait()

	if repo.Count() != 100 {
		t.Errorf("expected 100 sessions, got %d", repo.Count())
	}
}
