package usecases

import (
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// Re-export domain types for presentation layer use.
// This allows presentation to depend only on usecases without importing domain directly.

// Track is an alias for domain.Track.
type Track = domain.Track

// Session is an alias for domain.Session.
type Session = domain.Session

// Filter is an alias for domain.Filter.
type Filter = domain.Filter

// Volume is an alias for domain.Volume.
type Volume = domain.Volume

// NodeStats is an alias for domain.NodeStats.
type NodeStats = domain.NodeStats

// SearchSource is an alias for domain.SearchSource.
type SearchSource = domain.SearchSource

// SessionRepository is an alias for domain.SessionRepository.
type SessionRepository = domain.SessionRepository
