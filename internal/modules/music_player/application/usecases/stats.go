package usecases

import (
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// StatsOutput contains the result of the Stats use case.
type StatsOutput struct {
	Node     domain.NodeStats
	HasNode  bool // False until the node reported stats once
	Sessions int
}

// StatsService reports node load and live session counts.
type StatsService struct {
	reader   ports.NodeStatsReader
	sessions *SessionRegistry
}

// NewStatsService creates a new StatsService.
func NewStatsService(reader ports.NodeStatsReader, sessions *SessionRegistry) *StatsService {
	return &StatsService{reader: reader, sessions: sessions}
}

// Stats returns the latest snapshot.
func (s *StatsService) Stats() *StatsOutput {
	node, ok := s.reader.Latest()
	return &StatsOutput{
		Node:     node,
		HasNode:  ok,
		Sessions: s.sessions.Count(),
	}
}
