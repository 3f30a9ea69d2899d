package ports

import "github.com/sglre6355/cherry/internal/modules/music_player/domain"

// NodeStatsSink receives node stats snapshots.
type NodeStatsSink interface {
	Record(stats domain.NodeStats)
}

// NodeStatsReader exposes the last recorded snapshot.
type NodeStatsReader interface {
	// Latest returns the last snapshot and whether one was recorded yet.
	Latest() (domain.NodeStats, bool)
}
