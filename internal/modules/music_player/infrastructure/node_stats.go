package infrastructure

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

const (
	metricsNamespace = "cherry"
	metricsSubsystem = "lavalink"
)

// NodeStats keeps the latest node stats snapshot and exports it as gauges.
type NodeStats struct {
	players        prometheus.Gauge
	playingPlayers prometheus.Gauge
	uptime         prometheus.Gauge
	cpuCores       prometheus.Gauge
	load           *prometheus.GaugeVec
	memory         *prometheus.GaugeVec
	updates        prometheus.Counter

	mu     sync.RWMutex
	latest domain.NodeStats
	has    bool
}

// NewNodeStats creates a NodeStats registering its collectors on reg.
func NewNodeStats(reg prometheus.Registerer) *NodeStats {
	factory := promauto.With(reg)

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &NodeStats{
		players:        gauge("players", "Players connected to the node"),
		playingPlayers: gauge("playing_players", "Players currently playing a track"),
		uptime:         gauge("uptime_seconds", "Node uptime in seconds"),
		cpuCores:       gauge("cpu_cores", "CPU cores available to the node"),
		load: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "cpu_load_ratio",
				Help:      "CPU load of the node host (0-1)",
			},
			[]string{"scope"}, // scope: "system|lavalink"
		),
		memory: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "memory_bytes",
				Help:      "Node JVM memory in bytes",
			},
			[]string{"kind"}, // kind: "free|used|allocated|reservable"
		),
		updates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "stats_updates_total",
			Help:      "Node stats snapshots received",
		}),
	}
}

// Record stores the snapshot and updates the gauges.
func (s *NodeStats) Record(stats domain.NodeStats) {
	s.mu.Lock()
	s.latest = stats
	s.has = true
	s.mu.Unlock()

	s.players.Set(float64(stats.Players))
	s.playingPlayers.Set(float64(stats.PlayingPlayers))
	s.uptime.Set(stats.Uptime.Seconds())
	s.cpuCores.Set(float64(stats.CPUCores))
	s.load.WithLabelValues("system").Set(stats.SystemLoad)
	s.load.WithLabelValues("lavalink").Set(stats.LavalinkLoad)
	s.memory.WithLabelValues("free").Set(float64(stats.MemoryFree))
	s.memory.WithLabelValues("used").Set(float64(stats.MemoryUsed))
	s.memory.WithLabelValues("allocated").Set(float64(stats.MemoryAllocated))
	s.memory.WithLabelValues("reservable").Set(float64(stats.MemoryReservable))
	s.updates.Inc()
}

// Latest returns the last recorded snapshot.
func (s *NodeStats) Latest() (domain.NodeStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.has
}

var (
	_ ports.NodeStatsSink   = (*NodeStats)(nil)
	_ ports.NodeStatsReader = (*NodeStats)(nil)
)
