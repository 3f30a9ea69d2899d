package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

// Pinger checks that a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingInteractor handles the ping use case.
type PingInteractor struct {
	store   Pinger
	gateway func() time.Duration
}

// NewPingInteractor creates a new PingInteractor.
// gateway reports the current gateway heartbeat latency.
func NewPingInteractor(store Pinger, gateway func() time.Duration) *PingInteractor {
	return &PingInteractor{
		store:   store,
		gateway: gateway,
	}
}

// Execute measures gateway and settings store latency.
func (p *PingInteractor) Execute(ctx context.Context) *domain.PingResult {
	start := time.Now()
	err := p.store.Ping(ctx)
	elapsed := time.Since(start)
	if err != nil {
		slog.Warn("failed to ping settings store", "error", err)
	}

	return domain.NewPingResult(p.gateway(), elapsed, err == nil)
}
