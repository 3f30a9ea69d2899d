package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	Message      string
	Gateway      time.Duration
	Store        time.Duration
	StoreHealthy bool
	Timestamp    time.Time
}

// NewPingResult creates a PingResult from the measured latencies.
func NewPingResult(gateway, store time.Duration, storeHealthy bool) *PingResult {
	return &PingResult{
		Message:      "Pong!",
		Gateway:      gateway,
		Store:        store,
		StoreHealthy: storeHealthy,
		Timestamp:    time.Now(),
	}
}

// Summary renders the result as a single line.
func (r *PingResult) Summary() string {
	store := "unreachable"
	if r.StoreHealthy {
		store = fmt.Sprintf("%dms", r.Store.Milliseconds())
	}
	return fmt.Sprintf("%s 🏓 Gateway: %dms, Settings: %s", r.Message, r.Gateway.Milliseconds(), store)
}
