package ports

import "github.com/sglre6355/cherry/internal/modules/music_player/domain"

// EventPublisher defines the interface for publishing node events.
type EventPublisher interface {
	Publish(event domain.Event) error
}
