package ports

import (
	"context"

	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// EventSubscriber defines the interface for subscribing to node events.
// Handlers for one guild are invoked in emission order.
type EventSubscriber interface {
	Subscribe(kind domain.EventKind, handler func(context.Context, domain.Event)) error
}
