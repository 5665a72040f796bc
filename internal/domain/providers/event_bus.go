package providers

import (
	"context"

	"github.com/directoriodominicano/backend/internal/domain/entities"
)

// EventChannelBusinessUpdates carries every business change event
const EventChannelBusinessUpdates = "business:updates"

// EventBus defines the interface for publishing and consuming
// business change events
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.BusinessEvent) error

	// Subscribe subscribes to events on a channel. The returned channel
	// is closed when ctx is cancelled.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BusinessEvent, error)

	// Close tears down all subscriptions
	Close() error
}
