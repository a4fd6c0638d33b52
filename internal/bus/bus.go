package bus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"wklejka/internal/model"
)

// subscriberBufferSize is the channel buffer for each subscriber (64 events).
const subscriberBufferSize = 64

// Event kinds pushed to viewers.
const (
	EventBoardAdded   = "board-added"
	EventBoardUpdated = "board-updated"
	EventBoardDeleted = "board-deleted"
	EventClipAdded    = "clip-added"
	EventClipDeleted  = "clip-deleted"
)

// Event is the JSON envelope broadcast to every connected viewer. Board and
// clip events carry the affected record; deletions carry identifiers only.
type Event struct {
	Type    string       `json:"type"`
	Board   *model.Board `json:"board,omitempty"`
	BoardID string       `json:"boardId,omitempty"`
	Clip    *model.Clip  `json:"clip,omitempty"`
	ClipID  string       `json:"clipId,omitempty"`
}

// Broadcaster provides in-memory fan-out of state-change events to all
// currently connected viewers. Delivery is best-effort: an event reaches
// exactly the subscribers whose channels are registered and writable at
// broadcast time.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[string]chan Event
	logger *slog.Logger
}

// NewBroadcaster creates a broadcaster. Pass nil logger for default.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subs:   make(map[string]chan Event),
		logger: logger.With("component", "bus"),
	}
}

// Subscribe registers a viewer connection. Returns a channel that receives
// events and a subscription ID for later unsubscription. The subscription is
// automatically cleaned up when ctx is cancelled.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan Event, string) {
	subID := uuid.NewString()
	ch := make(chan Event, subscriberBufferSize)

	b.mu.Lock()
	b.subs[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subs[subID]
	if !ok {
		return
	}
	delete(b.subs, subID)
	close(ch)

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

// Publish sends an event to every current subscriber. Non-blocking: the event
// is dropped for subscribers whose channels are full. Sends happen under the
// read lock so they can never race an Unsubscribe closing a channel.
func (b *Broadcaster) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Debug("dropped event for slow subscriber", "event_type", event.Type)
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
