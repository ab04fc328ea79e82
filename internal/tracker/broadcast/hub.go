// Package broadcast fans ingested events out to live subscribers, typically
// websocket sessions. Delivery is best-effort: a slow or dead subscriber
// loses events, never the producer or its peers.
package broadcast

import (
	"sync"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/pkg/log"
)

// DefaultBufferSize is the per-subscriber event buffer.
const DefaultBufferSize = 16

// Subscriber is one registered event consumer. Consumers receive from C and
// stop once Done is signalled; the event channel itself is never closed so
// an in-flight broadcast can never hit a closed channel.
type Subscriber struct {
	id   uint64
	ch   chan model.Event
	done chan struct{}
	once sync.Once
}

// C is the subscriber's receive channel.
func (s *Subscriber) C() <-chan model.Event { return s.ch }

// Done is signalled when the subscriber has been disconnected.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.done) })
}

// Hub is the subscriber registry.
type Hub struct {
	mu      sync.Mutex
	nextID  uint64
	subs    map[uint64]*Subscriber
	bufSize int
	onDrop  func()
}

var _ core.Broadcaster = (*Hub)(nil)

// Option customizes a Hub.
type Option func(*Hub)

// WithBufferSize sets the per-subscriber buffer.
func WithBufferSize(n int) Option {
	return func(h *Hub) { h.bufSize = n }
}

// WithDropHook installs a callback invoked whenever an event is dropped for
// one subscriber, used to feed metrics.
func WithDropHook(fn func()) Option {
	return func(h *Hub) { h.onDrop = fn }
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subs:    map[uint64]*Subscriber{},
		bufSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Connect registers a new subscriber.
func (h *Hub) Connect() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscriber{
		id:   h.nextID,
		ch:   make(chan model.Event, h.bufSize),
		done: make(chan struct{}),
	}
	h.subs[sub.id] = sub
	return sub
}

// Disconnect removes a subscriber and signals its Done channel.
// Disconnecting an already-removed subscriber is a no-op.
func (h *Hub) Disconnect(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	_, present := h.subs[sub.id]
	delete(h.subs, sub.id)
	h.mu.Unlock()

	sub.close()

	if present {
		log.Debug("Subscriber disconnected", "subscriberID", sub.id)
	}
}

// Len returns the current subscriber count.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast implements core.Broadcaster. The subscriber set is snapshotted
// under the lock and delivery happens outside it, so a subscriber that
// disconnects mid-broadcast simply misses the event. A full buffer drops the
// event for that subscriber only.
func (h *Hub) Broadcast(event model.Event) {
	h.mu.Lock()
	snapshot := make([]*Subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		snapshot = append(snapshot, sub)
	}
	h.mu.Unlock()

	for _, sub := range snapshot {
		select {
		case <-sub.done:
			// Disconnected between snapshot and send.
		case sub.ch <- event:
		default:
			if h.onDrop != nil {
				h.onDrop()
			}
			log.Debug("Dropped event for slow subscriber", "subscriberID", sub.id, "eventType", event.Type)
		}
	}
}
