package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBufferSize is the per-subscriber queue length
const DefaultBufferSize = 64

// ConnectedFrame is sent to a new subscriber before anything else
var ConnectedFrame = []byte(`{"type":"connected"}`)

/* Subscriber is one open dashboard connection
 * Frames are queued on a bounded channel drained by the connection's
 * own writer, so a slow client only delays itself
 * The channel is closed when the subscriber leaves the hub
 */
type Subscriber struct {
	ID        string
	Transport Transport
	send      chan []byte
}

// Frames returns the subscriber's queue. It is closed on eviction or Unsubscribe.
func (s *Subscriber) Frames() <-chan []byte {
	return s.send
}

// Hub fans frames out to every subscriber
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*Subscriber
	bufferSize  int
	logger      zerolog.Logger
}

// NewHub creates a hub whose subscribers queue up to bufferSize frames
func NewHub(bufferSize int, logger zerolog.Logger) *Hub {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and queues the connected frame for it alone
func (h *Hub) Subscribe(t Transport) *Subscriber {
	s := &Subscriber{
		ID:        uuid.NewString(),
		Transport: t,
		send:      make(chan []byte, h.bufferSize),
	}
	s.send <- ConnectedFrame

	h.mu.Lock()
	h.subscribers[s.ID] = s
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Debug().
		Str("subscriber_id", s.ID).
		Str("transport", t.String()).
		Int("subscribers", count).
		Msg("stream subscriber connected")
	return s
}

// Unsubscribe removes s and closes its queue. Calling it twice is harmless.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	removed := h.remove(s)
	h.mu.Unlock()

	if removed {
		h.logger.Debug().Str("subscriber_id", s.ID).Msg("stream subscriber disconnected")
	}
}

// remove must be called with h.mu held
func (h *Hub) remove(s *Subscriber) bool {
	if _, ok := h.subscribers[s.ID]; !ok {
		return false
	}
	delete(h.subscribers, s.ID)
	close(s.send)
	return true
}

// Broadcast serializes v once and offers it to every subscriber
func (h *Hub) Broadcast(v any) error {
	frame, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling frame: %w", err)
	}
	h.BroadcastRaw(frame)
	return nil
}

// BroadcastRaw offers frame to every subscriber without blocking. A subscriber
// whose queue is full is evicted. Returns how many subscribers accepted it.
func (h *Hub) BroadcastRaw(frame []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, s := range h.subscribers {
		select {
		case s.send <- frame:
			delivered++
		default:
			h.remove(s)
			h.logger.Warn().
				Str("subscriber_id", s.ID).
				Str("transport", s.Transport.String()).
				Msg("stream subscriber too slow, evicted")
		}
	}
	return delivered
}

// Publish broadcasts msg to local subscribers
func (h *Hub) Publish(_ context.Context, msg any) error {
	return h.Broadcast(msg)
}

// Count returns the number of open subscribers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// CountByTransport returns the number of open subscribers per transport
func (h *Hub) CountByTransport() map[Transport]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make(map[Transport]int, len(Transports))
	for _, t := range Transports {
		counts[t] = 0
	}
	for _, s := range h.subscribers {
		counts[s.Transport]++
	}
	return counts
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subscribers {
		h.remove(s)
	}
}
