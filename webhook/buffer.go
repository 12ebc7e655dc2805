package webhook

import (
	"math"
	"sort"
	"strconv"
	"sync"
	"time"
)

const (
	// Capacity is how many events the buffer keeps before evicting the oldest
	Capacity = 100

	// DefaultLimit is used when a query does not ask for a specific size
	DefaultLimit = 50
)

// Buffer is a bounded, insertion-ordered event store guarded by a mutex
type Buffer struct {
	mu       sync.Mutex
	events   []Event
	capacity int
}

// NewBuffer creates a buffer holding at most capacity events
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = Capacity
	}
	return &Buffer{
		events:   make([]Event, 0, capacity),
		capacity: capacity,
	}
}

var _ Repository = (*Buffer)(nil)

// IsDuplicate reports whether incoming matches an event already in existing.
// Timestamps are compared after normalization.
func IsDuplicate(existing []Event, incoming Event) bool {
	for _, ev := range existing {
		if ev.Session == incoming.Session &&
			ev.Payload.ID == incoming.Payload.ID &&
			ev.Payload.Timestamp == incoming.Payload.Timestamp &&
			ev.Payload.From == incoming.Payload.From &&
			ev.Payload.Body == incoming.Payload.Body {
			return true
		}
	}
	return false
}

// Add appends ev unless it duplicates a buffered event, evicting the oldest
// events past capacity. The check and the append happen under one lock.
func (b *Buffer) Add(ev Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if IsDuplicate(b.events, ev) {
		return false
	}
	b.events = append(b.events, ev)
	if overflow := len(b.events) - b.capacity; overflow > 0 {
		b.events = append(b.events[:0:0], b.events[overflow:]...)
	}
	return true
}

// Query returns up to limit events, newest first, optionally for one session.
// Events with equal timestamps keep their insertion order.
func (b *Buffer) Query(session string, limit int) []Event {
	b.mu.Lock()
	snapshot := make([]Event, len(b.events))
	copy(snapshot, b.events)
	b.mu.Unlock()

	now := time.Now()
	out := snapshot[:0]
	for _, ev := range snapshot {
		if session != "" && ev.Session != session {
			continue
		}
		ev.Payload.Timestamp = NormalizeTimestamp(ev.Payload.Timestamp, now)
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Payload.Timestamp > out[j].Payload.Timestamp
	})

	limit = ClampLimit(limit)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Clear drops every buffered event
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = make([]Event, 0, b.capacity)
}

// Len returns the number of buffered events
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// ClampLimit clamps limit to [1, Capacity]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > Capacity {
		return Capacity
	}
	return limit
}

// ParseLimit parses a query limit. Missing or non-numeric input yields DefaultLimit.
func ParseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return DefaultLimit
	}
	return ClampLimit(int(math.Max(math.Min(math.Trunc(n), Capacity), 1)))
}
