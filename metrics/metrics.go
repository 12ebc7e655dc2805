package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/waha-dashboard/stream"
	"github.com/marcelsud/waha-dashboard/webhook"
)

// Snapshot represents the current state of the dashboard proxy.
type Snapshot struct {
	// BufferedEvents is the number of webhook events currently retained
	BufferedEvents int64 `json:"buffered_events"`

	// Ingested maps an ingestion outcome to how many webhooks ended that way
	Ingested map[string]int64 `json:"ingested"`

	// Subscribers maps a stream transport to its open connections
	Subscribers map[string]int64 `json:"subscribers"`

	// CachedClients is the number of upstream clients held by the registry
	CachedClients int64 `json:"cached_clients"`

	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the dashboard.
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
	GetBufferedEvents(ctx context.Context) (int64, error)
	GetIngestCounts(ctx context.Context) (map[string]int64, error)
	GetSubscriberCounts(ctx context.Context) (map[string]int64, error)
	GetCachedClients(ctx context.Context) (int64, error)
}

// BufferSource is implemented by webhook.Service
type BufferSource interface {
	Buffered() int
	Counts() map[webhook.Outcome]int64
}

// SubscriberSource is implemented by stream.Hub
type SubscriberSource interface {
	CountByTransport() map[stream.Transport]int
}

// ClientSource is implemented by registry.Registry
type ClientSource interface {
	ClientCount() int
}

/* StateCollector reads the in-memory counters of the running process
 * Nothing is cached, every call reflects the live state
 */
type StateCollector struct {
	buffer      BufferSource
	subscribers SubscriberSource
	clients     ClientSource
	now         func() time.Time
}

// NewStateCollector creates a collector over the given sources
func NewStateCollector(buffer BufferSource, subscribers SubscriberSource, clients ClientSource) *StateCollector {
	return &StateCollector{
		buffer:      buffer,
		subscribers: subscribers,
		clients:     clients,
		now:         time.Now,
	}
}

// Collect gathers every metric at once
func (c *StateCollector) Collect(ctx context.Context) (Snapshot, error) {
	buffered, err := c.GetBufferedEvents(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting buffered events: %w", err)
	}

	ingested, err := c.GetIngestCounts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting ingest counts: %w", err)
	}

	subscribers, err := c.GetSubscriberCounts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting subscriber counts: %w", err)
	}

	clients, err := c.GetCachedClients(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting cached clients: %w", err)
	}

	return Snapshot{
		BufferedEvents: buffered,
		Ingested:       ingested,
		Subscribers:    subscribers,
		CachedClients:  clients,
		Timestamp:      c.now().UTC(),
	}, nil
}

func (c *StateCollector) GetBufferedEvents(_ context.Context) (int64, error) {
	return int64(c.buffer.Buffered()), nil
}

func (c *StateCollector) GetIngestCounts(_ context.Context) (map[string]int64, error) {
	counts := c.buffer.Counts()
	result := make(map[string]int64, len(webhook.Outcomes))
	for _, o := range webhook.Outcomes {
		result[o.String()] = counts[o]
	}
	return result, nil
}

func (c *StateCollector) GetSubscriberCounts(_ context.Context) (map[string]int64, error) {
	counts := c.subscribers.CountByTransport()
	result := make(map[string]int64, len(stream.Transports))
	for _, t := range stream.Transports {
		result[t.String()] = int64(counts[t])
	}
	return result, nil
}

func (c *StateCollector) GetCachedClients(_ context.Context) (int64, error) {
	return int64(c.clients.ClientCount()), nil
}
