package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/waha-dashboard/stream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

/* Relay shares live frames between dashboard replicas over Redis Pub/Sub
 * Each replica publishes the frames it ingests and re-broadcasts the frames
 * published by the others. Only live frames travel; buffers stay per process.
 */

// DefaultChannel is the Pub/Sub channel used when none is configured
const DefaultChannel = "waha:webhooks"

type envelope struct {
	Origin string          `json:"origin"`
	Data   json.RawMessage `json:"data"`
}

type Relay struct {
	client  *redis.Client
	hub     *stream.Hub
	channel string
	origin  string
	logger  zerolog.Logger
	ready   chan struct{}
}

// NewRelay connects to Redis and creates a relay feeding hub
func NewRelay(addr, password string, db int, channel string, hub *stream.Hub, logger zerolog.Logger) (*Relay, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	if channel == "" {
		channel = DefaultChannel
	}

	return &Relay{
		client:  client,
		hub:     hub,
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger,
		ready:   make(chan struct{}),
	}, nil
}

// Origin identifies this replica's frames on the channel
func (r *Relay) Origin() string {
	return r.origin
}

// Ready is closed once Run has subscribed to the channel
func (r *Relay) Ready() <-chan struct{} {
	return r.ready
}

// Publish broadcasts msg to local subscribers, then shares it with other replicas.
// Local delivery happens even when Redis is unreachable.
func (r *Relay) Publish(ctx context.Context, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling frame: %w", err)
	}
	r.hub.BroadcastRaw(data)

	payload, err := json.Marshal(envelope{Origin: r.origin, Data: data})
	if err != nil {
		return fmt.Errorf("marshaling envelope: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", r.channel, err)
	}
	return nil
}

// Run re-broadcasts frames from other replicas until ctx is cancelled
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// Receive blocks until the subscription is confirmed
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", r.channel, err)
	}
	close(r.ready)
	r.logger.Info().Str("channel", r.channel).Str("origin", r.origin).Msg("stream relay subscribed")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.handle(msg.Payload)
		}
	}
}

func (r *Relay) handle(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.logger.Warn().Err(err).Msg("discarding malformed relay message")
		return
	}
	if env.Origin == r.origin || len(env.Data) == 0 {
		return
	}
	r.hub.BroadcastRaw(env.Data)
}

// Close closes the Redis connection
func (r *Relay) Close() error {
	return r.client.Close()
}
