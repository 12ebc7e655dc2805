package webhook

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for webhook ingestion
type UseCase interface {
	Ingest(ctx context.Context, body []byte, signature string) Outcome
	Messages(session string, limit int) []Event
	Clear()
}

// Publisher fans an ingested event out to live subscribers
type Publisher interface {
	Publish(ctx context.Context, msg any) error
}

// Verifier checks a body against the signature header WAHA sent with it
type Verifier interface {
	Verify(body []byte, signature string) bool
}

// Broadcast is the frame pushed to subscribers for every stored event
type Broadcast struct {
	Type       string `json:"type"`
	ReceivedAt int64  `json:"receivedAt"`
	Data       Event  `json:"data"`
}

// BroadcastType is the Type of every Broadcast frame
const BroadcastType = "webhook"

type Service struct {
	Repo      Repository
	publisher Publisher
	verifier  Verifier
	logger    zerolog.Logger
	now       func() time.Time
	counts    [Unverified + 1]atomic.Int64
}

// Option configures a Service
type Option func(*Service)

// WithPublisher sets where stored events are broadcast
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithVerifier enables signature checks; unsigned or mis-signed bodies are dropped
func WithVerifier(v Verifier) Option {
	return func(s *Service) {
		s.verifier = v
	}
}

// WithLogger sets the service logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new webhook service with dependency injection
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		Repo:   repo,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest validates, deduplicates, stores and broadcasts a pushed body.
// It never fails: every outcome is acknowledged to the sender.
func (s *Service) Ingest(ctx context.Context, body []byte, signature string) Outcome {
	if s.verifier != nil && !s.verifier.Verify(body, signature) {
		s.logger.Warn().Msg("webhook signature mismatch, payload dropped")
		return s.record(Unverified)
	}

	now := s.now()
	ev, err := Parse(body, now)
	if err != nil {
		s.logger.Debug().Err(err).Int("bytes", len(body)).Msg("webhook payload ignored")
		return s.record(Ignored)
	}

	if !s.Repo.Add(ev) {
		s.logger.Debug().
			Str("session", ev.Session).
			Str("message_id", ev.Payload.ID).
			Msg("duplicate webhook event")
		return s.record(Duplicate)
	}

	if s.publisher != nil {
		frame := Broadcast{Type: BroadcastType, ReceivedAt: now.UnixMilli(), Data: ev}
		if err := s.publisher.Publish(ctx, frame); err != nil {
			s.logger.Error().Err(err).Str("session", ev.Session).Msg("broadcasting webhook event")
		}
	}

	s.logger.Info().
		Str("session", ev.Session).
		Str("event", ev.Event).
		Str("message_id", ev.Payload.ID).
		Msg("webhook event stored")
	return s.record(Stored)
}

// Messages returns buffered events, newest first
func (s *Service) Messages(session string, limit int) []Event {
	return s.Repo.Query(session, limit)
}

// Clear empties the buffer
func (s *Service) Clear() {
	s.Repo.Clear()
	s.logger.Info().Msg("webhook buffer cleared")
}

// Buffered returns how many events are currently buffered
func (s *Service) Buffered() int {
	return s.Repo.Len()
}

// Counts returns how many bodies ended in each outcome since start
func (s *Service) Counts() map[Outcome]int64 {
	counts := make(map[Outcome]int64, len(Outcomes))
	for _, o := range Outcomes {
		counts[o] = s.counts[o].Load()
	}
	return counts
}

func (s *Service) record(o Outcome) Outcome {
	s.counts[o].Add(1)
	return o
}
