package webhook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/waha-dashboard/webhook"
	"github.com/marcelsud/waha-dashboard/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const messageBody = `{"event":"message","session":"default","payload":{"id":"abc","timestamp":1700000000,"from":"123@c.us","body":"hello","hasMedia":false}}`

type stubVerifier bool

func (v stubVerifier) Verify([]byte, string) bool { return bool(v) }

func clock() func() time.Time {
	return func() time.Time { return fixedNow }
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("success - stores and broadcasts", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		pub := mocks.NewPublisher(t)
		service := webhook.NewService(repo, webhook.WithPublisher(pub), webhook.WithClock(clock()))

		repo.On("Add", webhook.MatchEvent(func(ev webhook.Event) bool {
			return ev.Session == "default" &&
				ev.Payload.ID == "abc" &&
				ev.Payload.Timestamp == 1_700_000_000_000
		})).Return(true)
		pub.On("Publish", ctx, webhook.MatchBroadcast(func(b webhook.Broadcast) bool {
			return b.Type == "webhook" &&
				b.ReceivedAt == fixedNow.UnixMilli() &&
				b.Data.Payload.ID == "abc"
		})).Return(nil)

		outcome := service.Ingest(ctx, []byte(messageBody), "")

		assert.Equal(t, webhook.Stored, outcome)
		assert.Equal(t, int64(1), service.Counts()[webhook.Stored])
	})

	t.Run("success - duplicate is not broadcast", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		pub := mocks.NewPublisher(t)
		service := webhook.NewService(repo, webhook.WithPublisher(pub))

		repo.On("Add", mock.Anything).Return(false)

		outcome := service.Ingest(ctx, []byte(messageBody), "")

		assert.Equal(t, webhook.Duplicate, outcome)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("success - invalid payload is ignored", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		assert.Equal(t, webhook.Ignored, service.Ingest(ctx, []byte(`{"event":"session.status"}`), ""))
		assert.Equal(t, webhook.Ignored, service.Ingest(ctx, []byte(`not json`), ""))
		assert.Equal(t, int64(2), service.Counts()[webhook.Ignored])
		repo.AssertNotCalled(t, "Add", mock.Anything)
	})

	t.Run("success - publish failure is swallowed", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		pub := mocks.NewPublisher(t)
		service := webhook.NewService(repo, webhook.WithPublisher(pub))

		repo.On("Add", mock.Anything).Return(true)
		pub.On("Publish", ctx, mock.Anything).Return(errors.New("redis down"))

		assert.Equal(t, webhook.Stored, service.Ingest(ctx, []byte(messageBody), ""))
	})

	t.Run("success - signature mismatch is dropped", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo, webhook.WithVerifier(stubVerifier(false)))

		outcome := service.Ingest(ctx, []byte(messageBody), "bad")

		assert.Equal(t, webhook.Unverified, outcome)
		repo.AssertNotCalled(t, "Add", mock.Anything)
	})

	t.Run("success - valid signature is stored", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo, webhook.WithVerifier(stubVerifier(true)))

		repo.On("Add", mock.Anything).Return(true)

		assert.Equal(t, webhook.Stored, service.Ingest(ctx, []byte(messageBody), "good"))
	})
}

func TestMessages(t *testing.T) {
	repo := mocks.NewRepository(t)
	service := webhook.NewService(repo)
	events := []webhook.Event{newEvent(t, "default", "1", 1_700_000_000)}

	repo.On("Query", "default", 10).Return(events)
	repo.On("Len").Return(1)
	repo.On("Clear").Return()

	assert.Equal(t, events, service.Messages("default", 10))
	assert.Equal(t, 1, service.Buffered())
	service.Clear()
}

func TestIngest_WithBuffer(t *testing.T) {
	ctx := context.Background()
	service := webhook.NewService(webhook.NewBuffer(webhook.Capacity), webhook.WithClock(clock()))

	require.Equal(t, webhook.Stored, service.Ingest(ctx, []byte(messageBody), ""))
	require.Equal(t, webhook.Duplicate, service.Ingest(ctx, []byte(messageBody), ""))

	messages := service.Messages("", webhook.DefaultLimit)
	require.Len(t, messages, 1)
	assert.Equal(t, int64(1_700_000_000_000), messages[0].Payload.Timestamp)

	counts := service.Counts()
	assert.Equal(t, int64(1), counts[webhook.Stored])
	assert.Equal(t, int64(1), counts[webhook.Duplicate])
	assert.Equal(t, int64(0), counts[webhook.Unverified])
}
