package redis

import (
	"testing"

	"github.com/marcelsud/waha-dashboard/stream"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestRelay(hub *stream.Hub) *Relay {
	return &Relay{
		hub:     hub,
		channel: DefaultChannel,
		origin:  "self",
		logger:  zerolog.Nop(),
		ready:   make(chan struct{}),
	}
}

func TestRelay_Handle(t *testing.T) {
	t.Run("success - frames from other replicas are broadcast", func(t *testing.T) {
		hub := stream.NewHub(8, zerolog.Nop())
		sub := hub.Subscribe(stream.SSE)
		<-sub.Frames()
		relay := newTestRelay(hub)

		relay.handle(`{"origin":"other","data":{"type":"webhook"}}`)

		assert.Equal(t, `{"type":"webhook"}`, string(<-sub.Frames()))
	})

	t.Run("success - own frames are skipped", func(t *testing.T) {
		hub := stream.NewHub(8, zerolog.Nop())
		sub := hub.Subscribe(stream.SSE)
		<-sub.Frames()
		relay := newTestRelay(hub)

		relay.handle(`{"origin":"self","data":{"type":"webhook"}}`)
		relay.handle(`not json`)
		relay.handle(`{"origin":"other"}`)

		assert.Len(t, sub.Frames(), 0)
	})
}
