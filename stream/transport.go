package stream

import "fmt"

/* Transport represents how a subscriber receives frames
 * SSE writes "data: <json>" lines on a long-lived response
 * WebSocket writes one text message per frame
 */
type Transport int

const (
	SSE Transport = iota + 1
	WebSocket
)

// Transports lists every valid transport, in declaration order
var Transports = []Transport{SSE, WebSocket}

// String returns the string representation of the transport
func (t Transport) String() string {
	switch t {
	case SSE:
		return "sse"
	case WebSocket:
		return "websocket"
	default:
		return "unknown"
	}
}

// NewTransport creates a Transport from a string
func NewTransport(s string) Transport {
	switch s {
	case "websocket", "ws":
		return WebSocket
	default:
		return SSE
	}
}

// Validate checks if the transport is valid
func (t Transport) Validate() error {
	if t != SSE && t != WebSocket {
		return fmt.Errorf("invalid transport: %d", t)
	}
	return nil
}
