package waha

import (
	"context"
	"encoding/json"
)

//go:generate go tool mockery --name API --output ./mocks

/* API is the set of upstream operations the dashboard needs
 * Written for users of the API, not just for testing
 * Responses the dashboard only forwards stay as raw JSON
 */
type API interface {
	SessionReader
	SessionWriter
	Messenger
	ChatReader
	WebhookConfigurer
}

// SessionReader provides read operations for sessions
type SessionReader interface {
	ListSessions(ctx context.Context) (json.RawMessage, error)
	GetSession(ctx context.Context, name string) (json.RawMessage, error)
	QR(ctx context.Context, name string) (Image, error)
	QRValue(ctx context.Context, name string) (string, error)
	Screenshot(ctx context.Context, name string) (Image, error)
}

// SessionWriter changes session lifecycle state
type SessionWriter interface {
	StartSession(ctx context.Context, name string) (json.RawMessage, error)
	StopSession(ctx context.Context, name string) error
}

// Messenger sends outbound messages
type Messenger interface {
	SendText(ctx context.Context, req SendTextRequest) (json.RawMessage, error)
}

// ChatReader reads chat listings and history
type ChatReader interface {
	ChatsOverview(ctx context.Context, name string, limit int) (json.RawMessage, error)
	ChatMessages(ctx context.Context, name, chatID string, query MessagesQuery) (json.RawMessage, error)
}

// WebhookConfigurer reads and replaces a session's webhook list
type WebhookConfigurer interface {
	SessionWebhooks(ctx context.Context, name string) ([]SessionWebhook, error)
	SetWebhook(ctx context.Context, name, url string) error
	UpdateSessionWebhooks(ctx context.Context, name string, webhooks []SessionWebhook) error
}

var _ API = (*Client)(nil)
