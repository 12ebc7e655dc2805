package waha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SessionWebhook is one entry of a session's config.webhooks list
type SessionWebhook struct {
	URL           string          `json:"url"`
	Events        []string        `json:"events"`
	HMAC          *WebhookHMAC    `json:"hmac,omitempty"`
	Retries       *WebhookRetries `json:"retries,omitempty"`
	CustomHeaders json.RawMessage `json:"customHeaders,omitempty"`
}

type WebhookHMAC struct {
	Key *string `json:"key"`
}

type WebhookRetries struct {
	DelaySeconds int    `json:"delaySeconds"`
	Attempts     int    `json:"attempts"`
	Policy       string `json:"policy"`
}

type sessionConfigPatch struct {
	Config struct {
		Webhooks []SessionWebhook `json:"webhooks"`
	} `json:"config"`
}

// SessionWebhooks returns the webhooks configured on a session, never nil
func (c *Client) SessionWebhooks(ctx context.Context, name string) ([]SessionWebhook, error) {
	raw, err := c.GetSession(ctx, name)
	if err != nil {
		return nil, err
	}

	var session struct {
		Config *struct {
			Webhooks []SessionWebhook `json:"webhooks"`
		} `json:"config"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &session); err != nil {
			return nil, fmt.Errorf("decoding session config: %w", err)
		}
	}
	if session.Config == nil || session.Config.Webhooks == nil {
		return []SessionWebhook{}, nil
	}
	return session.Config.Webhooks, nil
}

// SetWebhook replaces the session's webhooks with a single "message" subscription
func (c *Client) SetWebhook(ctx context.Context, name, webhookURL string) error {
	wh := SessionWebhook{
		URL:    webhookURL,
		Events: []string{"message"},
	}
	if c.hmacKey != "" {
		key := c.hmacKey
		wh.HMAC = &WebhookHMAC{Key: &key}
	}
	return c.UpdateSessionWebhooks(ctx, name, []SessionWebhook{wh})
}

// UpdateSessionWebhooks replaces the session's webhooks list
func (c *Client) UpdateSessionWebhooks(ctx context.Context, name string, webhooks []SessionWebhook) error {
	var patch sessionConfigPatch
	patch.Config.Webhooks = webhooks
	if patch.Config.Webhooks == nil {
		patch.Config.Webhooks = []SessionWebhook{}
	}
	_, err := c.request(ctx, http.MethodPatch, "/api/sessions/"+url.PathEscape(name), patch, "")
	return err
}
