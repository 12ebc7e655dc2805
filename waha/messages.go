package waha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// SendTextRequest is the body of POST /api/sendText. Nil options take WAHA's dashboard defaults.
type SendTextRequest struct {
	Session                string  `json:"session"`
	ChatID                 string  `json:"chatId"`
	Text                   string  `json:"text"`
	ReplyTo                *string `json:"reply_to,omitempty"`
	LinkPreview            *bool   `json:"linkPreview,omitempty"`
	LinkPreviewHighQuality *bool   `json:"linkPreviewHighQuality,omitempty"`
}

// WithDefaults fills every unset option
func (r SendTextRequest) WithDefaults() SendTextRequest {
	if r.ReplyTo == nil {
		empty := ""
		r.ReplyTo = &empty
	}
	if r.LinkPreview == nil {
		on := true
		r.LinkPreview = &on
	}
	if r.LinkPreviewHighQuality == nil {
		on := true
		r.LinkPreviewHighQuality = &on
	}
	return r
}

// FormatChatID turns a bare phone number into a personal chat id
func FormatChatID(chatID string) string {
	if strings.Contains(chatID, "@") {
		return chatID
	}
	return chatID + "@c.us"
}

// SendText sends a text message, waiting on the send limiter when one is set
func (c *Client) SendText(ctx context.Context, req SendTextRequest) (json.RawMessage, error) {
	if c.sendLimiter != nil {
		if err := c.sendLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for send limiter: %w", err)
		}
	}
	return c.requestJSON(ctx, http.MethodPost, "/api/sendText", req.WithDefaults())
}
