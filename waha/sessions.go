package waha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListSessions returns every session known to the upstream
func (c *Client) ListSessions(ctx context.Context) (json.RawMessage, error) {
	return c.requestJSON(ctx, http.MethodGet, "/api/sessions", nil)
}

// GetSession returns a single session, including its config
func (c *Client) GetSession(ctx context.Context, name string) (json.RawMessage, error) {
	return c.requestJSON(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(name), nil)
}

// StartSession starts (or creates and starts) a session
func (c *Client) StartSession(ctx context.Context, name string) (json.RawMessage, error) {
	return c.requestJSON(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(name)+"/start", nil)
}

// StopSession stops a running session
func (c *Client) StopSession(ctx context.Context, name string) error {
	_, err := c.request(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(name)+"/stop", nil, "")
	return err
}

// QR fetches the pairing QR code as shown to a browser
func (c *Client) QR(ctx context.Context, name string) (Image, error) {
	res, err := c.request(ctx, http.MethodGet, "/api/"+url.PathEscape(name)+"/auth/qr", nil, "application/json, image/png")
	if err != nil {
		return Image{}, err
	}
	return DecodeQR(res.contentType, res.body)
}

// QRValue fetches the raw QR payload, suitable for rendering in a terminal
func (c *Client) QRValue(ctx context.Context, name string) (string, error) {
	res, err := c.request(ctx, http.MethodGet, "/api/"+url.PathEscape(name)+"/auth/qr?format=raw", nil, mimeJSON)
	if err != nil {
		return "", err
	}
	var data struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(res.body, &data); err != nil {
		return "", fmt.Errorf("decoding raw qr response: %w", err)
	}
	return data.Value, nil
}

// Screenshot fetches a screenshot of the session's browser page
func (c *Client) Screenshot(ctx context.Context, name string) (Image, error) {
	endpoint := "/api/screenshot?session=" + url.QueryEscape(name)
	res, err := c.request(ctx, http.MethodGet, endpoint, nil, "application/json, image/png, image/jpeg")
	if err != nil {
		return Image{}, err
	}
	return DecodeScreenshot(res.contentType, res.body)
}
