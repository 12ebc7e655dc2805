package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

/* Client is a thin HTTP client for the WAHA REST API
 * Uses pointer semantics as it's an API, not data
 * One Client exists per (base URL, API key) pair, see the registry package
 */

// DefaultBaseURL is used when no upstream URL is configured
const DefaultBaseURL = "http://localhost:3000"

const defaultTimeout = 30 * time.Second

// APIError is returned when the upstream answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("WAHA API Error: %d - %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	sendLimiter *rate.Limiter
	hmacKey     string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSendLimiter throttles SendText with a token bucket
func WithSendLimiter(lim *rate.Limiter) Option {
	return func(c *Client) {
		c.sendLimiter = lim
	}
}

// WithWebhookHMACKey makes SetWebhook ask WAHA to sign deliveries with key
func WithWebhookHMACKey(key string) Option {
	return func(c *Client) {
		c.hmacKey = key
	}
}

// New creates a client for the given upstream
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized upstream base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

type response struct {
	contentType string
	body        []byte
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any, accept string) (response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("calling upstream: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response{}, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return response{
		contentType: strings.ToLower(resp.Header.Get("Content-Type")),
		body:        data,
	}, nil
}

// requestJSON returns the upstream body verbatim; an empty body yields nil
func (c *Client) requestJSON(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	res, err := c.request(ctx, method, endpoint, body, "")
	if err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(res.body)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("decoding response from %s: invalid JSON", endpoint)
	}
	return json.RawMessage(data), nil
}
