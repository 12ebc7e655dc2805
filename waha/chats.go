package waha

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultChatLimit = 20
	MaxChatLimit     = 200

	SortByMessageTimestamp = "messageTimestamp"
	SortByTimestamp        = "timestamp"
	SortAsc                = "asc"
	SortDesc               = "desc"
)

/* MessagesQuery holds the paging options of a chat history request
 * The zero value is not valid on its own; use ParseMessagesQuery or Normalize
 */
type MessagesQuery struct {
	Limit         int
	Offset        int
	DownloadMedia bool
	SortBy        string
	SortOrder     string
}

// ParseMessagesQuery reads paging options from a dashboard query string.
// Missing, non-numeric or unrecognized values fall back to the defaults.
func ParseMessagesQuery(values url.Values) MessagesQuery {
	q := MessagesQuery{
		Limit:         ParseLimit(values.Get("limit")),
		DownloadMedia: values.Get("downloadMedia") == "true",
		SortBy:        values.Get("sortBy"),
		SortOrder:     values.Get("sortOrder"),
	}
	if n, ok := parseNumber(values.Get("offset")); ok {
		q.Offset = int(math.Max(0, n))
	}
	return q.Normalize()
}

// Normalize clamps every field into the range the upstream accepts
func (q MessagesQuery) Normalize() MessagesQuery {
	q.Limit = ClampLimit(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.SortBy != SortByMessageTimestamp && q.SortBy != SortByTimestamp {
		q.SortBy = SortByMessageTimestamp
	}
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		q.SortOrder = SortDesc
	}
	return q
}

// Encode renders the query in the order WAHA documents it
func (q MessagesQuery) Encode() string {
	q = q.Normalize()
	return "limit=" + strconv.Itoa(q.Limit) +
		"&offset=" + strconv.Itoa(q.Offset) +
		"&downloadMedia=" + strconv.FormatBool(q.DownloadMedia) +
		"&sortBy=" + url.QueryEscape(q.SortBy) +
		"&sortOrder=" + url.QueryEscape(q.SortOrder)
}

// ParseLimit parses a chat limit, truncating fractions and clamping to [1, MaxChatLimit]
func ParseLimit(raw string) int {
	n, ok := parseNumber(raw)
	if !ok {
		return DefaultChatLimit
	}
	return ClampLimit(int(math.Max(math.Min(n, MaxChatLimit), 1)))
}

// ClampLimit clamps limit to [1, MaxChatLimit]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxChatLimit {
		return MaxChatLimit
	}
	return limit
}

func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return math.Trunc(n), true
}

// ChatsOverview lists recent chats with their last message
func (c *Client) ChatsOverview(ctx context.Context, name string, limit int) (json.RawMessage, error) {
	endpoint := "/api/" + url.PathEscape(name) + "/chats/overview?limit=" + strconv.Itoa(ClampLimit(limit))
	return c.requestJSON(ctx, http.MethodGet, endpoint, nil)
}

// ChatMessages reads a page of a chat's history
func (c *Client) ChatMessages(ctx context.Context, name, chatID string, query MessagesQuery) (json.RawMessage, error) {
	endpoint := "/api/" + url.PathEscape(name) + "/chats/" + url.PathEscape(chatID) + "/messages?" + query.Encode()
	return c.requestJSON(ctx, http.MethodGet, endpoint, nil)
}
