package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"time"
)

// ErrNotMessageEvent is returned for bodies that do not carry a message event
var ErrNotMessageEvent = errors.New("not a message event")

// secondsThreshold separates second-based timestamps from millisecond ones
const secondsThreshold = 1e12

// Decode parses a message event using the current time for missing timestamps
func Decode(data []byte) (Event, error) {
	return Parse(data, time.Now())
}

// Parse validates and parses a message event. The event needs string event and
// session fields and a payload object with string id, from and body plus a
// boolean hasMedia. The payload timestamp is normalized to milliseconds, with
// now standing in for a missing or non-numeric value.
func Parse(data []byte, now time.Time) (Event, error) {
	fields, ok := object(data)
	if !ok {
		return Event{}, ErrNotMessageEvent
	}
	payloadFields, ok := object(fields["payload"])
	if !ok {
		return Event{}, ErrNotMessageEvent
	}

	var ev Event
	if !str(fields, "event", &ev.Event) ||
		!str(fields, "session", &ev.Session) ||
		!str(payloadFields, "id", &ev.Payload.ID) ||
		!str(payloadFields, "from", &ev.Payload.From) ||
		!str(payloadFields, "body", &ev.Payload.Body) ||
		!boolean(payloadFields, "hasMedia", &ev.Payload.HasMedia) {
		return Event{}, ErrNotMessageEvent
	}

	var rawTimestamp any
	if raw, ok := payloadFields["timestamp"]; ok {
		_ = json.Unmarshal(raw, &rawTimestamp)
	}
	ev.Payload.Timestamp = NormalizeTimestamp(rawTimestamp, now)

	delete(fields, "event")
	delete(fields, "session")
	delete(fields, "payload")
	for _, key := range []string{"id", "timestamp", "from", "body", "hasMedia"} {
		delete(payloadFields, key)
	}
	ev.extra = fields
	ev.Payload.extra = payloadFields

	return ev, nil
}

// NormalizeTimestamp converts a raw timestamp to milliseconds since epoch.
// Values below 1e12 are taken as seconds. Anything that is not a finite
// number, or does not fit in int64 milliseconds, yields now. Applying it to a millisecond value is a no-op.
func NormalizeTimestamp(raw any, now time.Time) int64 {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int64:
		v = float64(n)
	case int:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return now.UnixMilli()
		}
		v = f
	default:
		return now.UnixMilli()
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return now.UnixMilli()
	}
	if v < secondsThreshold {
		v *= 1000
	}
	v = math.Round(v)
	// float64(math.MaxInt64) is 2^63, which does not fit
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return now.UnixMilli()
	}
	return int64(v)
}

func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func str(fields map[string]json.RawMessage, key string, dst *string) bool {
	raw := bytes.TrimSpace(fields[key])
	if len(raw) == 0 || raw[0] != '"' {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func boolean(fields map[string]json.RawMessage, key string, dst *bool) bool {
	switch string(bytes.TrimSpace(fields[key])) {
	case "true":
		*dst = true
		return true
	case "false":
		*dst = false
		return true
	default:
		return false
	}
}
