package webhook

import (
	"encoding/json"
	"fmt"
)

/* Event represents a message event pushed by WAHA
 * Uses value semantics as it represents data, not behavior
 * Fields the dashboard does not read (me, engine, _data, ...) are kept
 * as raw JSON and written back unchanged
 */
type Event struct {
	Event   string  `json:"event"`
	Session string  `json:"session"`
	Payload Payload `json:"payload"`

	extra map[string]json.RawMessage
}

// Payload is the message part of an Event. Timestamp is milliseconds since epoch.
type Payload struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	From      string `json:"from"`
	Body      string `json:"body"`
	HasMedia  bool   `json:"hasMedia"`

	extra map[string]json.RawMessage
}

// MarshalJSON returns the JSON encoding of the event, unknown fields included
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return mergeFields(Alias(e), e.extra)
}

// UnmarshalJSON parses a WAHA event, rejecting anything that is not a message event
func (e *Event) UnmarshalJSON(data []byte) error {
	ev, err := Decode(data)
	if err != nil {
		return err
	}
	*e = ev
	return nil
}

// MarshalJSON returns the JSON encoding of the payload, unknown fields included
func (p Payload) MarshalJSON() ([]byte, error) {
	type Alias Payload
	return mergeFields(Alias(p), p.extra)
}

// Extra returns an unknown top-level field as raw JSON
func (e Event) Extra(key string) (json.RawMessage, bool) {
	v, ok := e.extra[key]
	return v, ok
}

// Extra returns an unknown payload field as raw JSON
func (p Payload) Extra(key string) (json.RawMessage, bool) {
	v, ok := p.extra[key]
	return v, ok
}

func mergeFields(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil {
		return nil, fmt.Errorf("marshaling known fields: %w", err)
	}
	if len(extra) == 0 {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("merging fields: %w", err)
	}
	merged := make(map[string]json.RawMessage, len(fields)+len(extra))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}
