package waha

import "encoding/json"

// Keys that wrap list responses, depending on WAHA version and engine
var (
	ChatListKeys    = []string{"chats", "data", "items"}
	MessageListKeys = []string{"messages", "data", "items"}
)

// Items extracts a list from a response that is either a bare array or an
// object holding the array under one of keys. Anything else yields an empty list.
func Items(raw json.RawMessage, keys ...string) []json.RawMessage {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []json.RawMessage{}
		}
		return list
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return []json.RawMessage{}
	}
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, &list); err == nil && list != nil {
			return list
		}
	}
	return []json.RawMessage{}
}
