package client

import (
	"encoding/json"
	"fmt"
)

// PayloadMessage returns the human readable text carried by a payload and whether the payload describes an error.
//
// The backend replies with objects such as {"msg": "login ok"} or {"error": "..."}.
// Lists and objects without a message field return an empty string.
func PayloadMessage(payload json.RawMessage) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(payload, &obj); err != nil {
		return "", false
	}

	if v, ok := obj["error"]; ok && v != nil {
		return textOf(v), true
	}
	for _, key := range []string{"msg", "message", "description"} {
		if v, ok := obj[key]; ok && v != nil {
			return textOf(v), false
		}
	}
	return "", false
}

func textOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Decode unmarshals a payload into T for callers that know the backend's shape
func Decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("could not decode payload: %w", err)
	}
	return v, nil
}
