package client

import "testing"

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-123_XYZ.~", "abc-123_XYZ.~"},
		{"a/b", "a%2Fb"},
		{"a b", "a%20b"},
		{"!*'()", "!*'()"},
		{"?&=+$,;:@#", "%3F%26%3D%2B%24%2C%3B%3A%40%23"},
		{"%", "%25"},
		{"café", "caf%C3%A9"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EncodeURIComponent(tt.in); got != tt.want {
				t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPayloadMessage(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantMsg   string
		wantError bool
	}{
		{"msg", `{"msg":"login ok"}`, "login ok", false},
		{"error", `{"error":"Carrito vacío"}`, "Carrito vacío", true},
		{"error wins over msg", `{"msg":"x","error":"y"}`, "y", true},
		{"null error ignored", `{"error":null,"message":"fine"}`, "fine", false},
		{"non string error", `{"error":{"code":1}}`, `{"code":1}`, true},
		{"list", `[{"id":"p1"}]`, "", false},
		{"no message", `{"user_id":null,"is_admin":false}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, isError := PayloadMessage([]byte(tt.payload))
			if msg != tt.wantMsg || isError != tt.wantError {
				t.Errorf("PayloadMessage(%s) = (%q, %v), want (%q, %v)", tt.payload, msg, isError, tt.wantMsg, tt.wantError)
			}
		})
	}
}
