package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// LoginRequest is the body sent to /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body sent to /api/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates with the storefront API. On success the backend sets a session cookie that is kept in the client's cookie jar.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	body, err := jsonBody(LoginRequest{Email: email, Password: password}, "marshaling login request")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "login", http.MethodPost, "/api/login", body)
}

// Me returns the session details ({"user_id", "is_admin"})
func (c *Client) Me(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "me", http.MethodGet, "/api/me", nil)
}

// Logout ends the backend session.
// Sent as a GET, matching the browser client this replaces.
func (c *Client) Logout(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "logout", http.MethodGet, "/api/logout", nil)
}

// Register creates a user account
func (c *Client) Register(ctx context.Context, username, password string) (json.RawMessage, error) {
	body, err := jsonBody(RegisterRequest{Username: username, Password: password}, "marshaling register request")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "register", http.MethodPost, "/api/register", body)
}
