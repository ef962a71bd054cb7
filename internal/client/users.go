package client

import (
	"context"
	"encoding/json"
	"net/http"
)

func (c *Client) ListUsers(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "list_users", http.MethodGet, "/api/users", nil)
}

// UpdateUser sends data as the body of PUT /api/users/{id}. The id is inserted in the path without escaping.
func (c *Client) UpdateUser(ctx context.Context, id string, data any) (json.RawMessage, error) {
	body, err := jsonBody(data, "marshaling update user request")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "update_user", http.MethodPut, "/api/users/"+id, body)
}

func (c *Client) DeleteUser(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, "delete_user", http.MethodDelete, "/api/users/"+id, nil)
}
