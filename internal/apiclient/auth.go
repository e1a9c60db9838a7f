// ABOUTME: Authentication endpoint
// ABOUTME: Exchanges credentials for a bearer token

package apiclient

import (
	"context"
	"net/http"

	"github.com/markalston/academia-console/internal/session"
)

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, req session.LoginRequest) (*session.LoginResponse, error) {
	var resp session.LoginResponse
	if err := c.send(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
