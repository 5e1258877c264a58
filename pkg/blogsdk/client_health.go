package blogsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/blog/pkg/jwtx"
)

// Liveness checks if the server is up.
func (c *Client) Liveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readiness checks if the server can serve traffic.
func (c *Client) Readiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// JWKS fetches the public signing keys. It is empty when the server signs
// with HS256.
func (c *Client) JWKS(ctx context.Context) (*jwtx.JWKS, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.url("/.well-known/jwks.json"), nil)
	if err != nil {
		return nil, err
	}

	var jwks jwtx.JWKS
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}
