package blogsdk

import (
	"context"
	"net/http"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiURL("/register/"), req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ObtainTokenPair exchanges credentials for an access and refresh token.
func (c *Client) ObtainTokenPair(ctx context.Context, username, password string) (*TokenPair, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiURL("/token/"), TokenRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out TokenPair
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*AccessToken, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiURL("/token/refresh/"), RefreshRequest{Refresh: refresh})
	if err != nil {
		return nil, err
	}

	var out AccessToken
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
