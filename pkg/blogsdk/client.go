package blogsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// DefaultBasePath is the prefix of every API route.
const DefaultBasePath = "/api"

// Client talks to a blog server. It covers anonymous operations and
// creates authenticated Sessions.
type Client struct {
	BaseURL    string
	BasePath   string
	HTTPClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		BasePath: DefaultBasePath,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login obtains a token pair and wraps it in a Session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	pair, err := c.ObtainTokenPair(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(pair.Access, pair.Refresh), nil
}
