package blogsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListPosts returns every post, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.apiURL("/posts/"), nil)
	if err != nil {
		return nil, err
	}

	var out []Post
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost returns a single post.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.apiURL(postPath(id)), nil)
	if err != nil {
		return nil, err
	}

	var out Post
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func postPath(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}
