package blogsdk

import (
	"context"
	"net/http"
)

// CreatePost publishes a post authored by the session's user.
func (s *Session) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	return s.sendPost(ctx, http.MethodPost, "/posts/", in, http.StatusCreated)
}

// UpdatePost replaces title, content and image of a post.
func (s *Session) UpdatePost(ctx context.Context, id int64, in PostInput) (*Post, error) {
	return s.sendPost(ctx, http.MethodPut, postPath(id), in, http.StatusOK)
}

// PatchPost changes only the fields set in patch.
func (s *Session) PatchPost(ctx context.Context, id int64, patch PostPatch) (*Post, error) {
	return s.sendPost(ctx, http.MethodPatch, postPath(id), patch, http.StatusOK)
}

// DeletePost removes a post.
func (s *Session) DeletePost(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, postPath(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) sendPost(ctx context.Context, method, path string, body any, want int) (*Post, error) {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := decodeJSON(resp, &post, want); err != nil {
		return nil, err
	}
	return &post, nil
}
