package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

// PostService creates, reads and changes posts, enforcing CanWrite on every
// mutation.
type PostService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

// PostFields holds client-supplied post fields. A nil Title or Content
// means the field was absent. ImgURLSet distinguishes an absent imgUrl from
// an explicit null.
type PostFields struct {
	Title     *string
	Content   *string
	ImgURL    *string
	ImgURLSet bool

	// Invalid holds type errors found while decoding the request. They are
	// reported with the other field errors, after the author check.
	Invalid map[string][]string

	// Malformed is set when the body could not be read at all. Like Invalid
	// it is returned only once the caller is known to be the author.
	Malformed error
}

// postInput is what gets validated once the fields are resolved.
type postInput struct {
	Title   string  `json:"title" validate:"notblank,max=200"`
	Content string  `json:"content" validate:"notblank"`
	ImgURL  *string `json:"imgUrl" validate:"omitnil,max=500"`
}

func (s *PostService) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Truncate(time.Microsecond)
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.Store.Posts().ListPosts(ctx)
}

// Retrieve returns the post with id or ErrPostNotFound.
func (s *PostService) Retrieve(ctx context.Context, id int64) (domain.Post, error) {
	p, err := s.Store.Posts().GetPost(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Post{}, ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

// Create stores a new post authored by caller. Any author in the request is
// ignored by construction: the author always comes from caller.
func (s *PostService) Create(ctx context.Context, in PostFields, caller *domain.Identity) (domain.Post, error) {
	if caller == nil {
		return domain.Post{}, ErrUnauthenticated
	}

	var p domain.Post
	if err := applyFields(&p, in, false); err != nil {
		return domain.Post{}, err
	}

	now := s.now()
	p.AuthorID = caller.UserID
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.Store.Posts().CreatePost(ctx, p)
	if err != nil {
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}

	slogx.FromContext(ctx).Info("post created",
		slog.Int64("post_id", created.ID), slog.Int64("author_id", caller.UserID))
	return created, nil
}

// Update changes the fields of post id. With partial set only the fields
// present in in are applied (PATCH); otherwise title and content are
// required (PUT). The author check runs before any field is looked at.
func (s *PostService) Update(ctx context.Context, id int64, in PostFields, partial bool, caller *domain.Identity) (domain.Post, error) {
	if caller == nil {
		return domain.Post{}, ErrUnauthenticated
	}

	var updated domain.Post
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := s.authorize(ctx, tx, id, caller)
		if err != nil {
			return err
		}

		if err := applyFields(&p, in, partial); err != nil {
			return err
		}

		// updated_at must move forward even when the clock has not.
		now := s.now()
		if minNext := p.UpdatedAt.Add(time.Microsecond); now.Before(minNext) {
			now = minNext
		}
		p.UpdatedAt = now

		if err := tx.Posts().UpdatePost(ctx, p); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("update post: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return updated, nil
}

// Delete removes post id if caller is its author.
func (s *PostService) Delete(ctx context.Context, id int64, caller *domain.Identity) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.authorize(ctx, tx, id, caller); err != nil {
			return err
		}
		if err := tx.Posts().DeletePost(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("post deleted",
		slog.Int64("post_id", id), slog.Int64("author_id", caller.UserID))
	return nil
}

// authorize loads post id and checks caller may write it.
func (s *PostService) authorize(ctx context.Context, tx store.Tx, id int64, caller *domain.Identity) (domain.Post, error) {
	p, err := tx.Posts().GetPost(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Post{}, ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}

	if !CanWrite(p, caller) {
		slogx.FromContext(ctx).Warn("post write denied",
			slog.Int64("post_id", id), slog.Int64("user_id", caller.UserID))
		return domain.Post{}, ErrForbidden
	}
	return p, nil
}

// applyFields merges in into p and validates the result. Unless partial is
// set, title and content must be present.
func applyFields(p *domain.Post, in PostFields, partial bool) error {
	if in.Malformed != nil {
		return in.Malformed
	}

	verr := &ValidationError{}
	for field, msgs := range in.Invalid {
		for _, msg := range msgs {
			verr.add(field, msg)
		}
	}
	if !partial {
		if _, ok := in.Invalid["title"]; !ok && in.Title == nil {
			verr.add("title", msgRequired)
		}
		if _, ok := in.Invalid["content"]; !ok && in.Content == nil {
			verr.add("content", msgRequired)
		}
	}
	if err := verr.err(); err != nil {
		return err
	}

	next := postInput{Title: p.Title, Content: p.Content, ImgURL: p.ImgURL}
	if in.Title != nil {
		next.Title = *in.Title
	}
	if in.Content != nil {
		next.Content = *in.Content
	}
	if in.ImgURLSet {
		next.ImgURL = in.ImgURL
	}

	if err := validateStruct(next); err != nil {
		return err
	}

	p.Title = next.Title
	p.Content = next.Content
	p.ImgURL = next.ImgURL
	return nil
}

