package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/pkg/blogsdk"
	"github.com/aussiebroadwan/blog/pkg/httpx"
)

func toUser(u domain.User) blogsdk.User {
	return blogsdk.User{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toPost(p domain.Post) blogsdk.Post {
	return blogsdk.Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImgURL:    p.ImgURL,
		Author:    toUser(p.Author),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPosts(ps []domain.Post) []blogsdk.Post {
	out := make([]blogsdk.Post, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPost(p))
	}
	return out
}

// callerFrom returns the identity placed in the context by the authn
// middleware, or nil for anonymous requests.
func callerFrom(r *http.Request) *domain.Identity {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return nil
	}
	caller, err := service.IdentityFromClaims(claims)
	if err != nil {
		return nil
	}
	return caller
}

func asValidation(err error) (*service.ValidationError, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
