package blogsdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Auth Types
// ============================================================================

// TokenRequest is the body of POST /token/.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is returned by POST /token/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest is the body of POST /token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// AccessToken is returned by POST /token/refresh/.
type AccessToken struct {
	Access string `json:"access"`
}

// ============================================================================
// User Types
// ============================================================================

// User is the public view of an account. The password hash never leaves
// the server.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRequest is the body of POST /register/.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned with 201 by POST /register/.
type RegisterResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

// ============================================================================
// Post Types
// ============================================================================

// Post is a blog post as returned by the API.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImgURL    *string   `json:"imgUrl"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput is the body of POST /posts/ and PUT /posts/{id}/.
// Any author sent by a client is ignored by the server.
type PostInput struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	ImgURL  *string `json:"imgUrl,omitempty"`
}

// PostPatch is the body of PATCH /posts/{id}/. Nil fields are left
// untouched; ClearImgURL sends "imgUrl": null to remove the image.
type PostPatch struct {
	Title       *string
	Content     *string
	ImgURL      *string
	ClearImgURL bool
}

func (p PostPatch) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3)
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Content != nil {
		m["content"] = *p.Content
	}
	switch {
	case p.ClearImgURL:
		m["imgUrl"] = nil
	case p.ImgURL != nil:
		m["imgUrl"] = *p.ImgURL
	}
	return json.Marshal(m)
}

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the dependencies checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
