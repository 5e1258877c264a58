package domain

import "time"

// Post is a blog post. AuthorID is fixed at creation. Author is populated
// on reads.
type Post struct {
	ID        int64
	Title     string
	Content   string
	ImgURL    *string
	AuthorID  int64
	Author    User
	CreatedAt time.Time
	UpdatedAt time.Time
}
