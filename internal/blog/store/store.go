package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a transaction can hand out
// the same repositories bound to the tx.
type Store interface {
	Users() Users
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used to check credentials.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts u and returns it with its assigned id. A duplicate
	// username or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Posts interface {
	// ListPosts returns every post with its author, newest first.
	ListPosts(ctx context.Context) ([]domain.Post, error)

	GetPost(ctx context.Context, id int64) (domain.Post, error)

	// CreatePost inserts p and returns it with id and author populated.
	CreatePost(ctx context.Context, p domain.Post) (domain.Post, error)

	// UpdatePost writes title, content, img_url and updated_at. Author and
	// created_at are never touched.
	UpdatePost(ctx context.Context, p domain.Post) error

	DeletePost(ctx context.Context, id int64) error
}
