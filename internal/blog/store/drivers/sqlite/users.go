package sqlite

import (
	"context"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
)

type usersRepo struct {
	q querier
}

const selectUser = `SELECT id, username, email, password_hash, created_at FROM users`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		createdAt int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = fromMicros(createdAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, selectUser+` WHERE username = ?`, username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?) RETURNING id`,
		u.Username, u.Email, u.PasswordHash, toMicros(u.CreatedAt),
	).Scan(&u.ID)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return u, nil
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = ?)`, username)
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower(?))`, email)
}

func (r *usersRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
