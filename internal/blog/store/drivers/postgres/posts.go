package postgres

import (
	"context"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/jackc/pgx/v5"
)

type postsRepo struct {
	q querier
}

const selectPost = `
SELECT p.id, p.title, p.content, p.img_url, p.author_id, p.created_at, p.updated_at,
       u.username, u.email, u.created_at
FROM posts p
JOIN users u ON u.id = p.author_id`

func scanPost(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.ImgURL, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.Username, &p.Author.Email, &p.Author.CreatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}
	p.Author.ID = p.AuthorID
	p.CreatedAt = utc(p.CreatedAt)
	p.UpdatedAt = utc(p.UpdatedAt)
	p.Author.CreatedAt = utc(p.Author.CreatedAt)
	return p, nil
}

func (r *postsRepo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.q.Query(ctx, selectPost+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (r *postsRepo) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	p, err := scanPost(r.q.QueryRow(ctx, selectPost+` WHERE p.id = $1`, id))
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO posts (title, content, img_url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.Title, p.Content, p.ImgURL, p.AuthorID, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return domain.Post{}, mapConstraint(err)
	}
	return r.GetPost(ctx, id)
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE posts SET title = $1, content = $2, img_url = $3, updated_at = $4 WHERE id = $5`,
		p.Title, p.Content, p.ImgURL, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

func (r *postsRepo) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
