package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
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
	var (
		p                             domain.Post
		img                           sql.NullString
		created, updated, userCreated int64
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &img, &p.AuthorID, &created, &updated,
		&p.Author.Username, &p.Author.Email, &userCreated,
	)
	if err != nil {
		return domain.Post{}, err
	}
	p.ImgURL = mapNullStringPtr(img)
	p.CreatedAt = fromMicros(created)
	p.UpdatedAt = fromMicros(updated)
	p.Author.ID = p.AuthorID
	p.Author.CreatedAt = fromMicros(userCreated)
	return p, nil
}

func (r *postsRepo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.q.QueryContext(ctx, selectPost+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	p, err := scanPost(r.q.QueryRowContext(ctx, selectPost+` WHERE p.id = ?`, id))
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	var id int64
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, img_url, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		p.Title, p.Content, mapOptionalString(p.ImgURL), p.AuthorID,
		toMicros(p.CreatedAt), toMicros(p.UpdatedAt),
	).Scan(&id)
	if err != nil {
		return domain.Post{}, mapConstraint(err)
	}
	return r.GetPost(ctx, id)
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, img_url = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Content, mapOptionalString(p.ImgURL), toMicros(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *postsRepo) DeletePost(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
