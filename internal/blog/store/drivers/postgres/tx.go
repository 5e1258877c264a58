package postgres

import (
	"context"

	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/jackc/pgx/v5"
)

type txStore struct {
	tx pgx.Tx
	// ctx is the context the transaction was started with. Commit and
	// Rollback use it since store.Tx does not take one.
	ctx context.Context
}

func (t *txStore) Commit() error   { return t.tx.Commit(t.ctx) }
func (t *txStore) Rollback() error { return t.tx.Rollback(context.WithoutCancel(t.ctx)) }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, pgx.ErrTxClosed
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.ErrTxClosed
}

func (t *txStore) Users() store.Users { return &usersRepo{q: t.tx} }
func (t *txStore) Posts() store.Posts { return &postsRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil }
