package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/aussiebroadwan/blog/internal/blog/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func createUser(t *testing.T, st store.Store, name string) domain.User {
	t.Helper()

	u, err := st.Users().CreateUser(t.Context(), domain.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "$argon2id$dummy",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(t.Context()))
}

func TestUsers(t *testing.T) {
	st := newStore(t)
	ctx := t.Context()

	alice := createUser(t, st, "alice")

	got, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)
	require.Equal(t, "alice@example.com", got.Email)

	got, err = st.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = st.Users().GetUserByID(ctx, 9999)
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := st.Users().UsernameExists(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Users().EmailExists(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Users().UsernameExists(ctx, "bob")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = st.Users().CreateUser(ctx, domain.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "x", CreatedAt: time.Now(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestPostsCRUD(t *testing.T) {
	st := newStore(t)
	ctx := t.Context()
	alice := createUser(t, st, "alice")

	now := time.Now().UTC().Truncate(time.Microsecond)
	img := "/media/cat.png"
	p, err := st.Posts().CreatePost(ctx, domain.Post{
		Title:     "Hello",
		Content:   "World",
		ImgURL:    &img,
		AuthorID:  alice.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	require.Equal(t, "alice", p.Author.Username)
	require.Equal(t, alice.ID, p.Author.ID)
	require.Equal(t, img, *p.ImgURL)
	require.True(t, now.Equal(p.CreatedAt))

	p.Title = "Hello again"
	p.ImgURL = nil
	p.UpdatedAt = now.Add(time.Second)
	require.NoError(t, st.Posts().UpdatePost(ctx, p))

	got, err := st.Posts().GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello again", got.Title)
	require.Nil(t, got.ImgURL)
	require.True(t, now.Equal(got.CreatedAt))
	require.True(t, now.Add(time.Second).Equal(got.UpdatedAt))

	require.NoError(t, st.Posts().DeletePost(ctx, p.ID))
	_, err = st.Posts().GetPost(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Posts().DeletePost(ctx, p.ID), store.ErrNotFound)
	require.ErrorIs(t, st.Posts().UpdatePost(ctx, p), store.ErrNotFound)
}

func TestListPostsNewestFirst(t *testing.T) {
	st := newStore(t)
	ctx := t.Context()
	alice := createUser(t, st, "alice")

	list, err := st.Posts().ListPosts(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	base := time.Now().UTC().Truncate(time.Microsecond)
	// Same timestamp twice to check the id tiebreak.
	stamps := []time.Time{base, base.Add(time.Millisecond), base.Add(time.Millisecond), base.Add(-time.Hour)}
	var ids []int64
	for i, ts := range stamps {
		p, err := st.Posts().CreatePost(ctx, domain.Post{
			Title: "t", Content: "c", AuthorID: alice.ID, CreatedAt: ts, UpdatedAt: ts,
		})
		require.NoError(t, err, "post %d", i)
		ids = append(ids, p.ID)
	}

	list, err = st.Posts().ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	got := make([]int64, 0, len(list))
	for _, p := range list {
		got = append(got, p.ID)
	}
	require.Equal(t, []int64{ids[2], ids[1], ids[0], ids[3]}, got)
}

func TestWithTxRollsBack(t *testing.T) {
	st := newStore(t)
	ctx := t.Context()
	alice := createUser(t, st, "alice")

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now().UTC()
		_, err := tx.Posts().CreatePost(ctx, domain.Post{
			Title: "t", Content: "c", AuthorID: alice.ID, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := st.Posts().ListPosts(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		return tx.WithTx(context.Background(), func(store.Tx) error { return nil })
	})
	require.Error(t, err, "nested transactions are rejected")
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	st := newStore(t)
	now := time.Now().UTC()

	_, err := st.Posts().CreatePost(t.Context(), domain.Post{
		Title: "t", Content: "c", AuthorID: 42, CreatedAt: now, UpdatedAt: now,
	})
	require.Error(t, err)
}
