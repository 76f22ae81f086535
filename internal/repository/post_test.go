package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"folio/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{
		Slug:        "aprendendo-go",
		Title:       "Aprendendo Go",
		Description: "desc",
		Content:     "corpo",
		Status:      models.StatusDraft,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CreateDuplicateSlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_posts_slug" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.Post{Slug: "taken"})
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusFor(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	published := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY COALESCE(published_at, created_at) DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "published_at"}).
			AddRow(2, "newer", "Newer", published).
			AddRow(1, "older", "Older", nil))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	assert.Nil(t, posts[1].PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE slug = $1 ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs("aprendendo-go", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title"}).AddRow(1, "aprendendo-go", "Aprendendo Go"))

		post, err := repo.GetBySlug(ctx, "aprendendo-go")
		require.NoError(t, err)
		assert.Equal(t, "Aprendendo Go", post.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE slug = $1 ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetBySlug(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, 404, models.StatusFor(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title"}).AddRow(1, "old-slug", "Old"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title"}).AddRow(1, "new-slug", "New"))

	post, err := repo.Update(ctx, 1, map[string]interface{}{
		"title": "New",
		"slug":  "new-slug",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.Equal(t, "new-slug", post.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateUnknownID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Update(ctx, 42, map[string]interface{}{"title": "New"})
	require.Error(t, err)
	assert.Equal(t, 404, models.StatusFor(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("deletes existing row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 42)
		require.Error(t, err)
		assert.Equal(t, 404, models.StatusFor(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
