package repository

import (
	"context"
	"testing"
	"time"

	"folio/internal/database"
	"folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupSQLiteDB gives each test a real schema on an in-memory database.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPostRepository_SQLiteRoundTrip(t *testing.T) {
	repo := NewPostRepository(setupSQLiteDB(t))
	ctx := context.Background()

	published := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	post := &models.Post{
		Slug:        "aprendendo-go",
		Title:       "Aprendendo Go",
		Description: "desc",
		Content:     "# Olá\n\ncorpo",
		Tags:        []string{"Go", "Programação"},
		Status:      models.StatusPublished,
		PublishedAt: &published,
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetBySlug(ctx, "aprendendo-go")
	require.NoError(t, err)
	assert.Equal(t, "Aprendendo Go", got.Title)
	assert.Equal(t, []string{"Go", "Programação"}, got.Tags)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(published))
}

func TestPostRepository_SQLiteDuplicateSlug(t *testing.T) {
	repo := NewPostRepository(setupSQLiteDB(t))
	ctx := context.Background()

	first := &models.Post{Slug: "unico", Title: "Primeiro", Description: "d", Content: "c"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Post{Slug: "unico", Title: "Segundo", Description: "d", Content: "c"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusFor(err))

	// the first post is untouched
	got, err := repo.GetBySlug(ctx, "unico")
	require.NoError(t, err)
	assert.Equal(t, "Primeiro", got.Title)
}

func TestPostRepository_SQLiteUpdateAndList(t *testing.T) {
	repo := NewPostRepository(setupSQLiteDB(t))
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.Post{
		Slug: "velho", Title: "Velho", Description: "d", Content: "c",
		Status: models.StatusPublished, PublishedAt: &older,
	}))
	require.NoError(t, repo.Create(ctx, &models.Post{
		Slug: "novo", Title: "Novo", Description: "d", Content: "c",
		Status: models.StatusPublished, PublishedAt: &newer,
	}))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "novo", posts[0].Slug)

	updated, err := repo.Update(ctx, posts[1].ID, map[string]interface{}{
		"title":  "Velho, renovado",
		"tags":   []string{"Go", "Web"},
		"status": models.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Web"}, updated.Tags)

	got, err := repo.GetByID(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Velho, renovado", got.Title)
	assert.Equal(t, []string{"Go", "Web"}, got.Tags)
	assert.Equal(t, models.StatusDraft, got.Status)
}

func TestPostRepository_SQLiteDelete(t *testing.T) {
	repo := NewPostRepository(setupSQLiteDB(t))
	ctx := context.Background()

	post := &models.Post{Slug: "efemero", Title: "T", Description: "d", Content: "c"}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)
	assert.Equal(t, 404, models.StatusFor(err))

	err = repo.Delete(ctx, post.ID)
	require.Error(t, err)
	assert.Equal(t, 404, models.StatusFor(err))
}
