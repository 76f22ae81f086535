// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"folio/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isDuplicate(err) {
			return models.NewConflictError("Slug already exists")
		}
		return models.NewUpstreamError(err)
	}
	return nil
}

// List returns all posts ordered by coalesce(published_at, created_at)
// descending, the canonical admin and feed order.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("COALESCE(published_at, created_at) DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewUpstreamError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewUpstreamError(err)
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slug)
		}
		return nil, models.NewUpstreamError(err)
	}
	return &post, nil
}

// Update applies a partial field replacement and returns the refreshed row.
// GORM refreshes updated_at on its own; callers never pass it.
func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Post, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Map-based Updates skip the model serializers, so tags must be
	// JSON-encoded here to match the stored column format.
	if tags, ok := fields["tags"].([]string); ok {
		encoded, err := json.Marshal(tags)
		if err != nil {
			return nil, models.NewUpstreamError(err)
		}
		fields["tags"] = string(encoded)
	}

	if err := r.db.WithContext(ctx).Model(post).Updates(fields).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.NewConflictError("Slug already exists")
		}
		return nil, models.NewUpstreamError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewUpstreamError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

// isDuplicate detects unique-constraint violations across drivers. GORM's
// TranslateError covers the common case; the message check catches raw
// driver errors surfaced by mocks and older drivers.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
