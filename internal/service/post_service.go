// Package service holds the business rules for posts and admin access.
package service

import (
	"context"
	"strings"
	"time"

	"folio/internal/blob"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/repository"
	"folio/internal/slug"
)

type PostService struct {
	postRepo repository.PostRepository
	blobs    blob.Uploader
	now      func() time.Time
}

// CoverUpload is a cover image received with a create or update request.
type CoverUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

type CreatePostInput struct {
	Title       string
	Description string
	Content     string
	TagsCSV     string
	Status      string
	PublishedAt string
	Slug        string
	Cover       *CoverUpload
}

type UpdatePostInput struct {
	PostID      uint
	Title       string
	Description string
	Content     string
	TagsCSV     string
	Status      string
	PublishedAt string
	Slug        string
	Cover       *CoverUpload
}

func NewPostService(postRepo repository.PostRepository, blobs blob.Uploader) *PostService {
	return &PostService{
		postRepo: postRepo,
		blobs:    blobs,
		now:      time.Now,
	}
}

const maxTitleLen = 300

// CreatePost validates the input, uploads the cover when present and stores
// the post. The cover goes first so a failed upload never leaves a post
// pointing at a missing image.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	content := strings.TrimSpace(in.Content)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, models.NewValidationError("Invalid status")
	}

	postSlug := slug.Normalize(in.Slug)
	if postSlug == "" {
		postSlug = slug.Normalize(title)
	}
	if postSlug == "" {
		return nil, models.NewValidationError("Slug cannot be empty")
	}

	publishedAt, err := s.resolvePublishedAt(in.PublishedAt, status)
	if err != nil {
		return nil, err
	}

	var coverURL *string
	if in.Cover != nil {
		url, err := s.uploadCover(ctx, postSlug, in.Cover)
		if err != nil {
			return nil, err
		}
		coverURL = &url
	}

	post := &models.Post{
		Slug:        postSlug,
		Title:       title,
		Description: description,
		Content:     content,
		Tags:        models.ParseTags(in.TagsCSV),
		CoverURL:    coverURL,
		Status:      status,
		PublishedAt: publishedAt,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	middleware.PostsCreated.Inc()
	return post, nil
}

// UpdatePost rewrites an existing post with the given input. The cover URL
// is only replaced when a new cover was uploaded; otherwise the stored one
// is kept.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	content := strings.TrimSpace(in.Content)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, models.NewValidationError("Invalid status")
	}

	postSlug := slug.Normalize(in.Slug)
	if postSlug == "" {
		postSlug = slug.Normalize(title)
	}
	if postSlug == "" {
		return nil, models.NewValidationError("Slug cannot be empty")
	}

	publishedAt, err := s.resolvePublishedAt(in.PublishedAt, status)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"slug":         postSlug,
		"title":        title,
		"description":  description,
		"content":      content,
		"tags":         models.ParseTags(in.TagsCSV),
		"status":       status,
		"published_at": publishedAt,
	}

	if in.Cover != nil {
		url, err := s.uploadCover(ctx, postSlug, in.Cover)
		if err != nil {
			return nil, err
		}
		fields["cover_url"] = url
	}

	return s.postRepo.Update(ctx, in.PostID, fields)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	middleware.PostsDeleted.Inc()
	return nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, postSlug)
}

// resolvePublishedAt applies the publication date rules: drafts never carry
// a date, an explicit date wins otherwise, and publishing without one
// stamps now.
func (s *PostService) resolvePublishedAt(raw, status string) (*time.Time, error) {
	if status == models.StatusDraft {
		return nil, nil
	}
	raw = strings.TrimSpace(raw)
	if raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, models.NewValidationError("published_at must be an RFC 3339 timestamp")
		}
		return &parsed, nil
	}
	now := s.now()
	return &now, nil
}

func (s *PostService) uploadCover(ctx context.Context, postSlug string, cover *CoverUpload) (string, error) {
	if s.blobs == nil {
		return "", models.NewValidationError("Cover uploads are not configured")
	}
	if err := blob.ValidateImage(cover.Content); err != nil {
		return "", err
	}

	contentType := cover.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := blob.CoverKey(postSlug, s.now())
	url, err := s.blobs.Upload(ctx, key, contentType, cover.Content)
	if err != nil {
		return "", models.NewUpstreamError(err)
	}
	return url, nil
}
