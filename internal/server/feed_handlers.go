package server

import (
	"net/mail"
	"net/url"
	"time"

	"folio/internal/content"
	"folio/internal/listing"
	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// feedPost is the public representation of a post in feed and tag listings.
type feedPost struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	CoverURL    *string    `json:"coverUrl"`
	PublishedAt *time.Time `json:"publishedAt"`
	Views       int64      `json:"views"`
}

func (s *Server) toFeedPost(post *models.Post, views map[string]int64) *feedPost {
	pub := post.PublicationDate()
	return &feedPost{
		Slug:        post.Slug,
		Title:       post.Title,
		Description: post.Description,
		Tags:        post.Tags,
		CoverURL:    post.CoverURL,
		PublishedAt: &pub,
		Views:       views[post.Slug],
	}
}

// visiblePosts returns the posts the public surface may show: published, or
// scheduled with a publication date that has passed.
func (s *Server) visiblePosts(c *fiber.Ctx) ([]*models.Post, error) {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	visible := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if p.VisibleAt(now) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// GetFeed handles GET /api/feed?q=...&page=...
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.visiblePosts(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	query := c.Query("q")
	page := listing.ParsePage(c.Query("page"))
	result := listing.List(posts, query, page)

	slugs := make([]string, 0, len(result.Items)+1)
	if result.Hero != nil {
		slugs = append(slugs, result.Hero.Slug)
	}
	for _, p := range result.Items {
		slugs = append(slugs, p.Slug)
	}
	views := s.views.Counts(c.UserContext(), slugs)

	var hero *feedPost
	if result.Hero != nil {
		hero = s.toFeedPost(result.Hero, views)
	}
	items := make([]*feedPost, len(result.Items))
	for i, p := range result.Items {
		items[i] = s.toFeedPost(p, views)
	}

	return c.JSON(fiber.Map{
		"hero":       hero,
		"items":      items,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"query":      result.Query,
	})
}

// GetTag handles GET /api/tags/:tag
func (s *Server) GetTag(c *fiber.Ctx) error {
	tag := c.Params("tag")
	if decoded, err := url.QueryUnescape(tag); err == nil {
		tag = decoded
	}
	if tag == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Tag is required"))
	}

	posts, err := s.visiblePosts(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	matched := listing.ByTag(posts, tag)

	slugs := make([]string, len(matched))
	for i, p := range matched {
		slugs[i] = p.Slug
	}
	views := s.views.Counts(c.UserContext(), slugs)

	items := make([]*feedPost, len(matched))
	for i, p := range matched {
		items[i] = s.toFeedPost(p, views)
	}

	return c.JSON(fiber.Map{
		"tag":   tag,
		"items": items,
	})
}

// GetArticle handles GET /api/posts/:slug
func (s *Server) GetArticle(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	post, err := s.postService.GetBySlug(ctx, slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	// Drafts and not-yet-due scheduled posts are invisible to the public.
	if !post.VisibleAt(time.Now()) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", slug))
	}

	s.views.Bump(ctx, post.Slug)
	views := s.views.Counts(ctx, []string{post.Slug})

	pub := post.PublicationDate()
	return c.JSON(fiber.Map{
		"slug":        post.Slug,
		"title":       post.Title,
		"description": post.Description,
		"tags":        post.Tags,
		"coverUrl":    post.CoverURL,
		"publishedAt": pub,
		"readingTime": content.ReadingTime(post.Content),
		"lines":       content.Classify(post.Content),
		"views":       views[post.Slug],
	})
}

// Subscribe handles POST /api/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid email is required"))
	}

	if err := s.subscriberRepo.Create(c.UserContext(), &models.Subscriber{Email: req.Email}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}
