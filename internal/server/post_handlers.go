package server

import (
	"io"
	"strconv"

	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// readCover extracts the optional cover file from a multipart form. A form
// without a cover part yields nil without error.
func readCover(c *fiber.Ctx) (*service.CoverUpload, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, models.NewValidationError("Could not read cover upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, models.NewValidationError("Could not read cover upload")
	}

	return &service.CoverUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     data,
	}, nil
}

// AdminListPosts handles GET /api/posts. It returns every post including
// drafts, in publication order.
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   posts,
	})
}

// AdminCreatePost handles POST /api/posts (multipart form).
func (s *Server) AdminCreatePost(c *fiber.Ctx) error {
	cover, err := readCover(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Content:     c.FormValue("content"),
		TagsCSV:     c.FormValue("tags"),
		Status:      c.FormValue("status"),
		PublishedAt: c.FormValue("published_at"),
		Slug:        c.FormValue("slug"),
		Cover:       cover,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"slug":    post.Slug,
	})
}

// AdminUpdatePost handles PUT /api/posts (multipart form with an id field).
func (s *Server) AdminUpdatePost(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.FormValue("id"), 10, 32)
	if err != nil || id == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	cover, err := readCover(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:      uint(id),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Content:     c.FormValue("content"),
		TagsCSV:     c.FormValue("tags"),
		Status:      c.FormValue("status"),
		PublishedAt: c.FormValue("published_at"),
		Slug:        c.FormValue("slug"),
		Cover:       cover,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"slug":    post.Slug,
	})
}

// AdminDeletePost handles DELETE /api/posts?id=...
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	id := c.QueryInt("id")
	if id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	if err := s.postService.DeletePost(c.UserContext(), uint(id)); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
