package server

import (
	"time"

	"blogify/internal/models"
	"blogify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Feed handles GET /. Visitors and regular users see approved blogs;
// admins see every status.
func (s *Server) Feed(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	blogs, err := s.blogService.Feed(c.Context(), p.Limit, p.Offset, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"blogs": blogs,
	})
}

// CreateBlog handles POST /blog/
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title" form:"title"`
		Body        string `json:"body" form:"body"`
		ScheduledAt string `json:"scheduled_at" form:"scheduled_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("scheduled_at must be an RFC 3339 timestamp"))
		}
		scheduledAt = &t
	}

	// Optional cover image.
	coverURL := ""
	if content, filename, ok, ferr := readFormFile(c, "cover_image"); ferr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read cover image upload"))
	} else if ok {
		url, uerr := s.uploadService.Save(service.UploadInput{
			Kind:     service.UploadKindCover,
			Filename: filename,
			Content:  content,
		})
		if uerr != nil {
			return respondServiceError(c, uerr)
		}
		coverURL = url
	}

	blog, err := s.blogService.CreateBlog(c.Context(), service.CreateBlogInput{
		UserID:        currentUser(c).ID,
		Title:         req.Title,
		Body:          req.Body,
		CoverImageURL: coverURL,
		ScheduledAt:   scheduledAt,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

// GetBlog handles GET /blog/:id and returns the blog with its comments.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetBlog(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListForBlog(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"blog":     blog,
		"comments": comments,
	})
}

// MyBlogs handles GET /blog/mine listing the caller's own blogs in every
// status, including rejection reasons.
func (s *Server) MyBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	blogs, err := s.blogService.ListByUser(c.Context(), currentUser(c).ID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"blogs": blogs,
	})
}

// UpdateBlog handles PUT /blog/:id/edit
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title" form:"title"`
		Body  string `json:"body" form:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	coverURL := ""
	if content, filename, ok, ferr := readFormFile(c, "cover_image"); ferr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read cover image upload"))
	} else if ok {
		url, uerr := s.uploadService.Save(service.UploadInput{
			Kind:     service.UploadKindCover,
			Filename: filename,
			Content:  content,
		})
		if uerr != nil {
			return respondServiceError(c, uerr)
		}
		coverURL = url
	}

	blog, err := s.blogService.UpdateBlog(c.Context(), service.UpdateBlogInput{
		UserID:        currentUser(c).ID,
		BlogID:        id,
		Title:         req.Title,
		Body:          req.Body,
		CoverImageURL: coverURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// DeleteBlog handles DELETE /blog/:id/delete
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.Context(), service.DeleteBlogInput{
		UserID: currentUser(c).ID,
		BlogID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog deleted",
	})
}
