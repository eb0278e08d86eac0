package server

import (
	"blogify/internal/models"
	"blogify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /user/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	blogs, err := s.blogService.ListByUser(c.Context(), user.ID, 10, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"blogs": blogs,
	})
}

// UpdateProfile handles PUT /user/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name" form:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUser(c).ID,
		FullName: req.FullName,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateAvatar handles POST /user/profile/update-avatar. A request without
// a file changes nothing.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	content, filename, ok, err := readFormFile(c, "avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read avatar upload"))
	}
	if !ok {
		return c.JSON(currentUser(c))
	}

	url, err := s.uploadService.Save(service.UploadInput{
		Kind:     service.UploadKindAvatar,
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.UpdateAvatar(c.Context(), currentUser(c).ID, url)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
