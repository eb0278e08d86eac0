package server

import (
	"blogify/internal/models"
	"blogify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Dashboard handles GET /admin/ with counts and recent activity.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	stats, err := s.userService.Stats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	recentBlogs, err := s.blogService.Feed(c.Context(), 10, 0, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	recentUsers, err := s.userService.ListUsers(c.Context(), 10, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"stats":        stats,
		"recent_blogs": recentBlogs,
		"recent_users": recentUsers,
	})
}

// AdminListUsers handles GET /admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"users": users,
	})
}

// SetUserRole handles POST /admin/users/:id/role
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role" form:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetRole(c.Context(), id, models.Role(req.Role))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// AdminDeleteUser handles DELETE /admin/users/:id. Deleting your own
// account is refused.
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), currentUser(c).ID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User and their content deleted",
	})
}

// AdminListBlogs handles GET /admin/blogs across every status.
func (s *Server) AdminListBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	blogs, err := s.blogService.Feed(c.Context(), p.Limit, p.Offset, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"blogs": blogs,
	})
}

// BlogApprovals handles GET /admin/blog-approvals: the pending queue plus
// the most recently approved blogs.
func (s *Server) BlogApprovals(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	pending, err := s.blogService.PendingApprovals(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	approved, err := s.blogRepo.ListByStatus(c.Context(), models.StatusApproved, 10, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"pending":           pending,
		"recently_approved": approved,
	})
}

// ApproveBlog handles POST /admin/blogs/:id/approve
func (s *Server) ApproveBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.ApproveBlog(c.Context(), currentUser(c).ID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// RejectBlog handles POST /admin/blogs/:id/reject
func (s *Server) RejectBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason" form:"reason"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.RejectBlog(c.Context(), currentUser(c).ID, id, req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// AdminDeleteBlog handles DELETE /admin/blogs/:id
func (s *Server) AdminDeleteBlog(c *fiber.Ctx) error {
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

// AdminListComments handles GET /admin/comments
func (s *Server) AdminListComments(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	comments, err := s.commentService.ListAll(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// AdminDeleteComment handles DELETE /admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), currentUser(c).ID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
