// Package service contains business logic sitting between handlers and
// repositories.
package service

import (
	"context"
	"strings"
	"time"

	"blogify/internal/models"
	"blogify/internal/observability"
	"blogify/internal/repository"
)

const (
	maxTitleLen = 300
	maxBodyLen  = 50000
)

type BlogService struct {
	blogRepo repository.BlogRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
	now      func() time.Time
}

type CreateBlogInput struct {
	UserID        uint
	Title         string
	Body          string
	CoverImageURL string
	ScheduledAt   *time.Time
}

type UpdateBlogInput struct {
	UserID        uint
	BlogID        uint
	Title         string
	Body          string
	CoverImageURL string
}

type DeleteBlogInput struct {
	UserID uint
	BlogID uint
}

func NewBlogService(
	blogRepo repository.BlogRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		isAdmin:  isAdmin,
		now:      time.Now,
	}
}

func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}
	if in.ScheduledAt != nil && !in.ScheduledAt.After(s.now()) {
		return nil, models.NewValidationError("Scheduled publication time must be in the future")
	}

	blog := &models.Blog{
		Title:         title,
		Body:          body,
		CoverImageURL: in.CoverImageURL,
		CreatedByID:   in.UserID,
		Status:        models.StatusPending,
		ScheduledAt:   in.ScheduledAt,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID)
}

// GetBlog loads a blog by id and records the view. Every successful read
// bumps the view counter, the author's own reads included. Moderation status
// filters the feed, not direct reads.
func (s *BlogService) GetBlog(ctx context.Context, id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.blogRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	observability.BlogViews.Inc()
	blog.ViewCount++
	return blog, nil
}

// Feed lists publicly visible blogs. Admins asking for everything get all
// statuses.
func (s *BlogService) Feed(ctx context.Context, limit, offset int, viewer *models.User) ([]models.Blog, error) {
	includeAll := viewer != nil && viewer.IsAdmin()
	return s.blogRepo.ListFeed(ctx, limit, offset, includeAll)
}

func (s *BlogService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error) {
	return s.blogRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *BlogService) PendingApprovals(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	return s.blogRepo.ListByStatus(ctx, models.StatusPending, limit, offset)
}

// UpdateBlog lets the author edit title, body, and cover image. Moderation
// fields are untouched.
func (s *BlogService) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	if blog.CreatedByID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own blogs")
	}

	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}

	blog.Title = title
	blog.Body = body
	if in.CoverImageURL != "" {
		blog.CoverImageURL = in.CoverImageURL
	}
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// DeleteBlog removes a blog and its comments. Allowed for the author and
// for admins.
func (s *BlogService) DeleteBlog(ctx context.Context, in DeleteBlogInput) error {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
	if err != nil {
		return err
	}

	if blog.CreatedByID != in.UserID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own blogs")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own blogs")
		}
	}

	return s.blogRepo.DeleteWithComments(ctx, in.BlogID)
}

// ApproveBlog records the moderator's decision. A blog scheduled for a
// future time stays pending until an admin approves it again after the
// scheduled moment has passed; approval then publishes immediately.
func (s *BlogService) ApproveBlog(ctx context.Context, adminID, blogID uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	blog.ApprovedByID = &adminID
	blog.RejectionReason = ""
	if blog.ScheduledInFuture(s.now()) {
		blog.Status = models.StatusPending
		blog.IsPublished = false
	} else {
		blog.Status = models.StatusApproved
		blog.IsPublished = true
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	observability.ModerationDecisions.WithLabelValues("approve").Inc()
	return blog, nil
}

// RejectBlog marks the blog rejected. An empty reason is stored as the
// default wording so authors always see an explanation.
func (s *BlogService) RejectBlog(ctx context.Context, adminID, blogID uint, reason string) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.DefaultRejectionReason
	}

	blog.Status = models.StatusRejected
	blog.RejectionReason = reason
	blog.ApprovedByID = &adminID
	blog.IsPublished = false

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	observability.ModerationDecisions.WithLabelValues("reject").Inc()
	return blog, nil
}
