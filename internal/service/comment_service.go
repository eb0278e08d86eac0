package service

import (
	"context"
	"strings"

	"blogify/internal/models"
	"blogify/internal/repository"
)

const maxCommentLen = 5000

type CommentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type AddCommentInput struct {
	UserID  uint
	BlogID  uint
	Content string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	blogRepo repository.BlogRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	// The blog must exist; commenting on a missing blog is a 404, not an
	// orphan row.
	if _, err := s.blogRepo.GetByID(ctx, in.BlogID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:     content,
		BlogID:      in.BlogID,
		CreatedByID: in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListForBlog(ctx context.Context, blogID uint) ([]models.Comment, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByBlog(ctx, blogID)
}

func (s *CommentService) ListAll(ctx context.Context, limit, offset int) ([]models.Comment, error) {
	return s.commentRepo.List(ctx, limit, offset)
}

// DeleteComment is a moderation action reserved for admins.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	if s.isAdmin == nil {
		return models.NewForbiddenError("Only admins can delete comments")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError("Only admins can delete comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
