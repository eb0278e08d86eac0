package service

import (
	"context"
	"testing"

	"blogify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByBlogFn  func(context.Context, uint) ([]models.Comment, error)
	listFn        func(context.Context, int, int) ([]models.Comment, error)
	deleteFn      func(context.Context, uint) error
	countFn       func(context.Context) (int64, error)
	countByBlogFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByBlog(ctx context.Context, blogID uint) ([]models.Comment, error) {
	return s.listByBlogFn(ctx, blogID)
}
func (s *commentRepoStub) List(ctx context.Context, limit, offset int) ([]models.Comment, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *commentRepoStub) CountByBlog(ctx context.Context, blogID uint) (int64, error) {
	return s.countByBlogFn(ctx, blogID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByBlogFn:  func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		listFn:        func(_ context.Context, _, _ int) ([]models.Comment, error) { return nil, nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
		countByBlogFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

func TestCommentService_AddComment_Validation(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopBlogRepo(), nil)

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, BlogID: 2, Content: "   "})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestCommentService_AddComment_MissingBlog(t *testing.T) {
	blogRepo := noopBlogRepo()
	blogRepo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return nil, models.NewNotFoundError("Blog", id)
	}
	svc := NewCommentService(noopCommentRepo(), blogRepo, nil)

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, BlogID: 2, Content: "hi"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentService_AddComment_Success(t *testing.T) {
	var created *models.Comment
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 11
		created = c
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return created, nil
	}

	svc := NewCommentService(commentRepo, noopBlogRepo(), nil)
	comment, err := svc.AddComment(context.Background(), AddCommentInput{
		UserID:  3,
		BlogID:  2,
		Content: "  nice post  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "nice post", comment.Content)
	assert.Equal(t, uint(2), comment.BlogID)
	assert.Equal(t, uint(3), comment.CreatedByID)
}

func TestCommentService_DeleteComment_AdminOnly(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		var deleted bool
		commentRepo := noopCommentRepo()
		commentRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewCommentService(commentRepo, noopBlogRepo(), adminCheck(true))
		require.NoError(t, svc.DeleteComment(context.Background(), 9, 4))
		assert.True(t, deleted)
	})

	t.Run("regular user", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopBlogRepo(), adminCheck(false))
		err := svc.DeleteComment(context.Background(), 1, 4)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})
}
