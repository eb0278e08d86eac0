package repository

import (
	"context"
	"errors"

	"blogify/internal/models"

	"gorm.io/gorm"
)

// visibleStatuses is the WHERE clause for publicly readable blogs. Rows
// written before moderation existed carry an empty or NULL status and stay
// visible.
const visibleStatuses = "blogs.status = ? OR blogs.status = '' OR blogs.status IS NULL"

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	// IncrementViewCount bumps the counter atomically in the database so
	// concurrent readers never lose each other's increment.
	IncrementViewCount(ctx context.Context, id uint) error
	// ListFeed returns approved blogs newest first. With includeAll it
	// returns every blog regardless of status, for admin listings.
	ListFeed(ctx context.Context, limit, offset int, includeAll bool) ([]models.Blog, error)
	ListByStatus(ctx context.Context, status models.BlogStatus, limit, offset int) ([]models.Blog, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	// DeleteWithComments removes the blog and its comments, comments first,
	// in a single transaction.
	DeleteWithComments(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.BlogStatus) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// withCommentsCount selects blog columns plus the live comment count.
func (r *blogRepository) withCommentsCount(db *gorm.DB) *gorm.DB {
	return db.Select("blogs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id) as comments_count")
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Preload("CreatedBy").
		Preload("ApprovedBy").
		First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	blog.NormalizeStatus()
	return &blog, nil
}

func (r *blogRepository) IncrementViewCount(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Blog", id)
	}
	return nil
}

func (r *blogRepository) ListFeed(ctx context.Context, limit, offset int, includeAll bool) ([]models.Blog, error) {
	var blogs []models.Blog
	query := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Preload("CreatedBy")
	if !includeAll {
		query = query.Where(visibleStatuses, models.StatusApproved)
	}
	if err := query.
		Order("blogs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range blogs {
		blogs[i].NormalizeStatus()
	}
	return blogs, nil
}

func (r *blogRepository) ListByStatus(ctx context.Context, status models.BlogStatus, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Preload("CreatedBy").
		Where("blogs.status = ?", status).
		Order("blogs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.withCommentsCount(r.db.WithContext(ctx).Model(&models.Blog{})).
		Preload("CreatedBy").
		Where("blogs.created_by_id = ?", userID).
		Order("blogs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range blogs {
		blogs[i].NormalizeStatus()
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) DeleteWithComments(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Blog{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Blog", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *blogRepository) CountByStatus(ctx context.Context, status models.BlogStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
