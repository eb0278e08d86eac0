package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"blogify/internal/models"
	"blogify/internal/repository"
	"blogify/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long a password reset token stays usable.
const resetTokenTTL = 24 * time.Hour

type UserService struct {
	userRepo    repository.UserRepository
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
	now         func() time.Time
}

type UpdateProfileInput struct {
	UserID   uint
	FullName string
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Users        int64 `json:"users"`
	Admins       int64 `json:"admins"`
	Blogs        int64 `json:"blogs"`
	Comments     int64 `json:"comments"`
	PendingBlogs int64 `json:"pending_blogs"`
}

func NewUserService(
	userRepo repository.UserRepository,
	blogRepo repository.BlogRepository,
	commentRepo repository.CommentRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(in.FullName)
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	user.FullName = fullName

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.ProfileImageURL = avatarURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole assigns a role from the closed role set.
func (s *UserService) SetRole(ctx context.Context, targetID uint, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, models.NewValidationError("Invalid role")
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and everything it authored. Admins cannot
// delete themselves; that would orphan the moderation session performing
// the delete.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You cannot delete your own account")
	}
	return s.userRepo.DeleteWithOwnedContent(ctx, targetID)
}

func (s *UserService) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	blogs, err := s.blogRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.blogRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Users:        users,
		Admins:       admins,
		Blogs:        blogs,
		Comments:     comments,
		PendingBlogs: pending,
	}, nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// IssueResetToken generates a reset token for the account behind email.
// Only the SHA-256 digest is stored. The empty return with nil error means
// no such account exists; callers respond identically either way so the
// endpoint cannot be used to probe for registered emails.
func (s *UserService) IssueResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}

	raw := uuid.NewString()
	hash := hashResetToken(raw)
	expiry := s.now().Add(resetTokenTTL)

	user.PasswordResetHash = &hash
	user.PasswordResetExpiry = &expiry
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return raw, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// The token is single use; the stored digest is cleared on success.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" {
		return models.NewUnauthorizedError("Invalid or expired reset token")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByResetHash(ctx, hashResetToken(rawToken))
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewUnauthorizedError("Invalid or expired reset token")
	}
	if user.PasswordResetExpiry == nil || s.now().After(*user.PasswordResetExpiry) {
		return models.NewUnauthorizedError("Invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	user.PasswordResetHash = nil
	user.PasswordResetExpiry = nil
	return s.userRepo.Update(ctx, user)
}
