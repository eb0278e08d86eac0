package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogify/internal/config"
	"blogify/internal/models"
	"blogify/internal/observability"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// UploadKind selects the size cap applied to an incoming image.
type UploadKind string

const (
	UploadKindCover  UploadKind = "cover"
	UploadKindAvatar UploadKind = "avatar"
)

const DefaultUploadDir = "/tmp/blogify/uploads"

type UploadInput struct {
	Kind     UploadKind
	Filename string
	Content  []byte
}

type UploadService struct {
	uploadDir      string
	coverMaxBytes  int64
	avatarMaxBytes int64
}

func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := DefaultUploadDir
	coverMaxMB := 5
	avatarMaxMB := 2

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.CoverMaxSizeMB > 0 {
			coverMaxMB = cfg.CoverMaxSizeMB
		}
		if cfg.AvatarMaxSizeMB > 0 {
			avatarMaxMB = cfg.AvatarMaxSizeMB
		}
	}

	return &UploadService{
		uploadDir:      uploadDir,
		coverMaxBytes:  int64(coverMaxMB) * 1024 * 1024,
		avatarMaxBytes: int64(avatarMaxMB) * 1024 * 1024,
	}
}

func (s *UploadService) maxBytes(kind UploadKind) int64 {
	if kind == UploadKindAvatar {
		return s.avatarMaxBytes
	}
	return s.coverMaxBytes
}

// Save validates the upload and writes it to the upload directory. The
// returned URL is the public path the file is served under.
func (s *UploadService) Save(in UploadInput) (string, error) {
	if len(in.Content) == 0 {
		observability.UploadRejections.WithLabelValues("empty").Inc()
		return "", models.NewValidationError("No file uploaded")
	}

	limit := s.maxBytes(in.Kind)
	if int64(len(in.Content)) > limit {
		observability.UploadRejections.WithLabelValues("too_large").Inc()
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", limit/(1024*1024)))
	}

	detected := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detected) {
		observability.UploadRejections.WithLabelValues("bad_type").Inc()
		return "", models.NewValidationError("Invalid image type")
	}

	// Decode to prove the bytes really are an image, not just a matching
	// magic prefix.
	if _, _, err := image.Decode(bytes.NewReader(in.Content)); err != nil {
		observability.UploadRejections.WithLabelValues("undecodable").Inc()
		return "", models.NewValidationError("Invalid image file")
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), extensionFor(detected, in.Filename))

	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), in.Content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/uploads/" + name, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *UploadService) Dir() string {
	return s.uploadDir
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func extensionFor(contentType, filename string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	return ".bin"
}
