package services

import (
	"context"
	"encoding/base64"
	"strings"

	"messenger-api/internal/storage"
	messenger_errors "messenger-api/pkg/errors"
	"messenger-api/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultAvatarType = "image/png"
	avatarPrefix      = "avatars"
)

type UploadService struct {
	store storage.ObjectStore
	log   *logger.Logger
}

func NewUploadService(store storage.ObjectStore, l *logger.Logger) *UploadService {
	if l == nil {
		l = logger.NewNop()
	}
	return &UploadService{store: store, log: l}
}

// UploadAvatar stores a base64 payload under a fresh avatars/ key and returns its public URL.
// The declared type is trusted; a mismatch with the sniffed type is only logged.
func (s *UploadService) UploadAvatar(ctx context.Context, data, contentType string) (string, error) {
	data = stripDataURL(strings.TrimSpace(data))
	if data == "" {
		return "", messenger_errors.Invalid("Missing file data")
	}
	if contentType == "" {
		contentType = DefaultAvatarType
	}

	body, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(body) == 0 {
		return "", messenger_errors.Invalid("Invalid file data")
	}

	if detected := mimetype.Detect(body); !detected.Is(contentType) {
		s.log.WarnCtx(ctx, "avatar content type mismatch",
			zap.String("declared", contentType), zap.String("detected", detected.String()))
	}

	key := buildObjectKey(contentType)
	if err := s.store.PutObject(ctx, key, contentType, body); err != nil {
		return "", err
	}
	s.log.InfoCtx(ctx, "avatar uploaded", zap.String("key", key), zap.Int("size", len(body)))
	return s.store.FileURL(key), nil
}

func buildObjectKey(contentType string) string {
	return avatarPrefix + "/" + uuid.New().String() + "." + extensionFor(contentType)
}

// extensionFor is the MIME subtype: "image/jpeg" gives "jpeg".
func extensionFor(contentType string) string {
	ext := contentType
	if i := strings.Index(ext, ";"); i >= 0 {
		ext = ext[:i]
	}
	if i := strings.LastIndex(ext, "/"); i >= 0 {
		ext = ext[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(ext))
}

func stripDataURL(data string) string {
	if !strings.HasPrefix(data, "data:") {
		return data
	}
	if i := strings.Index(data, ","); i >= 0 {
		return data[i+1:]
	}
	return ""
}
