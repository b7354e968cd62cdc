package service

import (
	"bytes"
	"context"
	"path"
	"strings"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/storage"

	"github.com/google/uuid"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
	store        storage.Storage
}

func NewSettingsService(settingsRepo repository.SettingsRepository, store storage.Storage) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, store: store}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.BusinessSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings overwrites the whole singleton row. Last write wins.
func (s *settingsService) UpdateSettings(ctx context.Context, settings *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	if settings.Name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if settings.VatRate < 0 || settings.VatRate >= 1 {
		return nil, domain.NewValidationError("vatRate", "must be a fraction between 0 and 1")
	}
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return s.settingsRepo.Get(ctx)
}

// UploadImage stores branding and content images under a random key so
// re-uploads never collide, and returns the public URL to persist.
func (s *settingsService) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.NewValidationError("file", "empty upload")
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
	default:
		return "", domain.NewValidationError("file", "unsupported image type")
	}

	key := "images/" + uuid.NewString() + ext
	return s.store.Save(ctx, key, bytes.NewReader(data))
}
