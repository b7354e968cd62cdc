package service

import (
	"context"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"

	"github.com/google/uuid"
)

type contentService struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) ListAdverts(ctx context.Context) ([]domain.Advert, error) {
	return s.contentRepo.ListAdverts(ctx)
}

func (s *contentService) AddAdvert(ctx context.Context, advert *domain.Advert) (*domain.Advert, error) {
	if advert.Title == "" {
		return nil, domain.NewValidationError("title", "required")
	}
	if advert.ID == "" {
		advert.ID = uuid.NewString()
	}
	if err := s.contentRepo.CreateAdvert(ctx, advert); err != nil {
		return nil, err
	}
	return advert, nil
}

func (s *contentService) UpdateAdvert(ctx context.Context, advert *domain.Advert) (*domain.Advert, error) {
	if advert.ID == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := s.contentRepo.UpdateAdvert(ctx, advert); err != nil {
		return nil, err
	}
	return advert, nil
}

func (s *contentService) DeleteAdvert(ctx context.Context, id string) error {
	return s.contentRepo.DeleteAdvert(ctx, id)
}

func (s *contentService) ListGallery(ctx context.Context, limit int32) ([]domain.GalleryImage, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.contentRepo.ListGallery(ctx, limit)
}

func (s *contentService) AddGalleryImage(ctx context.Context, image *domain.GalleryImage) (*domain.GalleryImage, error) {
	if image.ImageURL == "" {
		return nil, domain.NewValidationError("imageUrl", "required")
	}
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if err := s.contentRepo.CreateGalleryImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *contentService) DeleteGalleryImage(ctx context.Context, id string) error {
	return s.contentRepo.DeleteGalleryImage(ctx, id)
}

func (s *contentService) ListServices(ctx context.Context) ([]domain.ServiceContent, error) {
	return s.contentRepo.ListServices(ctx)
}

func (s *contentService) AddService(ctx context.Context, svc *domain.ServiceContent) (*domain.ServiceContent, error) {
	if svc.Title == "" {
		return nil, domain.NewValidationError("title", "required")
	}
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	if err := s.contentRepo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *contentService) UpdateService(ctx context.Context, svc *domain.ServiceContent) (*domain.ServiceContent, error) {
	if svc.ID == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := s.contentRepo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *contentService) DeleteService(ctx context.Context, id string) error {
	return s.contentRepo.DeleteService(ctx, id)
}
