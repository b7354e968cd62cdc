package repository

import (
	"context"
	"time"

	"kreol-backend/internal/domain"
)

// Fields is a sparse column update: keys are snake_case column names.
// Services decide which fields make it into the map; repositories write
// exactly what they are given.
type Fields map[string]interface{}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error)
	ListOptions(ctx context.Context) ([]domain.Booking, error)
	ListByClient(ctx context.Context, clientID, email string) ([]domain.Booking, error)
	ListByPickupRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	CountByStatus(ctx context.Context) (domain.BookingCounts, error)
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Invoice, int32, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	ListByClient(ctx context.Context, clientID, email string) ([]domain.Invoice, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error)
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	ListAll(ctx context.Context) ([]domain.Expense, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Expense, error)
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Update(ctx context.Context, settings *domain.BusinessSettings) error
}

type ContentRepository interface {
	ListAdverts(ctx context.Context) ([]domain.Advert, error)
	CreateAdvert(ctx context.Context, advert *domain.Advert) error
	UpdateAdvert(ctx context.Context, advert *domain.Advert) error
	DeleteAdvert(ctx context.Context, id string) error

	ListGallery(ctx context.Context, limit int32) ([]domain.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, image *domain.GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]domain.ServiceContent, error)
	CreateService(ctx context.Context, service *domain.ServiceContent) error
	UpdateService(ctx context.Context, service *domain.ServiceContent) error
	DeleteService(ctx context.Context, id string) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, id string, fields Fields) error
	ListIDs(ctx context.Context) ([]string, error)
}

// BackupRepository dumps and restores whole tables as raw JSON rows.
type BackupRepository interface {
	Dump(ctx context.Context) (*domain.Backup, error)
	Restore(ctx context.Context, backup *domain.Backup) error
}
