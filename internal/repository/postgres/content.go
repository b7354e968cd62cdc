package postgres

import (
	"context"
	"database/sql"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
)

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

// --- Adverts ---

func (r *contentRepository) ListAdverts(ctx context.Context) ([]domain.Advert, error) {
	query := `SELECT id, title, description, image_url, price, active FROM adverts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adverts []domain.Advert
	for rows.Next() {
		var a domain.Advert
		var price sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.ImageURL, &price, &a.Active); err != nil {
			return nil, err
		}
		a.Price = price.String
		adverts = append(adverts, a)
	}
	return adverts, rows.Err()
}

func (r *contentRepository) CreateAdvert(ctx context.Context, a *domain.Advert) error {
	query := `INSERT INTO adverts (id, title, description, image_url, price, active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.Description, a.ImageURL, nullString(a.Price), a.Active, time.Now())
	return err
}

func (r *contentRepository) UpdateAdvert(ctx context.Context, a *domain.Advert) error {
	query := `UPDATE adverts SET title=$1, description=$2, image_url=$3, price=$4, active=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, a.Title, a.Description, a.ImageURL, nullString(a.Price), a.Active, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contentRepository) DeleteAdvert(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM adverts WHERE id=$1`, id)
	return err
}

// --- Gallery ---

func (r *contentRepository) ListGallery(ctx context.Context, limit int32) ([]domain.GalleryImage, error) {
	query := `SELECT id, image_url, caption FROM gallery LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.GalleryImage
	for rows.Next() {
		var g domain.GalleryImage
		var caption sql.NullString
		if err := rows.Scan(&g.ID, &g.ImageURL, &caption); err != nil {
			return nil, err
		}
		g.Caption = caption.String
		images = append(images, g)
	}
	return images, rows.Err()
}

func (r *contentRepository) CreateGalleryImage(ctx context.Context, g *domain.GalleryImage) error {
	query := `INSERT INTO gallery (id, image_url, caption) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, g.ID, g.ImageURL, nullString(g.Caption))
	return err
}

func (r *contentRepository) DeleteGalleryImage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gallery WHERE id=$1`, id)
	return err
}

// --- Services CMS ---

func (r *contentRepository) ListServices(ctx context.Context) ([]domain.ServiceContent, error) {
	query := `SELECT id, title, description, icon, price, show_price FROM services ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.ServiceContent
	for rows.Next() {
		var s domain.ServiceContent
		var price sql.NullString
		var showPrice sql.NullBool
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &price, &showPrice); err != nil {
			return nil, err
		}
		s.Price = price.String
		s.ShowPrice = showPrice.Bool
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *contentRepository) CreateService(ctx context.Context, s *domain.ServiceContent) error {
	query := `INSERT INTO services (id, title, description, icon, price, show_price, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Title, s.Description, s.Icon, nullString(s.Price), s.ShowPrice, time.Now())
	return err
}

func (r *contentRepository) UpdateService(ctx context.Context, s *domain.ServiceContent) error {
	query := `UPDATE services SET title=$1, description=$2, icon=$3, price=$4, show_price=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, s.Title, s.Description, s.Icon, nullString(s.Price), s.ShowPrice, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contentRepository) DeleteService(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id=$1`, id)
	return err
}
