package postgres

import (
	"context"
	"database/sql"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
)

// The settings table holds a single row with id 1.
const settingsRowID = 1

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	query := `SELECT name, tagline, email, phone, address, about, vat_rate, eur_rate, usd_rate,
	                 default_transfer_price, default_tour_price, show_vat_breakdown,
	                 auto_create_invoice, enable_email_notifications, payment_instructions,
	                 hero_image_url, logo_url, login_hero_image_url, login_title, login_message
	          FROM business_settings WHERE id = $1`

	defaults := domain.DefaultSettings()
	s := defaults

	var vatRate, eurRate, usdRate, transferPrice, tourPrice sql.NullFloat64
	var showVat, autoInvoice, emailOn sql.NullBool
	var payment, hero, logo, loginHero, loginTitle, loginMessage sql.NullString

	err := r.db.QueryRowContext(ctx, query, settingsRowID).Scan(
		&s.Name, &s.Tagline, &s.Email, &s.Phone, &s.Address, &s.About,
		&vatRate, &eurRate, &usdRate, &transferPrice, &tourPrice,
		&showVat, &autoInvoice, &emailOn,
		&payment, &hero, &logo, &loginHero, &loginTitle, &loginMessage)
	if err != nil {
		return nil, mapNotFound(err)
	}

	// Null columns fall back to defaults so calculations keep working on a
	// partially configured row.
	if vatRate.Valid {
		s.VatRate = vatRate.Float64
	}
	if eurRate.Valid {
		s.EurRate = eurRate.Float64
	}
	if usdRate.Valid {
		s.UsdRate = usdRate.Float64
	}
	if transferPrice.Valid {
		s.DefaultTransferPrice = transferPrice.Float64
	}
	if tourPrice.Valid {
		s.DefaultTourPrice = tourPrice.Float64
	}
	if showVat.Valid {
		s.ShowVatBreakdown = showVat.Bool
	}
	if autoInvoice.Valid {
		s.AutoCreateInvoice = autoInvoice.Bool
	}
	if emailOn.Valid {
		s.EnableEmailNotifications = emailOn.Bool
	}
	if payment.Valid && payment.String != "" {
		s.PaymentInstructions = payment.String
	}
	s.HeroImageURL = hero.String
	s.LogoURL = logo.String
	s.LoginHeroImageURL = loginHero.String
	if loginTitle.Valid && loginTitle.String != "" {
		s.LoginTitle = loginTitle.String
	}
	if loginMessage.Valid && loginMessage.String != "" {
		s.LoginMessage = loginMessage.String
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.BusinessSettings) error {
	query := `UPDATE business_settings SET
	            name=$1, tagline=$2, email=$3, phone=$4, address=$5, about=$6,
	            vat_rate=$7, eur_rate=$8, usd_rate=$9,
	            default_transfer_price=$10, default_tour_price=$11,
	            show_vat_breakdown=$12, auto_create_invoice=$13, enable_email_notifications=$14,
	            payment_instructions=$15, hero_image_url=$16, logo_url=$17,
	            login_hero_image_url=$18, login_title=$19, login_message=$20
	          WHERE id=$21`
	_, err := r.db.ExecContext(ctx, query,
		s.Name, s.Tagline, s.Email, s.Phone, s.Address, s.About,
		s.VatRate, s.EurRate, s.UsdRate,
		s.DefaultTransferPrice, s.DefaultTourPrice,
		s.ShowVatBreakdown, s.AutoCreateInvoice, s.EnableEmailNotifications,
		s.PaymentInstructions, s.HeroImageURL, s.LogoURL,
		s.LoginHeroImageURL, s.LoginTitle, s.LoginMessage,
		settingsRowID)
	return err
}
