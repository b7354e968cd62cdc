package service

import (
	"context"
	"fmt"
	"strings"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridEmailService struct {
	client       *sendgrid.Client
	fromEmail    string
	fromName     string
	settingsRepo repository.SettingsRepository
}

// NewEmailService builds the SendGrid-backed notifier. An empty API key
// yields a service that logs and drops every message, which keeps local
// development working without credentials.
func NewEmailService(apiKey, fromEmail, fromName string, settingsRepo repository.SettingsRepository) EmailService {
	svc := &sendgridEmailService{
		fromEmail:    fromEmail,
		fromName:     fromName,
		settingsRepo: settingsRepo,
	}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

func (s *sendgridEmailService) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	settings, enabled := s.notificationSettings(ctx)
	if !enabled {
		return nil
	}

	ref := FormatBookingRef(booking.ID)
	subject := fmt.Sprintf("Booking Received - %s", ref)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for booking with %s.\n\nReference: %s\nService: %s\nPickup: %s at %s\nDrop-off: %s\nPassengers: %d\nAmount: %.2f %s\n\nWe will confirm your booking shortly.\n\n%s\n%s",
		booking.ClientName, settings.Name, ref, booking.ServiceType,
		booking.PickupLocation, booking.PickupTime, booking.DropoffLocation,
		booking.Pax, booking.Amount, booking.Currency,
		settings.Name, settings.Phone)

	if err := s.send(ctx, booking.Email, subject, body); err != nil {
		return err
	}

	// The office gets a copy of every new booking.
	if settings.Email != "" && !strings.EqualFold(settings.Email, booking.Email) {
		adminSubject := fmt.Sprintf("New Booking - %s - %s", ref, booking.ClientName)
		if err := s.send(ctx, settings.Email, adminSubject, body); err != nil {
			logger.Warn("Admin booking copy failed", "booking_id", booking.ID, "error", err)
		}
	}
	return nil
}

func (s *sendgridEmailService) SendBookingStatusUpdate(ctx context.Context, booking *domain.Booking) error {
	settings, enabled := s.notificationSettings(ctx)
	if !enabled {
		return nil
	}

	ref := FormatBookingRef(booking.ID)
	var subject, lede string
	switch booking.Status {
	case domain.BookingStatusConfirmed:
		subject = fmt.Sprintf("Booking Confirmed - %s", ref)
		lede = "Good news! Your booking has been confirmed."
	case domain.BookingStatusCancelled:
		subject = fmt.Sprintf("Booking Cancelled - %s", ref)
		lede = "Your booking has been cancelled. Contact us if this is unexpected."
	default:
		subject = fmt.Sprintf("Booking Update - %s", ref)
		lede = fmt.Sprintf("Your booking status is now %s.", booking.Status)
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n%s\n\nReference: %s\nService: %s\nPickup: %s at %s\nAmount: %.2f %s\n\n%s\n%s",
		booking.ClientName, lede, ref, booking.ServiceType,
		booking.PickupLocation, booking.PickupTime,
		booking.Amount, booking.Currency,
		settings.Name, settings.Phone)

	return s.send(ctx, booking.Email, subject, body)
}

func (s *sendgridEmailService) SendInvoice(ctx context.Context, invoice *domain.Invoice, recipient string) error {
	settings, enabled := s.notificationSettings(ctx)
	if !enabled {
		return nil
	}

	var lines strings.Builder
	for _, item := range invoice.Items {
		fmt.Fprintf(&lines, "  %s x%g @ %.2f = %.2f\n", item.Description, item.Quantity, item.UnitPrice, item.Total)
	}
	status := "PENDING"
	if invoice.Paid {
		status = "PAID"
	}
	subject := fmt.Sprintf("Invoice from %s", settings.Name)
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find your invoice below.\n\nDate: %s\nStatus: %s\n\n%s\nSubtotal: %.2f %s\nVAT: %.2f %s\nTotal: %.2f %s\n\n%s\n\n%s\n%s",
		invoice.ClientName, invoice.Date, status, lines.String(),
		invoice.Subtotal, invoice.Currency, invoice.TaxAmount, invoice.Currency,
		invoice.Total, invoice.Currency,
		settings.PaymentInstructions, settings.Name, settings.Phone)

	return s.send(ctx, recipient, subject, body)
}

// notificationSettings loads settings and reports whether outbound email is
// currently switched on.
func (s *sendgridEmailService) notificationSettings(ctx context.Context) (domain.BusinessSettings, bool) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Warn("Settings fetch failed for email gate", "error", err)
		defaults := domain.DefaultSettings()
		return defaults, defaults.EnableEmailNotifications
	}
	return *settings, settings.EnableEmailNotifications
}

func (s *sendgridEmailService) send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}
	if s.client == nil {
		logger.Info("Email sending disabled, dropping message", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, "")
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "to", to, "status", resp.StatusCode)
	return nil
}
