package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

var (
	bookingValidator = validator.New()
	notesSanitizer   = bluemonday.StrictPolicy()
)

// FormatBookingRef derives the display reference from a booking id. It is a
// pure function of the id's leading characters so every view renders the
// same reference.
func FormatBookingRef(id string) string {
	if id == "" {
		return "REF-ERROR"
	}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "KIT-" + strings.ToUpper(short)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	settingsRepo repository.SettingsRepository
	invoiceSvc   InvoiceService
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	settingsRepo repository.SettingsRepository,
	invoiceSvc InvoiceService,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		invoiceSvc:   invoiceSvc,
		emailSvc:     emailSvc,
	}
}

func (s *bookingService) Create(ctx context.Context, input *domain.BookingInput, clientID, actorName string) (*domain.Booking, error) {
	if err := bookingValidator.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return nil, domain.NewValidationError(errs[0].Field(), errs[0].Tag())
		}
		return nil, domain.NewValidationError("input", err.Error())
	}

	pickup, err := utils.ParseTimestamp(input.PickupTime)
	if err != nil {
		return nil, domain.NewValidationError("pickupTime", "invalid timestamp")
	}
	if !pickup.After(time.Now()) {
		return nil, domain.NewValidationError("pickupTime", "pickup time must be in the future")
	}

	// An absent amount falls back to the configured default for the
	// service type.
	var amount float64
	if input.Amount != nil {
		amount = *input.Amount
	} else {
		settings := s.settings(ctx)
		amount = settings.DefaultPriceFor(input.ServiceType)
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.CurrencySCR
	}
	status := input.Status
	if status == "" {
		status = domain.BookingStatusPending
	}
	actor := actorName
	if actor == "" {
		actor = "System"
	}

	// Guest submissions may carry junk in the client id slot; only keep a
	// value that looks like a real account id.
	if len(clientID) <= 20 {
		clientID = ""
	}

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		ClientID:        clientID,
		ClientName:      input.ClientName,
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:           input.Phone,
		ServiceType:     input.ServiceType,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		PickupTime:      pickup.Format(time.RFC3339),
		Pax:             input.Pax,
		Status:          status,
		Amount:          amount,
		Currency:        currency,
		Notes:           notesSanitizer.Sanitize(input.Notes),
		History: []domain.BookingHistoryEntry{{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Action:    domain.HistoryActionCreated,
			Details:   "Initial creation",
			Actor:     actor,
		}},
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	if booking.ClientID == "" {
		booking.ClientID = "guest"
	}

	// Best effort; a failed notification never fails the booking.
	if err := s.emailSvc.SendBookingConfirmation(ctx, booking); err != nil {
		logger.Warn("Booking confirmation email failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.List(ctx, page, pageSize)
}

func (s *bookingService) ListOptions(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.ListOptions(ctx)
}

func (s *bookingService) ListForClient(ctx context.Context, clientID, email string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByClient(ctx, clientID, strings.TrimSpace(email))
}

func (s *bookingService) Counts(ctx context.Context) (domain.BookingCounts, error) {
	return s.bookingRepo.CountByStatus(ctx)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, newPrice *float64, actorName string) (*domain.Booking, error) {
	current, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor := actorName
	if actor == "" {
		actor = "Manager"
	}
	details := fmt.Sprintf("Status changed to %s", status)
	if newPrice != nil && *newPrice != 0 {
		details += ". Price set to " + strconv.FormatFloat(*newPrice, 'f', -1, 64)
	}

	entry := domain.BookingHistoryEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    domain.HistoryActionStatusChange,
		Details:   details,
		Actor:     actor,
		PreviousState: &domain.BookingPreviousState{
			Status: current.Status,
			Amount: current.Amount,
		},
	}
	history := append([]domain.BookingHistoryEntry{entry}, current.History...)

	fields := repository.Fields{
		"status":  status,
		"history": mustJSON(history),
	}
	if newPrice != nil {
		fields["amount"] = *newPrice
	}
	if err := s.bookingRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	updated := *current
	updated.Status = status
	updated.History = history
	if newPrice != nil {
		updated.Amount = *newPrice
	}

	// Side effects are best effort: log failures, never surface them.
	if status == domain.BookingStatusConfirmed || status == domain.BookingStatusCancelled {
		if err := s.emailSvc.SendBookingStatusUpdate(ctx, &updated); err != nil {
			logger.Warn("Status update email failed", "booking_id", id, "error", err)
		}
	}

	if status == domain.BookingStatusConfirmed {
		settings := s.settings(ctx)
		if settings.AutoCreateInvoice {
			if _, err := s.invoiceSvc.CreateFromBooking(ctx, &updated, settings.VatRate); err != nil {
				logger.Error("Auto-invoice generation failed", "booking_id", id, "error", err)
			}
		}
	}

	return &updated, nil
}

// UpdateDetails writes a sparse patch. Only non-zero fields are written,
// matching the deployed store's update behavior: clearing a field to its
// zero value is not possible through this path.
func (s *bookingService) UpdateDetails(ctx context.Context, id string, patch *domain.BookingPatch) error {
	if _, err := s.bookingRepo.GetByID(ctx, id); err != nil {
		return err
	}

	fields := repository.Fields{}
	if patch.ClientName != "" {
		fields["client_name"] = patch.ClientName
	}
	if patch.Email != "" {
		fields["email"] = strings.ToLower(strings.TrimSpace(patch.Email))
	}
	if patch.Phone != "" {
		fields["phone"] = patch.Phone
	}
	if patch.ServiceType != "" {
		fields["service_type"] = patch.ServiceType
	}
	if patch.Pax != 0 {
		fields["pax"] = patch.Pax
	}
	if patch.Amount != 0 {
		fields["amount"] = patch.Amount
	}
	if patch.Currency != "" {
		fields["currency"] = patch.Currency
	}
	if patch.PickupTime != "" {
		pickup, err := utils.ParseTimestamp(patch.PickupTime)
		if err != nil {
			return domain.NewValidationError("pickupTime", "invalid timestamp")
		}
		fields["pickup_time"] = pickup
	}
	if patch.PickupLocation != "" {
		fields["pickup_location"] = patch.PickupLocation
	}
	if patch.DropoffLocation != "" {
		fields["dropoff_location"] = patch.DropoffLocation
	}
	if patch.Notes != "" {
		fields["notes"] = notesSanitizer.Sanitize(patch.Notes)
	}

	return s.bookingRepo.Update(ctx, id, fields)
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	// Hard delete. Linked invoices and expenses keep their booking
	// reference.
	return s.bookingRepo.Delete(ctx, id)
}

// mustJSON marshals values destined for jsonb columns. The inputs are
// in-memory structs that always marshal cleanly.
func mustJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}

// settings loads business settings, degrading to defaults on failure so
// booking creation keeps working when the settings row is unreadable.
func (s *bookingService) settings(ctx context.Context) domain.BusinessSettings {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Warn("Settings fetch failed, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	return *settings
}
