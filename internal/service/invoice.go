package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/utils"

	"github.com/google/uuid"
)

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository, settingsRepo repository.SettingsRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo, settingsRepo: settingsRepo}
}

func (s *invoiceService) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv.ClientName == "" {
		return nil, domain.NewValidationError("clientName", "required")
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Date == "" {
		inv.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if inv.Currency == "" {
		inv.Currency = domain.CurrencySCR
	}

	if len(inv.Items) == 0 && inv.Total > 0 {
		// A bare total still yields a renderable document: one synthetic
		// line carrying the full inclusive amount.
		inv.Items = []domain.InvoiceItem{{
			ID:          uuid.NewString(),
			Description: "Service Charge",
			Quantity:    1,
			UnitPrice:   inv.Total,
			Total:       inv.Total,
		}}
	} else if len(inv.Items) > 0 {
		// Itemized documents are authoritative on their lines: recompute
		// each line and derive the totals from their sum.
		for i := range inv.Items {
			if inv.Items[i].ID == "" {
				inv.Items[i].ID = uuid.NewString()
			}
			inv.Items[i].Total = utils.LineTotal(inv.Items[i].Quantity, inv.Items[i].UnitPrice)
		}
		breakdown := utils.CalculateTotals(domain.SumItems(inv.Items), s.vatRate(ctx))
		inv.Subtotal = breakdown.Subtotal
		inv.TaxAmount = breakdown.TaxAmount
		inv.Total = breakdown.Total
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// vatRate reads the configured rate, falling back to the statutory default
// when settings are unreadable.
func (s *invoiceService) vatRate(ctx context.Context) float64 {
	if settings, err := s.settingsRepo.Get(ctx); err == nil {
		return settings.VatRate
	}
	return domain.DefaultVatRate
}

// CreateFromBooking generates the invoice for a confirmed booking. It is
// idempotent: a booking that already has an invoice gets the existing one
// back.
func (s *invoiceService) CreateFromBooking(ctx context.Context, booking *domain.Booking, vatRate float64) (*domain.Invoice, error) {
	existing, err := s.invoiceRepo.GetByBookingID(ctx, booking.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	breakdown := utils.CalculateTotals(booking.Amount, vatRate)
	inv := &domain.Invoice{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		ClientName: booking.ClientName,
		Date:       time.Now().UTC().Format(time.RFC3339),
		Subtotal:   breakdown.Subtotal,
		TaxAmount:  breakdown.TaxAmount,
		Total:      breakdown.Total,
		Paid:       false,
		Currency:   booking.Currency,
		Items: []domain.InvoiceItem{{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf("%s - %s to %s", booking.ServiceType, booking.PickupLocation, booking.DropoffLocation),
			Quantity:    1,
			UnitPrice:   breakdown.Total,
			Total:       breakdown.Total,
		}},
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) GetByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByBookingID(ctx, bookingID)
}

func (s *invoiceService) List(ctx context.Context, page, pageSize int32) ([]domain.Invoice, int32, error) {
	return s.invoiceRepo.List(ctx, page, pageSize)
}

func (s *invoiceService) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListAll(ctx)
}

func (s *invoiceService) ListForClient(ctx context.Context, clientID, email string) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListByClient(ctx, clientID, strings.TrimSpace(email))
}

// Update writes the provided fields as-is. Totals are taken from the patch,
// not derived from items; the editor is responsible for sending a consistent
// document.
func (s *invoiceService) Update(ctx context.Context, id string, patch *domain.InvoicePatch) (*domain.Invoice, error) {
	fields := repository.Fields{}
	if patch.ClientName != "" {
		fields["client_name"] = patch.ClientName
	}
	if patch.Date != "" {
		date, err := utils.ParseTimestamp(patch.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", "invalid timestamp")
		}
		fields["date"] = date
	}
	if patch.Subtotal != nil {
		fields["subtotal"] = *patch.Subtotal
	}
	if patch.TaxAmount != nil {
		fields["tax_amount"] = *patch.TaxAmount
	}
	if patch.Total != nil {
		fields["total"] = *patch.Total
	}
	if patch.Paid != nil {
		fields["paid"] = *patch.Paid
	}
	if patch.Currency != "" {
		fields["currency"] = patch.Currency
	}
	if patch.Items != nil {
		fields["items"] = mustJSON(*patch.Items)
	}

	if err := s.invoiceRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) ToggleStatus(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	paid := !inv.Paid
	if err := s.invoiceRepo.Update(ctx, id, repository.Fields{"paid": paid}); err != nil {
		return nil, err
	}
	inv.Paid = paid
	return inv, nil
}

// AddExpenseRebill appends a re-billed expense as a line item and recomputes
// the document totals from the new item sum.
func (s *invoiceService) AddExpenseRebill(ctx context.Context, invoiceID, expenseDescription string, expenseAmount, vatRate float64) error {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	items := append(inv.Items, domain.InvoiceItem{
		ID:          uuid.NewString(),
		Description: "Expense Re-bill: " + expenseDescription,
		Quantity:    1,
		UnitPrice:   expenseAmount,
		Total:       expenseAmount,
	})
	breakdown := utils.CalculateTotals(domain.SumItems(items), vatRate)

	return s.invoiceRepo.Update(ctx, invoiceID, repository.Fields{
		"items":      mustJSON(items),
		"subtotal":   breakdown.Subtotal,
		"tax_amount": breakdown.TaxAmount,
		"total":      breakdown.Total,
	})
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	return s.invoiceRepo.Delete(ctx, id)
}
