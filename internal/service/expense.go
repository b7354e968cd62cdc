package service

import (
	"context"
	"errors"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var expenseValidator = validator.New()

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
	invoiceSvc   InvoiceService
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	invoiceRepo repository.InvoiceRepository,
	settingsRepo repository.SettingsRepository,
	invoiceSvc InvoiceService,
) ExpenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		invoiceSvc:   invoiceSvc,
	}
}

func (s *expenseService) Add(ctx context.Context, input *domain.ExpenseInput, addToInvoice bool) (*domain.Expense, error) {
	if err := expenseValidator.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return nil, domain.NewValidationError(errs[0].Field(), errs[0].Tag())
		}
		return nil, domain.NewValidationError("input", err.Error())
	}

	vatRate := domain.DefaultVatRate
	if settings, err := s.settingsRepo.Get(ctx); err == nil {
		vatRate = settings.VatRate
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	currency := input.Currency
	if currency == "" {
		currency = domain.CurrencySCR
	}

	expense := &domain.Expense{
		ID:          uuid.NewString(),
		Date:        date,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    currency,
		VatIncluded: input.VatIncluded,
		VatAmount:   utils.CalculateInputTax(input.Amount, input.VatIncluded, vatRate),
		Reference:   input.Reference,
		BookingID:   input.BookingID,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	// Re-billing is opportunistic: it only happens when the linked booking
	// already has an invoice, and a failure never rolls back the expense.
	if addToInvoice && expense.BookingID != "" {
		inv, err := s.invoiceRepo.GetByBookingID(ctx, expense.BookingID)
		switch {
		case err == nil:
			if err := s.invoiceSvc.AddExpenseRebill(ctx, inv.ID, expense.Description, expense.Amount, vatRate); err != nil {
				logger.Error("Expense re-bill failed", "expense_id", expense.ID, "invoice_id", inv.ID, "error", err)
			}
		case errors.Is(err, domain.ErrNotFound):
			logger.Info("No invoice for booking, skipping re-bill", "booking_id", expense.BookingID)
		default:
			logger.Warn("Invoice lookup for re-bill failed", "booking_id", expense.BookingID, "error", err)
		}
	}

	return expense, nil
}

func (s *expenseService) ListAll(ctx context.Context) ([]domain.Expense, error) {
	return s.expenseRepo.ListAll(ctx)
}

// Update writes the patch fields as given. The stored vat_amount is not
// recomputed when the amount or the VAT flag changes; it keeps the value
// captured at recording time.
func (s *expenseService) Update(ctx context.Context, id string, patch *domain.ExpensePatch) (*domain.Expense, error) {
	fields := repository.Fields{}
	if patch.Date != "" {
		parsed, err := utils.ParseTimestamp(patch.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", "invalid timestamp")
		}
		fields["date"] = parsed
	}
	if patch.Category != "" {
		fields["category"] = patch.Category
	}
	if patch.Description != "" {
		fields["description"] = patch.Description
	}
	if patch.Amount != nil {
		fields["amount"] = *patch.Amount
	}
	if patch.Currency != "" {
		fields["currency"] = patch.Currency
	}
	if patch.VatIncluded != nil {
		fields["vat_included"] = *patch.VatIncluded
	}
	if patch.Reference != "" {
		fields["reference"] = patch.Reference
	}
	if patch.BookingID != "" {
		fields["booking_id"] = patch.BookingID
	}

	if err := s.expenseRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetByID(ctx, id)
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	return s.expenseRepo.Delete(ctx, id)
}
