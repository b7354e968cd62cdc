package service

import (
	"context"
	"errors"
	"testing"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validExpenseInput() *domain.ExpenseInput {
	return &domain.ExpenseInput{
		Category:    domain.ExpenseCategoryFuel,
		Description: "Diesel top-up",
		Amount:      575,
		VatIncluded: true,
	}
}

func TestExpenseAddDerivesInputTax(t *testing.T) {
	expenseRepo := new(MockExpenseRepo)
	settingsRepo := new(MockSettingsRepo)
	svc := NewExpenseService(expenseRepo, new(MockInvoiceRepo), settingsRepo, new(MockInvoiceService))

	settingsRepo.On("Get", mock.Anything).Return(defaultTestSettings(), nil)
	expenseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	expense, err := svc.Add(context.Background(), validExpenseInput(), false)
	require.NoError(t, err)

	// 575 inclusive of 15% VAT carries 75 of input tax
	assert.Equal(t, 75.0, expense.VatAmount)
	assert.Equal(t, domain.CurrencySCR, expense.Currency)
	assert.NotEmpty(t, expense.Date)
}

func TestExpenseAddWithoutVat(t *testing.T) {
	expenseRepo := new(MockExpenseRepo)
	settingsRepo := new(MockSettingsRepo)
	svc := NewExpenseService(expenseRepo, new(MockInvoiceRepo), settingsRepo, new(MockInvoiceService))

	settingsRepo.On("Get", mock.Anything).Return(defaultTestSettings(), nil)
	expenseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := validExpenseInput()
	input.VatIncluded = false

	expense, err := svc.Add(context.Background(), input, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, expense.VatAmount)
}

func TestExpenseAddRebillsLinkedInvoice(t *testing.T) {
	expenseRepo := new(MockExpenseRepo)
	invoiceRepo := new(MockInvoiceRepo)
	settingsRepo := new(MockSettingsRepo)
	invoiceSvc := new(MockInvoiceService)
	svc := NewExpenseService(expenseRepo, invoiceRepo, settingsRepo, invoiceSvc)

	settingsRepo.On("Get", mock.Anything).Return(defaultTestSettings(), nil)
	expenseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetByBookingID", mock.Anything, "b-1").Return(&domain.Invoice{ID: "inv-1"}, nil)
	invoiceSvc.On("AddExpenseRebill", mock.Anything, "inv-1", "Diesel top-up", 575.0, domain.DefaultVatRate).Return(nil)

	input := validExpenseInput()
	input.BookingID = "b-1"

	_, err := svc.Add(context.Background(), input, true)
	require.NoError(t, err)
	invoiceSvc.AssertExpectations(t)
}

func TestExpenseAddSkipsRebillWithoutInvoice(t *testing.T) {
	expenseRepo := new(MockExpenseRepo)
	invoiceRepo := new(MockInvoiceRepo)
	settingsRepo := new(MockSettingsRepo)
	invoiceSvc := new(MockInvoiceService)
	svc := NewExpenseService(expenseRepo, invoiceRepo, settingsRepo, invoiceSvc)

	settingsRepo.On("Get", mock.Anything).Return(defaultTestSettings(), nil)
	expenseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetByBookingID", mock.Anything, "b-1").Return(nil, domain.ErrNotFound)

	input := validExpenseInput()
	input.BookingID = "b-1"

	expense, err := svc.Add(context.Background(), input, true)
	// The expense is kept even when no invoice exists to re-bill.
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	invoiceSvc.AssertNotCalled(t, "AddExpenseRebill", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseAddRebillFailureDoesNotRollBack(t *testing.T) {
	expenseRepo := new(MockExpenseRepo)
	invoiceRepo := new(MockInvoiceRepo)
	settingsRepo := new(MockSettingsRepo)
	invoiceSvc := new(MockInvoiceService)
	svc := NewExpenseService(expenseRepo, invoiceRepo, settingsRepo, invoiceSvc)

	settingsRepo.On("Get", mock.Anything).Return(defaultTestSettings(), nil)
	expenseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetByBookingID", mock.Anything, "b-1").Return(&domain.Invoice{ID: "inv-1"}, nil)
	invoiceSvc.On("AddExpenseRebill", mock.Anything, "inv-1", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("update failed"))

	input := validExpenseInput()
	input.BookingID = "b-1"

	_, err := svc.Add(context.Background(), input, true)
	require.NoError(t, err)
}

func TestExpenseUpdateDoesNotRecomputeVat(t *testing.T) {
	expenseRepo := new(MockExpenseRepo)
	svc := NewExpenseService(expenseRepo, new(MockInvoiceRepo), new(MockSettingsRepo), new(MockInvoiceService))

	amount := 900.0
	expenseRepo.On("Update", mock.Anything, "e-1", mock.MatchedBy(func(fields repository.Fields) bool {
		// The stored vat_amount keeps its recorded value on amount changes.
		_, touchesVat := fields["vat_amount"]
		return fields["amount"] == 900.0 && !touchesVat
	})).Return(nil)
	expenseRepo.On("GetByID", mock.Anything, "e-1").Return(&domain.Expense{ID: "e-1", Amount: 900, VatAmount: 75}, nil)

	updated, err := svc.Update(context.Background(), "e-1", &domain.ExpensePatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.VatAmount)
	expenseRepo.AssertExpectations(t)
}
