package service

import (
	"context"
	"testing"

	"kreol-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetStatsConvertsToBaseCurrency(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepo)
	expenseRepo := new(MockExpenseRepo)
	settingsRepo := new(MockSettingsRepo)
	svc := NewStatsService(invoiceRepo, expenseRepo, settingsRepo)

	settings := defaultTestSettings()
	settings.EurRate = 15
	settings.UsdRate = 14

	settingsRepo.On("Get", mock.Anything).Return(settings, nil)
	invoiceRepo.On("ListAll", mock.Anything).Return([]domain.Invoice{
		{Total: 100, TaxAmount: 10, Currency: domain.CurrencySCR, Paid: true},
		{Total: 10, TaxAmount: 1, Currency: domain.CurrencyEUR, Paid: false},
	}, nil)
	expenseRepo.On("ListAll", mock.Anything).Return([]domain.Expense{
		{Amount: 50, VatAmount: 5, Currency: domain.CurrencySCR},
		{Amount: 2, VatAmount: 0, Currency: domain.CurrencyUSD},
	}, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	// 100 SCR + 10 EUR at 15
	assert.InDelta(t, 250.0, stats.TotalRevenue, 0.001)
	// 10 SCR + 1 EUR at 15
	assert.InDelta(t, 25.0, stats.TotalOutputTax, 0.001)
	// 50 SCR + 2 USD at 14
	assert.InDelta(t, 78.0, stats.TotalExpenses, 0.001)
	assert.InDelta(t, 5.0, stats.TotalInputTax, 0.001)

	// (250 - 25) - (78 - 5)
	assert.InDelta(t, 152.0, stats.NetProfit, 0.001)
	assert.InDelta(t, 20.0, stats.VatPayable, 0.001)
	assert.Equal(t, int32(1), stats.PendingInvoices)
}

func TestGetStatsMissingCurrencyIsBase(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepo)
	expenseRepo := new(MockExpenseRepo)
	settingsRepo := new(MockSettingsRepo)
	svc := NewStatsService(invoiceRepo, expenseRepo, settingsRepo)

	settingsRepo.On("Get", mock.Anything).Return(defaultTestSettings(), nil)
	invoiceRepo.On("ListAll", mock.Anything).Return([]domain.Invoice{
		{Total: 100, Currency: "", Paid: true},
	}, nil)
	expenseRepo.On("ListAll", mock.Anything).Return([]domain.Expense{}, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.TotalRevenue, 0.001)
	assert.Equal(t, int32(0), stats.PendingInvoices)
}

func TestGetStatsFallsBackToDefaultRates(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepo)
	expenseRepo := new(MockExpenseRepo)
	settingsRepo := new(MockSettingsRepo)
	svc := NewStatsService(invoiceRepo, expenseRepo, settingsRepo)

	settingsRepo.On("Get", mock.Anything).Return(nil, assert.AnError)
	invoiceRepo.On("ListAll", mock.Anything).Return([]domain.Invoice{
		{Total: 1, Currency: domain.CurrencyEUR},
	}, nil)
	expenseRepo.On("ListAll", mock.Anything).Return([]domain.Expense{}, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, domain.DefaultEurRate, stats.TotalRevenue, 0.001)
}
