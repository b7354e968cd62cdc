package service

import (
	"context"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"
)

type statsService struct {
	invoiceRepo  repository.InvoiceRepository
	expenseRepo  repository.ExpenseRepository
	settingsRepo repository.SettingsRepository
}

func NewStatsService(
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingsRepository,
) StatsService {
	return &statsService{
		invoiceRepo:  invoiceRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
	}
}

// GetStats aggregates every invoice and expense into SCR using the exchange
// rates configured in settings. Net profit nets VAT out of both sides:
// (revenue - output tax) - (expenses - input tax).
func (s *statsService) GetStats(ctx context.Context) (*FinancialStats, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Warn("Settings fetch failed for stats, using default rates", "error", err)
		defaults := domain.DefaultSettings()
		settings = &defaults
	}
	rates := settings.ExchangeRates()

	convert := func(amount float64, currency domain.CurrencyCode) float64 {
		if currency == "" {
			currency = domain.CurrencySCR
		}
		rate, ok := rates[currency]
		if !ok {
			rate = 1
		}
		return amount * rate
	}

	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &FinancialStats{}
	for _, inv := range invoices {
		stats.TotalRevenue += convert(inv.Total, inv.Currency)
		stats.TotalOutputTax += convert(inv.TaxAmount, inv.Currency)
		if !inv.Paid {
			stats.PendingInvoices++
		}
	}
	for _, exp := range expenses {
		stats.TotalExpenses += convert(exp.Amount, exp.Currency)
		stats.TotalInputTax += convert(exp.VatAmount, exp.Currency)
	}

	stats.NetProfit = (stats.TotalRevenue - stats.TotalOutputTax) - (stats.TotalExpenses - stats.TotalInputTax)
	stats.VatPayable = stats.TotalOutputTax - stats.TotalInputTax
	return stats, nil
}
