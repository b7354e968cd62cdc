package service

import (
	"context"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/utils"
)

type reportService struct {
	bookingRepo repository.BookingRepository
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
}

func NewReportService(
	bookingRepo repository.BookingRepository,
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
) ReportService {
	return &reportService{
		bookingRepo: bookingRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
	}
}

// GetManifest returns non-cancelled bookings picked up within the range,
// ordered by pickup time, for operational planning.
func (s *reportService) GetManifest(ctx context.Context, startDate, endDate string) ([]domain.Booking, error) {
	start, err := utils.ParseTimestamp(startDate)
	if err != nil {
		return nil, domain.NewValidationError("startDate", "invalid date")
	}
	end, err := utils.ParseTimestamp(endDate)
	if err != nil {
		return nil, domain.NewValidationError("endDate", "invalid date")
	}
	return s.bookingRepo.ListByPickupRange(ctx, start, utils.EndOfDay(end))
}

// GetFinancialReport collects the period's invoices and expenses. Amounts
// are summed in their document currency without conversion; the all-time
// stats endpoint is the converted view.
func (s *reportService) GetFinancialReport(ctx context.Context, startDate, endDate string) (*FinancialReport, error) {
	start, err := utils.ParseTimestamp(startDate)
	if err != nil {
		return nil, domain.NewValidationError("startDate", "invalid date")
	}
	end, err := utils.ParseTimestamp(endDate)
	if err != nil {
		return nil, domain.NewValidationError("endDate", "invalid date")
	}
	rangeEnd := utils.EndOfDay(end)

	invoices, err := s.invoiceRepo.ListByDateRange(ctx, start, rangeEnd)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByDateRange(ctx, start, rangeEnd)
	if err != nil {
		return nil, err
	}

	var summary FinancialReportSummary
	for _, inv := range invoices {
		summary.TotalRevenue += inv.Total
		if inv.Paid {
			summary.TotalPaidRevenue += inv.Total
		}
	}
	summary.TotalPendingRevenue = summary.TotalRevenue - summary.TotalPaidRevenue
	for _, exp := range expenses {
		summary.TotalExpenses += exp.Amount
	}
	summary.NetProfit = summary.TotalRevenue - summary.TotalExpenses

	return &FinancialReport{
		Invoices: invoices,
		Expenses: expenses,
		Summary:  summary,
	}, nil
}
