package service

import (
	"context"
	"testing"
	"time"

	"kreol-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetManifestExtendsEndDate(t *testing.T) {
	bookingRepo := new(MockBookingRepo)
	svc := NewReportService(bookingRepo, new(MockInvoiceRepo), new(MockExpenseRepo))

	bookingRepo.On("ListByPickupRange", mock.Anything,
		mock.MatchedBy(func(start time.Time) bool {
			return start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(end time.Time) bool {
			// The whole end day is included
			return end.Hour() == 23 && end.Minute() == 59 && end.Day() == 7
		}),
	).Return([]domain.Booking{{ID: "b-1"}}, nil)

	bookings, err := svc.GetManifest(context.Background(), "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestGetManifestRejectsBadDates(t *testing.T) {
	svc := NewReportService(new(MockBookingRepo), new(MockInvoiceRepo), new(MockExpenseRepo))

	_, err := svc.GetManifest(context.Background(), "not-a-date", "2026-03-07")
	require.Error(t, err)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "startDate", validationErr.Field)
}

func TestGetFinancialReportSumsWithoutConversion(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepo)
	expenseRepo := new(MockExpenseRepo)
	svc := NewReportService(new(MockBookingRepo), invoiceRepo, expenseRepo)

	invoiceRepo.On("ListByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Invoice{
		{Total: 1150, Currency: domain.CurrencySCR, Paid: true},
		{Total: 200, Currency: domain.CurrencyEUR, Paid: false},
	}, nil)
	expenseRepo.On("ListByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Expense{
		{Amount: 300, Currency: domain.CurrencySCR},
	}, nil)

	report, err := svc.GetFinancialReport(context.Background(), "2026-03-01", "2026-03-31")
	require.NoError(t, err)

	// Document currencies are summed as-is in the period report.
	assert.InDelta(t, 1350.0, report.Summary.TotalRevenue, 0.001)
	assert.InDelta(t, 1150.0, report.Summary.TotalPaidRevenue, 0.001)
	assert.InDelta(t, 200.0, report.Summary.TotalPendingRevenue, 0.001)
	assert.InDelta(t, 300.0, report.Summary.TotalExpenses, 0.001)
	// Gross revenue minus expenses, VAT not netted out here
	assert.InDelta(t, 1050.0, report.Summary.NetProfit, 0.001)
	assert.Len(t, report.Invoices, 2)
	assert.Len(t, report.Expenses, 1)
}
