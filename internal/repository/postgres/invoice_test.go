package postgres

import (
	"context"
	"testing"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceRows() *sqlmock.Rows {
	items := `[{"id":"i-1","description":"Transfer","quantity":1,"unitPrice":1000,"total":1000}]`
	return sqlmock.NewRows([]string{
		"id", "booking_id", "client_name", "date", "subtotal", "tax_amount",
		"total", "paid", "currency", "items",
	}).AddRow(
		"inv-1", "b-1", "Marie Payet", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		1000.0, 150.0, 1150.0, false, "EUR", []byte(items),
	)
}

func TestInvoiceGetByBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM invoices WHERE booking_id = \$1`).
		WithArgs("b-1").
		WillReturnRows(invoiceRows())

	inv, err := repo.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
	assert.Equal(t, domain.CurrencyEUR, inv.Currency)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1000.0, inv.Items[0].UnitPrice)
}

func TestInvoiceGetByBookingIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM invoices WHERE booking_id = \$1`).
		WithArgs("b-unlinked").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByBookingID(context.Background(), "b-unlinked")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUpdateTogglePaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	mock.ExpectExec(`UPDATE invoices SET paid=\$1 WHERE id=\$2`).
		WithArgs(true, "inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), "inv-1", repository.Fields{"paid": true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceListByDateRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewInvoiceRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM invoices WHERE date >= \$1 AND date <= \$2 ORDER BY date DESC`).
		WithArgs(start, end).
		WillReturnRows(invoiceRows())

	invoices, err := repo.ListByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
