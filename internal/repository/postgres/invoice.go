package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/utils"
)

const invoiceColumns = `id, booking_id, client_name, date, subtotal, tax_amount, total, paid, currency, items`

const prefixedInvoiceColumns = `i.id, i.booking_id, i.client_name, i.date, i.subtotal, i.tax_amount, i.total, i.paid, i.currency, i.items`

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	date, err := utils.ParseTimestamp(inv.Date)
	if err != nil {
		return err
	}
	query := `INSERT INTO invoices (id, booking_id, client_name, date, subtotal, tax_amount, total, paid, currency, items)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	logger.DatabaseCall("INSERT", "invoices", "invoiceID", inv.ID, "bookingID", inv.BookingID)
	_, err = r.db.ExecContext(ctx, query,
		inv.ID, nullString(inv.BookingID), inv.ClientName, date,
		inv.Subtotal, inv.TaxAmount, inv.Total, inv.Paid, inv.Currency, items)
	logger.DatabaseResult("INSERT", 1, err, "invoiceID", inv.ID)
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return inv, nil
}

func (r *invoiceRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE booking_id = $1`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Invoice, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM invoices`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, 0, err
	}
	return invoices, count, nil
}

func (r *invoiceRepository) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *invoiceRepository) ListByClient(ctx context.Context, clientID, email string) ([]domain.Invoice, error) {
	// Invoices reach a portal client through their booking link.
	query := `SELECT ` + prefixedInvoiceColumns + ` FROM invoices i
	          JOIN bookings b ON b.id = i.booking_id WHERE `
	var args []interface{}
	switch {
	case clientID != "" && email != "":
		query += `(b.client_id = $1 OR lower(b.email) = lower($2))`
		args = append(args, clientID, email)
	case clientID != "":
		query += `b.client_id = $1`
		args = append(args, clientID)
	default:
		query += `lower(b.email) = lower($1)`
		args = append(args, email)
	}
	query += ` ORDER BY i.date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *invoiceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE date >= $1 AND date <= $2 ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *invoiceRepository) Update(ctx context.Context, id string, fields repository.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	setClause, args, next := buildSetClause(fields)
	query := fmt.Sprintf("UPDATE invoices SET %s WHERE id=$%d", setClause, next)
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	return err
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var bookingID, currency sql.NullString
	var date time.Time
	var items []byte

	err := row.Scan(&inv.ID, &bookingID, &inv.ClientName, &date,
		&inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.Paid, &currency, &items)
	if err != nil {
		return nil, err
	}

	inv.BookingID = bookingID.String
	inv.Currency = currencyOrDefault(currency)
	inv.Date = date.Format(time.RFC3339)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &inv, nil
}

func collectInvoices(rows *sql.Rows) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
