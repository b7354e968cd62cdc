package postgres

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles every repository over one database handle.
type Store struct {
	db       *sql.DB
	Bookings repository.BookingRepository
	Invoices repository.InvoiceRepository
	Expenses repository.ExpenseRepository
	Settings repository.SettingsRepository
	Content  repository.ContentRepository
	Profiles repository.ProfileRepository
	Backups  repository.BackupRepository
}

func NewStore(db *sql.DB) *Store {
	profiles := NewProfileRepository(db)
	return &Store{
		db:       db,
		Bookings: NewBookingRepository(db),
		Invoices: NewInvoiceRepository(db),
		Expenses: NewExpenseRepository(db),
		Settings: NewSettingsRepository(db),
		Content:  NewContentRepository(db),
		Profiles: profiles,
		Backups:  NewBackupRepository(db, profiles),
	}
}

// buildSetClause turns a sparse field map into "col1=$1, col2=$2" with a
// stable column order, returning the clause, its args and the next
// placeholder index.
func buildSetClause(fields repository.Fields) (string, []interface{}, int) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	parts := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, col := range cols {
		parts = append(parts, fmt.Sprintf("%s=$%d", col, i+1))
		args = append(args, fields[col])
	}
	return strings.Join(parts, ", "), args, len(cols) + 1
}

// mapNotFound converts driver-level row absence to the domain error.
func mapNotFound(err error) error {
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return err
}

// nullString maps empty strings to NULL columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// currencyOrDefault applies the SCR fallback for null/absent currency.
func currencyOrDefault(ns sql.NullString) domain.CurrencyCode {
	if ns.Valid && ns.String != "" {
		return domain.CurrencyCode(ns.String)
	}
	return domain.CurrencySCR
}
