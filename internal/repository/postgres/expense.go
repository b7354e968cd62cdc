package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/utils"
)

const expenseColumns = `id, date, category, description, amount, currency, vat_included, vat_amount, reference, booking_id`

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	date, err := utils.ParseTimestamp(e.Date)
	if err != nil {
		return err
	}
	query := `INSERT INTO expenses (id, date, category, description, amount, currency, vat_included, vat_amount, reference, booking_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, date, e.Category, e.Description, e.Amount, e.Currency,
		e.VatIncluded, e.VatAmount, nullString(e.Reference), nullString(e.BookingID))
	return err
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return e, nil
}

func (r *expenseRepository) ListAll(ctx context.Context) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *expenseRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE date >= $1 AND date <= $2 ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *expenseRepository) Update(ctx context.Context, id string, fields repository.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	setClause, args, next := buildSetClause(fields)
	query := fmt.Sprintf("UPDATE expenses SET %s WHERE id=$%d", setClause, next)
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

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	return err
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	var currency, reference, bookingID sql.NullString
	var date time.Time

	err := row.Scan(&e.ID, &date, &e.Category, &e.Description, &e.Amount,
		&currency, &e.VatIncluded, &e.VatAmount, &reference, &bookingID)
	if err != nil {
		return nil, err
	}

	e.Currency = currencyOrDefault(currency)
	e.Reference = reference.String
	e.BookingID = bookingID.String
	e.Date = date.Format(time.RFC3339)
	return &e, nil
}

func collectExpenses(rows *sql.Rows) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}
