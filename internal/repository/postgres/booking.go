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

const bookingColumns = `id, client_id, client_name, email, phone, service_type, pickup_location, dropoff_location, pickup_time, pax, status, amount, currency, notes, history`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	history, err := json.Marshal(b.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	pickup, err := utils.ParseTimestamp(b.PickupTime)
	if err != nil {
		return err
	}
	query := `INSERT INTO bookings (id, client_id, client_name, email, phone, service_type, pickup_location, dropoff_location, pickup_time, pax, status, amount, currency, notes, history)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	logger.DatabaseCall("INSERT", "bookings", "bookingID", b.ID)
	_, err = r.db.ExecContext(ctx, query,
		b.ID, nullString(b.ClientID), b.ClientName, b.Email, nullString(b.Phone),
		b.ServiceType, b.PickupLocation, b.DropoffLocation, pickup, b.Pax,
		b.Status, b.Amount, b.Currency, nullString(b.Notes), history)
	logger.DatabaseResult("INSERT", 1, err, "bookingID", b.ID)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return b, nil
}

func (r *bookingRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY pickup_time DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListOptions(ctx context.Context) ([]domain.Booking, error) {
	// Lightweight projection used for linking invoices and expenses.
	query := `SELECT id, client_name, email, amount, currency, status, pickup_time FROM bookings ORDER BY pickup_time DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var currency sql.NullString
		var pickup time.Time
		if err := rows.Scan(&b.ID, &b.ClientName, &b.Email, &b.Amount, &currency, &b.Status, &pickup); err != nil {
			return nil, err
		}
		b.Currency = currencyOrDefault(currency)
		b.PickupTime = pickup.Format(time.RFC3339)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListByClient(ctx context.Context, clientID, email string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE `
	var args []interface{}
	switch {
	case clientID != "" && email != "":
		query += `(client_id = $1 OR lower(email) = lower($2))`
		args = append(args, clientID, email)
	case clientID != "":
		query += `client_id = $1`
		args = append(args, clientID)
	default:
		query += `lower(email) = lower($1)`
		args = append(args, email)
	}
	query += ` ORDER BY pickup_time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) ListByPickupRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE pickup_time >= $1 AND pickup_time <= $2 AND status <> $3
	          ORDER BY pickup_time ASC`
	rows, err := r.db.QueryContext(ctx, query, start, end, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (domain.BookingCounts, error) {
	var counts domain.BookingCounts
	query := `SELECT
	            count(*) FILTER (WHERE status = $1),
	            count(*) FILTER (WHERE status = $2)
	          FROM bookings`
	err := r.db.QueryRowContext(ctx, query, domain.BookingStatusPending, domain.BookingStatusConfirmed).
		Scan(&counts.Pending, &counts.Confirmed)
	return counts, err
}

func (r *bookingRepository) Update(ctx context.Context, id string, fields repository.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	setClause, args, next := buildSetClause(fields)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id=$%d", setClause, next)
	args = append(args, id)
	logger.DatabaseCall("UPDATE", "bookings", "bookingID", id, "columns", len(fields))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "bookingID", id)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, nil, "bookingID", id)
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var clientID, phone, notes, currency sql.NullString
	var pickup time.Time
	var history []byte

	err := row.Scan(&b.ID, &clientID, &b.ClientName, &b.Email, &phone,
		&b.ServiceType, &b.PickupLocation, &b.DropoffLocation, &pickup,
		&b.Pax, &b.Status, &b.Amount, &currency, &notes, &history)
	if err != nil {
		return nil, err
	}

	b.ClientID = clientID.String
	if b.ClientID == "" {
		b.ClientID = "guest"
	}
	b.Phone = phone.String
	b.Notes = notes.String
	b.Currency = currencyOrDefault(currency)
	b.PickupTime = pickup.Format(time.RFC3339)
	if len(history) > 0 {
		if err := json.Unmarshal(history, &b.History); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
