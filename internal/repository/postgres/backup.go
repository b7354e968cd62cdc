package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"
)

type backupRepository struct {
	db       *sql.DB
	profiles repository.ProfileRepository
}

func NewBackupRepository(db *sql.DB, profiles repository.ProfileRepository) repository.BackupRepository {
	return &backupRepository{db: db, profiles: profiles}
}

// Dump exports every table as raw JSON rows, preserving columns this
// application does not model so a restore is byte-faithful.
func (r *backupRepository) Dump(ctx context.Context) (*domain.Backup, error) {
	backup := &domain.Backup{
		Version:   domain.BackupVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	targets := []struct {
		table string
		dest  *[]json.RawMessage
	}{
		{"business_settings", &backup.Tables.BusinessSettings},
		{"profiles", &backup.Tables.Profiles},
		{"bookings", &backup.Tables.Bookings},
		{"invoices", &backup.Tables.Invoices},
		{"expenses", &backup.Tables.Expenses},
		{"adverts", &backup.Tables.Adverts},
		{"gallery", &backup.Tables.Gallery},
		{"services", &backup.Tables.Services},
	}

	for _, t := range targets {
		rows, err := r.dumpTable(ctx, t.table)
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", t.table, err)
		}
		*t.dest = rows
	}
	return backup, nil
}

func (r *backupRepository) dumpTable(ctx context.Context, table string) ([]json.RawMessage, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []json.RawMessage
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		record := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			record[col] = normalizeValue(values[i])
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, rows.Err()
}

// normalizeValue converts driver values into JSON-friendly forms: byte
// slices holding JSON stay structured, timestamps become RFC3339 strings.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		if json.Valid(val) {
			return json.RawMessage(val)
		}
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return v
	}
}

// Restore upserts tables in dependency order: independent tables first, then
// profiles (best-effort), then bookings with dangling client_id references
// nulled out, then invoices and expenses.
func (r *backupRepository) Restore(ctx context.Context, backup *domain.Backup) error {
	independent := []struct {
		table string
		rows  []json.RawMessage
	}{
		{"business_settings", backup.Tables.BusinessSettings},
		{"adverts", backup.Tables.Adverts},
		{"gallery", backup.Tables.Gallery},
		{"services", backup.Tables.Services},
	}
	for _, t := range independent {
		if err := r.upsertRows(ctx, t.table, t.rows); err != nil {
			return fmt.Errorf("restore %s: %w", t.table, err)
		}
	}

	// Profiles may be linked to auth accounts that do not exist in this
	// environment; a partial failure must not abort the rest of the restore.
	if err := r.upsertRows(ctx, "profiles", backup.Tables.Profiles); err != nil {
		logger.Warn("Profiles restore partially failed", "error", err)
	}

	ids, err := r.profiles.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	validProfiles := make(map[string]bool, len(ids))
	for _, id := range ids {
		validProfiles[id] = true
	}

	sanitized, err := sanitizeBookings(backup.Tables.Bookings, validProfiles)
	if err != nil {
		return fmt.Errorf("sanitize bookings: %w", err)
	}
	if err := r.upsertRows(ctx, "bookings", sanitized); err != nil {
		return fmt.Errorf("restore bookings: %w", err)
	}

	if err := r.upsertRows(ctx, "invoices", backup.Tables.Invoices); err != nil {
		return fmt.Errorf("restore invoices: %w", err)
	}
	if err := r.upsertRows(ctx, "expenses", backup.Tables.Expenses); err != nil {
		return fmt.Errorf("restore expenses: %w", err)
	}
	return nil
}

// sanitizeBookings nulls out client_id references to profiles that did not
// survive the restore, converting them to guest bookings instead of failing
// on foreign keys.
func sanitizeBookings(rows []json.RawMessage, validProfiles map[string]bool) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(rows))
	for _, raw := range rows {
		var record map[string]interface{}
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, err
		}
		if clientID, ok := record["client_id"].(string); ok && clientID != "" && !validProfiles[clientID] {
			record["client_id"] = nil
			fixed, err := json.Marshal(record)
			if err != nil {
				return nil, err
			}
			out = append(out, fixed)
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func (r *backupRepository) upsertRows(ctx context.Context, table string, rows []json.RawMessage) error {
	for _, raw := range rows {
		var record map[string]interface{}
		if err := json.Unmarshal(raw, &record); err != nil {
			return err
		}
		if err := r.upsertRow(ctx, table, record); err != nil {
			return err
		}
	}
	return nil
}

func (r *backupRepository) upsertRow(ctx context.Context, table string, record map[string]interface{}) error {
	cols := make([]string, 0, len(record))
	for col := range record {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != "id" {
			updates = append(updates, fmt.Sprintf("%s=EXCLUDED.%s", col, col))
		}
		args[i] = driverValue(record[col])
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// driverValue re-encodes structured JSON values for jsonb columns.
func driverValue(v interface{}) interface{} {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		b, _ := json.Marshal(v)
		return b
	default:
		return v
	}
}
