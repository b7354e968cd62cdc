package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"kreol-backend/internal/domain"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreNullsDanglingBookingClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewBackupRepository(db, NewProfileRepository(db))

	backup := &domain.Backup{Version: domain.BackupVersion}
	backup.Tables.Bookings = []json.RawMessage{
		json.RawMessage(`{"id":"bk-1","client_id":"ghost-profile"}`),
		json.RawMessage(`{"id":"bk-2","client_id":"prof-1"}`),
	}

	// Surviving profile ids come through the profile repository.
	mock.ExpectQuery(`SELECT id FROM profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("prof-1"))

	upsert := `INSERT INTO bookings \(client_id, id\) VALUES \(\$1, \$2\) ON CONFLICT \(id\) DO UPDATE SET client_id=EXCLUDED\.client_id`
	mock.ExpectExec(upsert).
		WithArgs(nil, "bk-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsert).
		WithArgs("prof-1", "bk-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Restore(context.Background(), backup))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreFailsWhenProfilesUnreadable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewBackupRepository(db, NewProfileRepository(db))

	mock.ExpectQuery(`SELECT id FROM profiles`).
		WillReturnError(assert.AnError)

	err = repo.Restore(context.Background(), &domain.Backup{Version: domain.BackupVersion})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list profiles")
}

func TestProfileListIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT id FROM profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("prof-1").AddRow("prof-2"))

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"prof-1", "prof-2"}, ids)
}
