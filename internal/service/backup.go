package service

import (
	"context"
	"strings"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/repository"
)

type backupService struct {
	backupRepo repository.BackupRepository
}

func NewBackupService(backupRepo repository.BackupRepository) BackupService {
	return &backupService{backupRepo: backupRepo}
}

func (s *backupService) CreateBackup(ctx context.Context) (*domain.Backup, error) {
	backup, err := s.backupRepo.Dump(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Backup created",
		"bookings", len(backup.Tables.Bookings),
		"invoices", len(backup.Tables.Invoices),
		"expenses", len(backup.Tables.Expenses),
		"profiles", len(backup.Tables.Profiles))
	return backup, nil
}

// RestoreBackup validates the envelope and replays it into the database.
// Only major version 1 archives are accepted.
func (s *backupService) RestoreBackup(ctx context.Context, backup *domain.Backup) error {
	if backup == nil {
		return domain.NewValidationError("backup", "empty payload")
	}
	if !strings.HasPrefix(backup.Version, "1.") {
		return domain.NewValidationError("version", "unsupported backup version "+backup.Version)
	}

	if err := s.backupRepo.Restore(ctx, backup); err != nil {
		return err
	}
	logger.Info("Backup restored", "version", backup.Version, "created_at", backup.Timestamp)
	return nil
}
