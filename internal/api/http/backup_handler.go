package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/service"
)

type BackupHandler struct {
	backupSvc service.BackupService
}

func NewBackupHandler(backupSvc service.BackupService) *BackupHandler {
	return &BackupHandler{backupSvc: backupSvc}
}

// Create streams a full database export as a downloadable JSON document.
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backupSvc.CreateBackup(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, backup)
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	// Backups can be large; allow up to 50 MB instead of the default cap.
	r.Body = http.MaxBytesReader(w, r.Body, 50<<20)
	var backup domain.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid backup payload"})
		return
	}

	if err := h.backupSvc.RestoreBackup(r.Context(), &backup); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}
