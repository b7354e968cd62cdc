package http

import (
	"io"
	"net/http"
	"path/filepath"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/service"
	"kreol-backend/internal/storage"

	"github.com/gorilla/mux"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
	store       storage.Storage
	maxUploadMB int64
}

func NewSettingsHandler(settingsSvc service.SettingsService, store storage.Storage, maxUploadMB int64) *SettingsHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &SettingsHandler{settingsSvc: settingsSvc, store: store, maxUploadMB: maxUploadMB}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings domain.BusinessSettings
	if !decodeJSON(w, r, &settings) {
		return
	}
	updated, err := h.settingsSvc.UpdateSettings(r.Context(), &settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Upload accepts a multipart image and returns its public URL.
func (h *SettingsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB<<20)
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file field required", Field: "file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := h.settingsSvc.UploadImage(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// ServeUpload streams a stored blob back out. The path is the storage key.
func (h *SettingsHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	blob, err := h.store.Open(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	defer blob.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	case ".svg":
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = io.Copy(w, blob)
}
