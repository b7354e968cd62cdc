package http

import (
	"net/http"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/service"

	"github.com/gorilla/mux"
)

type ContentHandler struct {
	contentSvc service.ContentService
}

func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// --- Adverts ---

func (h *ContentHandler) ListAdverts(w http.ResponseWriter, r *http.Request) {
	adverts, err := h.contentSvc.ListAdverts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adverts)
}

func (h *ContentHandler) CreateAdvert(w http.ResponseWriter, r *http.Request) {
	var advert domain.Advert
	if !decodeJSON(w, r, &advert) {
		return
	}
	created, err := h.contentSvc.AddAdvert(r.Context(), &advert)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) UpdateAdvert(w http.ResponseWriter, r *http.Request) {
	var advert domain.Advert
	if !decodeJSON(w, r, &advert) {
		return
	}
	advert.ID = mux.Vars(r)["id"]
	updated, err := h.contentSvc.UpdateAdvert(r.Context(), &advert)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContentHandler) DeleteAdvert(w http.ResponseWriter, r *http.Request) {
	if err := h.contentSvc.DeleteAdvert(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Gallery ---

func (h *ContentHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.contentSvc.ListGallery(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *ContentHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var image domain.GalleryImage
	if !decodeJSON(w, r, &image) {
		return
	}
	created, err := h.contentSvc.AddGalleryImage(r.Context(), &image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := h.contentSvc.DeleteGalleryImage(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Services CMS ---

func (h *ContentHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.contentSvc.ListServices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *ContentHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc domain.ServiceContent
	if !decodeJSON(w, r, &svc) {
		return
	}
	created, err := h.contentSvc.AddService(r.Context(), &svc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var svc domain.ServiceContent
	if !decodeJSON(w, r, &svc) {
		return
	}
	svc.ID = mux.Vars(r)["id"]
	updated, err := h.contentSvc.UpdateService(r.Context(), &svc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContentHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.contentSvc.DeleteService(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
