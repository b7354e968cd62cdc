package http

import (
	"net/http"
	"strconv"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	authSvc    service.AuthService
}

func NewBookingHandler(bookingSvc service.BookingService, authSvc service.AuthService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, authSvc: authSvc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.BookingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	clientID := ""
	actor := "System"
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		clientID = claims.UserID
		if profile, err := h.authSvc.GetProfile(r.Context(), claims.UserID); err == nil {
			actor = profile.Name
		}
	}

	booking, err := h.bookingSvc.Create(r.Context(), &input, clientID, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 20)
	if pageSize > 100 {
		pageSize = 100
	}

	bookings, total, err := h.bookingSvc.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *BookingHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.ListOptions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListMine returns the calling client's bookings, matched by account id or
// normalized email for bookings made before signup.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	bookings, err := h.bookingSvc.ListForClient(r.Context(), claims.UserID, claims.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.bookingSvc.Counts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status   domain.BookingStatus `json:"status"`
		NewPrice *float64             `json:"newPrice,omitempty"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	switch body.Status {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed,
		domain.BookingStatusCompleted, domain.BookingStatusCancelled:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid status", Field: "status"})
		return
	}

	actor := "Manager"
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		if profile, err := h.authSvc.GetProfile(r.Context(), claims.UserID); err == nil {
			actor = profile.Name
		}
	}

	booking, err := h.bookingSvc.UpdateStatus(r.Context(), mux.Vars(r)["id"], body.Status, body.NewPrice, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.BookingPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if err := h.bookingSvc.UpdateDetails(r.Context(), mux.Vars(r)["id"], &patch); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func queryInt(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}
	return int32(val)
}
