package http

import (
	"net/http"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/service"

	"github.com/gorilla/mux"
)

type FinanceHandler struct {
	invoiceSvc service.InvoiceService
	expenseSvc service.ExpenseService
	statsSvc   service.StatsService
	emailSvc   service.EmailService
}

func NewFinanceHandler(
	invoiceSvc service.InvoiceService,
	expenseSvc service.ExpenseService,
	statsSvc service.StatsService,
	emailSvc service.EmailService,
) *FinanceHandler {
	return &FinanceHandler{
		invoiceSvc: invoiceSvc,
		expenseSvc: expenseSvc,
		statsSvc:   statsSvc,
		emailSvc:   emailSvc,
	}
}

// --- Invoices ---

func (h *FinanceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 20)
	if pageSize > 100 {
		pageSize = 100
	}

	invoices, total, err := h.invoiceSvc.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// ListMyInvoices returns the portal caller's invoices via their booking
// links.
func (h *FinanceHandler) ListMyInvoices(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	invoices, err := h.invoiceSvc.ListForClient(r.Context(), claims.UserID, claims.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *FinanceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *FinanceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var invoice domain.Invoice
	if !decodeJSON(w, r, &invoice) {
		return
	}
	created, err := h.invoiceSvc.Create(r.Context(), &invoice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FinanceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var patch domain.InvoicePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	invoice, err := h.invoiceSvc.Update(r.Context(), mux.Vars(r)["id"], &patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *FinanceHandler) ToggleInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceSvc.ToggleStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *FinanceHandler) SendInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Recipient string `json:"recipient"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Recipient == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "recipient required", Field: "recipient"})
		return
	}

	invoice, err := h.invoiceSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.emailSvc.SendInvoice(r.Context(), invoice, body.Recipient); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *FinanceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Expenses ---

func (h *FinanceHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenseSvc.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *FinanceHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var body struct {
		domain.ExpenseInput
		AddToInvoice bool `json:"addToInvoice"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	expense, err := h.expenseSvc.Add(r.Context(), &body.ExpenseInput, body.AddToInvoice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *FinanceHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var patch domain.ExpensePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	expense, err := h.expenseSvc.Update(r.Context(), mux.Vars(r)["id"], &patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *FinanceHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Stats ---

func (h *FinanceHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
