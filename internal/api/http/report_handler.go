package http

import (
	"fmt"
	"net/http"

	"kreol-backend/internal/export"
	"kreol-backend/internal/service"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (h *ReportHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	bookings, err := h.reportSvc.GetManifest(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		buf, err := export.ManifestWorkbook(bookings, start, end)
		if err != nil {
			writeError(w, err)
			return
		}
		serveWorkbook(w, buf.Bytes(), fmt.Sprintf("manifest_%s_%s.xlsx", start, end))
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *ReportHandler) Financial(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	report, err := h.reportSvc.GetFinancialReport(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		buf, err := export.FinancialReportWorkbook(report, start, end)
		if err != nil {
			writeError(w, err)
			return
		}
		serveWorkbook(w, buf.Bytes(), fmt.Sprintf("financial_report_%s_%s.xlsx", start, end))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func dateRange(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")
	if start == "" || end == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "startDate and endDate are required"})
		return "", "", false
	}
	return start, end, true
}

func serveWorkbook(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
