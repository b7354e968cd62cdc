package http

import (
	"net/http"

	"kreol-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Booking  *BookingHandler
	Finance  *FinanceHandler
	Report   *ReportHandler
	Settings *SettingsHandler
	Content  *ContentHandler
	Backup   *BackupHandler
}

// NewRouter builds the API surface. Every route is named; the auth
// middleware resolves its security level from that name.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(AuthMiddleware(tokens))

	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost).Name("auth.signup")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost).Name("auth.refresh")
	api.HandleFunc("/auth/profile", h.Auth.GetProfile).Methods(http.MethodGet).Name("auth.profile.get")
	api.HandleFunc("/auth/profile", h.Auth.UpdateProfile).Methods(http.MethodPatch).Name("auth.profile.update")

	// Bookings
	api.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet).Name("bookings.list")
	api.HandleFunc("/bookings/options", h.Booking.ListOptions).Methods(http.MethodGet).Name("bookings.options")
	api.HandleFunc("/bookings/counts", h.Booking.Counts).Methods(http.MethodGet).Name("bookings.counts")
	api.HandleFunc("/bookings/mine", h.Booking.ListMine).Methods(http.MethodGet).Name("bookings.mine")
	api.HandleFunc("/bookings/{id}", h.Booking.Get).Methods(http.MethodGet).Name("bookings.get")
	api.HandleFunc("/bookings/{id}/status", h.Booking.UpdateStatus).Methods(http.MethodPatch).Name("bookings.status")
	api.HandleFunc("/bookings/{id}", h.Booking.Update).Methods(http.MethodPatch).Name("bookings.update")
	api.HandleFunc("/bookings/{id}", h.Booking.Delete).Methods(http.MethodDelete).Name("bookings.delete")

	// Invoices
	api.HandleFunc("/invoices", h.Finance.ListInvoices).Methods(http.MethodGet).Name("invoices.list")
	api.HandleFunc("/invoices", h.Finance.CreateInvoice).Methods(http.MethodPost).Name("invoices.create")
	api.HandleFunc("/invoices/mine", h.Finance.ListMyInvoices).Methods(http.MethodGet).Name("invoices.mine")
	api.HandleFunc("/invoices/{id}", h.Finance.GetInvoice).Methods(http.MethodGet).Name("invoices.get")
	api.HandleFunc("/invoices/{id}", h.Finance.UpdateInvoice).Methods(http.MethodPatch).Name("invoices.update")
	api.HandleFunc("/invoices/{id}/toggle", h.Finance.ToggleInvoice).Methods(http.MethodPost).Name("invoices.toggle")
	api.HandleFunc("/invoices/{id}/send", h.Finance.SendInvoice).Methods(http.MethodPost).Name("invoices.send")
	api.HandleFunc("/invoices/{id}", h.Finance.DeleteInvoice).Methods(http.MethodDelete).Name("invoices.delete")

	// Expenses
	api.HandleFunc("/expenses", h.Finance.ListExpenses).Methods(http.MethodGet).Name("expenses.list")
	api.HandleFunc("/expenses", h.Finance.CreateExpense).Methods(http.MethodPost).Name("expenses.create")
	api.HandleFunc("/expenses/{id}", h.Finance.UpdateExpense).Methods(http.MethodPatch).Name("expenses.update")
	api.HandleFunc("/expenses/{id}", h.Finance.DeleteExpense).Methods(http.MethodDelete).Name("expenses.delete")

	// Stats and reports
	api.HandleFunc("/stats", h.Finance.GetStats).Methods(http.MethodGet).Name("stats.get")
	api.HandleFunc("/reports/manifest", h.Report.Manifest).Methods(http.MethodGet).Name("reports.manifest")
	api.HandleFunc("/reports/financial", h.Report.Financial).Methods(http.MethodGet).Name("reports.finance")

	// Settings
	api.HandleFunc("/settings", h.Settings.Get).Methods(http.MethodGet).Name("settings.get")
	api.HandleFunc("/settings", h.Settings.Update).Methods(http.MethodPut).Name("settings.update")
	api.HandleFunc("/settings/upload", h.Settings.Upload).Methods(http.MethodPost).Name("settings.upload")

	// Content
	api.HandleFunc("/content/adverts", h.Content.ListAdverts).Methods(http.MethodGet).Name("content.adverts.list")
	api.HandleFunc("/content/adverts", h.Content.CreateAdvert).Methods(http.MethodPost).Name("content.adverts.create")
	api.HandleFunc("/content/adverts/{id}", h.Content.UpdateAdvert).Methods(http.MethodPut).Name("content.adverts.update")
	api.HandleFunc("/content/adverts/{id}", h.Content.DeleteAdvert).Methods(http.MethodDelete).Name("content.adverts.delete")
	api.HandleFunc("/content/gallery", h.Content.ListGallery).Methods(http.MethodGet).Name("content.gallery.list")
	api.HandleFunc("/content/gallery", h.Content.CreateGalleryImage).Methods(http.MethodPost).Name("content.gallery.create")
	api.HandleFunc("/content/gallery/{id}", h.Content.DeleteGalleryImage).Methods(http.MethodDelete).Name("content.gallery.delete")
	api.HandleFunc("/content/services", h.Content.ListServices).Methods(http.MethodGet).Name("content.services.list")
	api.HandleFunc("/content/services", h.Content.CreateService).Methods(http.MethodPost).Name("content.services.create")
	api.HandleFunc("/content/services/{id}", h.Content.UpdateService).Methods(http.MethodPut).Name("content.services.update")
	api.HandleFunc("/content/services/{id}", h.Content.DeleteService).Methods(http.MethodDelete).Name("content.services.delete")

	// Backup
	api.HandleFunc("/backup", h.Backup.Create).Methods(http.MethodGet).Name("backup.create")
	api.HandleFunc("/backup/restore", h.Backup.Restore).Methods(http.MethodPost).Name("backup.restore")

	// Static uploads
	r.HandleFunc("/uploads/{key:.*}", h.Settings.ServeUpload).Methods(http.MethodGet).Name("uploads.serve")

	return r
}
