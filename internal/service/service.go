package service

import (
	"context"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/utils"
)

type BookingService interface {
	Create(ctx context.Context, input *domain.BookingInput, clientID, actorName string) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error)
	ListOptions(ctx context.Context) ([]domain.Booking, error)
	ListForClient(ctx context.Context, clientID, email string) ([]domain.Booking, error)
	Counts(ctx context.Context) (domain.BookingCounts, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, newPrice *float64, actorName string) (*domain.Booking, error)
	UpdateDetails(ctx context.Context, id string, patch *domain.BookingPatch) error
	Delete(ctx context.Context, id string) error
}

type InvoiceService interface {
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	CreateFromBooking(ctx context.Context, booking *domain.Booking, vatRate float64) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Invoice, int32, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	ListForClient(ctx context.Context, clientID, email string) ([]domain.Invoice, error)
	Update(ctx context.Context, id string, patch *domain.InvoicePatch) (*domain.Invoice, error)
	ToggleStatus(ctx context.Context, id string) (*domain.Invoice, error)
	AddExpenseRebill(ctx context.Context, invoiceID, expenseDescription string, expenseAmount, vatRate float64) error
	Delete(ctx context.Context, id string) error
}

type ExpenseService interface {
	Add(ctx context.Context, input *domain.ExpenseInput, addToInvoice bool) (*domain.Expense, error)
	ListAll(ctx context.Context) ([]domain.Expense, error)
	Update(ctx context.Context, id string, patch *domain.ExpensePatch) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

// FinancialStats is the cross-currency aggregate over all invoices and
// expenses, converted into the SCR base currency.
type FinancialStats struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOutputTax  float64 `json:"totalOutputTax"`
	TotalExpenses   float64 `json:"totalExpenses"`
	TotalInputTax   float64 `json:"totalInputTax"`
	NetProfit       float64 `json:"netProfit"`
	VatPayable      float64 `json:"vatPayable"`
	PendingInvoices int32   `json:"pendingInvoices"`
}

type StatsService interface {
	GetStats(ctx context.Context) (*FinancialStats, error)
}

// FinancialReportSummary is the period view. Its net profit deliberately
// ignores VAT netting; the all-time stats view applies it.
type FinancialReportSummary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalPaidRevenue    float64 `json:"totalPaidRevenue"`
	TotalPendingRevenue float64 `json:"totalPendingRevenue"`
	TotalExpenses       float64 `json:"totalExpenses"`
	NetProfit           float64 `json:"netProfit"`
}

type FinancialReport struct {
	Invoices []domain.Invoice       `json:"invoices"`
	Expenses []domain.Expense       `json:"expenses"`
	Summary  FinancialReportSummary `json:"summary"`
}

type ReportService interface {
	GetManifest(ctx context.Context, startDate, endDate string) ([]domain.Booking, error)
	GetFinancialReport(ctx context.Context, startDate, endDate string) (*FinancialReport, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.BusinessSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.BusinessSettings) (*domain.BusinessSettings, error)
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
}

type ContentService interface {
	ListAdverts(ctx context.Context) ([]domain.Advert, error)
	AddAdvert(ctx context.Context, advert *domain.Advert) (*domain.Advert, error)
	UpdateAdvert(ctx context.Context, advert *domain.Advert) (*domain.Advert, error)
	DeleteAdvert(ctx context.Context, id string) error

	ListGallery(ctx context.Context, limit int32) ([]domain.GalleryImage, error)
	AddGalleryImage(ctx context.Context, image *domain.GalleryImage) (*domain.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]domain.ServiceContent, error)
	AddService(ctx context.Context, service *domain.ServiceContent) (*domain.ServiceContent, error)
	UpdateService(ctx context.Context, service *domain.ServiceContent) (*domain.ServiceContent, error)
	DeleteService(ctx context.Context, id string) error
}

type BackupService interface {
	CreateBackup(ctx context.Context) (*domain.Backup, error)
	RestoreBackup(ctx context.Context, backup *domain.Backup) error
}

type AuthService interface {
	Signup(ctx context.Context, email, name, phone, password string) (*domain.Profile, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch map[string]string) error
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error
	SendBookingStatusUpdate(ctx context.Context, booking *domain.Booking) error
	SendInvoice(ctx context.Context, invoice *domain.Invoice, recipient string) error
}

// CalculateTotals re-exports the tax decomposition for API consumers that
// preview invoice totals before saving.
func CalculateTotals(total, vatRate float64) utils.TotalsBreakdown {
	return utils.CalculateTotals(total, vatRate)
}
