package domain

type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "FUEL"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategorySalary      ExpenseCategory = "SALARY"
	ExpenseCategoryMarketing   ExpenseCategory = "MARKETING"
	ExpenseCategoryOffice      ExpenseCategory = "OFFICE"
	ExpenseCategoryLicenses    ExpenseCategory = "LICENSES"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// Expense is an operational cost record. VatAmount is always derived from
// Amount and VatIncluded at creation time; it is never supplied by callers.
type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Currency    CurrencyCode    `json:"currency"`
	VatIncluded bool            `json:"vatIncluded"`
	VatAmount   float64         `json:"vatAmount"`
	Reference   string          `json:"reference,omitempty"`
	BookingID   string          `json:"bookingId,omitempty"`
}

// ExpenseInput is the creation payload; VatAmount is intentionally absent.
type ExpenseInput struct {
	Date        string          `json:"date,omitempty"`
	Category    ExpenseCategory `json:"category" validate:"required,oneof=FUEL MAINTENANCE SALARY MARKETING OFFICE LICENSES OTHER"`
	Description string          `json:"description" validate:"required"`
	Amount      float64         `json:"amount" validate:"required,gt=0"`
	Currency    CurrencyCode    `json:"currency,omitempty"`
	VatIncluded bool            `json:"vatIncluded"`
	Reference   string          `json:"reference,omitempty"`
	BookingID   string          `json:"bookingId,omitempty"`
}

// ExpensePatch is a sparse expense update. Per the deployed behavior the
// vat_amount column is not recomputed on update, only on create.
type ExpensePatch struct {
	Date        string          `json:"date,omitempty"`
	Category    ExpenseCategory `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      *float64        `json:"amount,omitempty"`
	Currency    CurrencyCode    `json:"currency,omitempty"`
	VatIncluded *bool           `json:"vatIncluded,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	BookingID   string          `json:"bookingId,omitempty"`
}
