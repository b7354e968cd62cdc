package utils

import (
	"math"

	"kreol-backend/internal/domain"
)

// TotalsBreakdown decomposes a tax-inclusive amount.
type TotalsBreakdown struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// All tax math runs in minor units (cents) to avoid floating-point drift.
// Amounts are converted back to decimal only at the boundary.

// ToCents converts a decimal amount to cents, rounding half-up.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts cents back to a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// CalculateTotals splits a VAT-inclusive total into subtotal and tax.
// Subtotal is derived by division (the total already contains tax), rounded
// half-up at the cent; tax is the remainder so the parts always sum back to
// the total exactly. Invalid numeric input degrades to zero / the default
// rate instead of failing, so a dashboard renders rather than crashes.
func CalculateTotals(total, vatRate float64) TotalsBreakdown {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		total = 0
	}
	if math.IsNaN(vatRate) || math.IsInf(vatRate, 0) {
		vatRate = domain.DefaultVatRate
	}

	totalCents := ToCents(total)
	subtotalCents := int64(math.Round(float64(totalCents) / (1 + vatRate)))
	taxCents := totalCents - subtotalCents

	return TotalsBreakdown{
		Subtotal:  FromCents(subtotalCents),
		TaxAmount: FromCents(taxCents),
		Total:     FromCents(totalCents),
	}
}

// CalculateInputTax returns the VAT portion contained in a recorded expense.
// Zero when the expense was booked without VAT.
func CalculateInputTax(amount float64, vatIncluded bool, vatRate float64) float64 {
	if !vatIncluded {
		return 0
	}
	return CalculateTotals(amount, vatRate).TaxAmount
}

// LineTotal computes an invoice line total from quantity and unit price.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}
