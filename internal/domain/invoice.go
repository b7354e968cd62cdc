package domain

// InvoiceItem is one billed line. Total is quantity * unit price and is
// recomputed by the caller whenever quantity or price changes.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Invoice is a billing document, optionally linked to one booking.
// Subtotal + TaxAmount == Total within cent rounding, and Total equals the
// sum of item totals whenever items are present.
type Invoice struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"bookingId,omitempty"`
	ClientName string        `json:"clientName"`
	Date       string        `json:"date"`
	Subtotal   float64       `json:"subtotal"`
	TaxAmount  float64       `json:"taxAmount"`
	Total      float64       `json:"total"`
	Paid       bool          `json:"paid"`
	Currency   CurrencyCode  `json:"currency"`
	Items      []InvoiceItem `json:"items"`
}

// InvoicePatch carries a sparse invoice update. Numeric money fields and the
// paid flag use pointers so zero is a writable value; item replacement uses
// a pointer so nil means "leave items alone".
type InvoicePatch struct {
	ClientName string         `json:"clientName,omitempty"`
	Date       string         `json:"date,omitempty"`
	Subtotal   *float64       `json:"subtotal,omitempty"`
	TaxAmount  *float64       `json:"taxAmount,omitempty"`
	Total      *float64       `json:"total,omitempty"`
	Paid       *bool          `json:"paid,omitempty"`
	Currency   CurrencyCode   `json:"currency,omitempty"`
	Items      *[]InvoiceItem `json:"items,omitempty"`
}

// SumItems returns the sum of line totals.
func SumItems(items []InvoiceItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Total
	}
	return sum
}
