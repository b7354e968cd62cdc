package domain

// Default financial constants for the Seychelles operator.
const (
	DefaultVatRate       = 0.15
	DefaultEurRate       = 15.2
	DefaultUsdRate       = 14.1
	DefaultTransferPrice = 1200
	DefaultTourPrice     = 3000
)

// BusinessSettings is the process-wide singleton configuration row (id = 1).
// Last write wins; there is no versioning.
type BusinessSettings struct {
	Name                     string  `json:"name"`
	Tagline                  string  `json:"tagline"`
	Email                    string  `json:"email"`
	Phone                    string  `json:"phone"`
	Address                  string  `json:"address"`
	About                    string  `json:"about"`
	VatRate                  float64 `json:"vatRate"`
	EurRate                  float64 `json:"eurRate"`
	UsdRate                  float64 `json:"usdRate"`
	DefaultTransferPrice     float64 `json:"defaultTransferPrice"`
	DefaultTourPrice         float64 `json:"defaultTourPrice"`
	ShowVatBreakdown         bool    `json:"showVatBreakdown"`
	AutoCreateInvoice        bool    `json:"autoCreateInvoice"`
	EnableEmailNotifications bool    `json:"enableEmailNotifications"`
	PaymentInstructions      string  `json:"paymentInstructions,omitempty"`
	HeroImageURL             string  `json:"heroImageUrl,omitempty"`
	LogoURL                  string  `json:"logoUrl,omitempty"`
	LoginHeroImageURL        string  `json:"loginHeroImageUrl,omitempty"`
	LoginTitle               string  `json:"loginTitle,omitempty"`
	LoginMessage             string  `json:"loginMessage,omitempty"`
}

// DefaultSettings returns the fallback configuration used when the settings
// row is missing or unreadable. Calculations must keep working off defaults
// rather than failing the caller.
func DefaultSettings() BusinessSettings {
	return BusinessSettings{
		Name:                     "Kreol Island Tours",
		Tagline:                  "Experience Seychelles",
		Email:                    "info@kreol.sc",
		Phone:                    "+248 123456",
		Address:                  "Victoria, Mahe",
		About:                    "About us...",
		VatRate:                  DefaultVatRate,
		EurRate:                  DefaultEurRate,
		UsdRate:                  DefaultUsdRate,
		DefaultTransferPrice:     DefaultTransferPrice,
		DefaultTourPrice:         DefaultTourPrice,
		ShowVatBreakdown:         true,
		AutoCreateInvoice:        false,
		EnableEmailNotifications: true,
		PaymentInstructions:      "Please make transfer to:\nBank: MCB Seychelles\nAccount: 0000000000",
		LoginTitle:               "Experience the Seychelles with the comfort and reliability you deserve.",
		LoginMessage:             "Manage your transfers, tours, and itinerary all in one place.",
	}
}

// DefaultPriceFor resolves the fallback amount for a booking created without
// a price. CHARTER has no dedicated default and uses the transfer price.
func (s BusinessSettings) DefaultPriceFor(serviceType ServiceType) float64 {
	if serviceType == ServiceTypeTour {
		return s.DefaultTourPrice
	}
	return s.DefaultTransferPrice
}

// ExchangeRates returns the conversion table into the SCR base currency.
func (s BusinessSettings) ExchangeRates() map[CurrencyCode]float64 {
	eur := s.EurRate
	if eur == 0 {
		eur = DefaultEurRate
	}
	usd := s.UsdRate
	if usd == 0 {
		usd = DefaultUsdRate
	}
	return map[CurrencyCode]float64{
		CurrencySCR: 1,
		CurrencyEUR: eur,
		CurrencyUSD: usd,
	}
}
