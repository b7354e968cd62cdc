package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type ServiceType string

const (
	ServiceTypeTransfer ServiceType = "TRANSFER"
	ServiceTypeTour     ServiceType = "TOUR"
	ServiceTypeCharter  ServiceType = "CHARTER"
)

type CurrencyCode string

const (
	CurrencySCR CurrencyCode = "SCR"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyUSD CurrencyCode = "USD"
)

// History actions. Entries are kept most-recent-first.
const (
	HistoryActionCreated      = "CREATED"
	HistoryActionUpdated      = "UPDATED"
	HistoryActionStatusChange = "STATUS_CHANGE"
)

// BookingPreviousState is the snapshot captured before a status change.
type BookingPreviousState struct {
	Status BookingStatus `json:"status"`
	Amount float64       `json:"amount"`
}

// BookingHistoryEntry is one append-only audit record on a booking.
// The "user" JSON key is the actor name; it matches the column layout of
// the existing store and must not be renamed.
type BookingHistoryEntry struct {
	Timestamp     string                `json:"timestamp"`
	Action        string                `json:"action"`
	Details       string                `json:"details"`
	Actor         string                `json:"user"`
	PreviousState *BookingPreviousState `json:"previousState,omitempty"`
}

type Booking struct {
	ID              string                `json:"id"`
	ClientID        string                `json:"clientId"`
	ClientName      string                `json:"clientName"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone,omitempty"`
	ServiceType     ServiceType           `json:"serviceType"`
	PickupLocation  string                `json:"pickupLocation"`
	DropoffLocation string                `json:"dropoffLocation"`
	PickupTime      string                `json:"pickupTime"`
	Pax             int32                 `json:"pax"`
	Status          BookingStatus         `json:"status"`
	Amount          float64               `json:"amount"`
	Currency        CurrencyCode          `json:"currency"`
	Notes           string                `json:"notes,omitempty"`
	History         []BookingHistoryEntry `json:"history"`
}

// BookingInput is the booking-funnel submission. Amount is a pointer so an
// absent price can fall back to the configured default for the service type.
type BookingInput struct {
	ClientName      string        `json:"clientName" validate:"required,min=2"`
	Email           string        `json:"email" validate:"required,email"`
	Phone           string        `json:"phone"`
	ServiceType     ServiceType   `json:"serviceType" validate:"required,oneof=TRANSFER TOUR CHARTER"`
	PickupLocation  string        `json:"pickupLocation" validate:"required,min=3"`
	DropoffLocation string        `json:"dropoffLocation" validate:"required,min=3"`
	PickupTime      string        `json:"pickupTime" validate:"required"`
	Pax             int32         `json:"pax" validate:"required,min=1"`
	Amount          *float64      `json:"amount,omitempty"`
	Currency        CurrencyCode  `json:"currency,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Status          BookingStatus `json:"status,omitempty"`
}

// BookingPatch carries a sparse update. Empty/zero fields are skipped when
// building the row update, matching the write behavior of the existing
// deployment.
type BookingPatch struct {
	ClientName      string       `json:"clientName,omitempty"`
	Email           string       `json:"email,omitempty"`
	Phone           string       `json:"phone,omitempty"`
	ServiceType     ServiceType  `json:"serviceType,omitempty"`
	PickupLocation  string       `json:"pickupLocation,omitempty"`
	DropoffLocation string       `json:"dropoffLocation,omitempty"`
	PickupTime      string       `json:"pickupTime,omitempty"`
	Pax             int32        `json:"pax,omitempty"`
	Amount          float64      `json:"amount,omitempty"`
	Currency        CurrencyCode `json:"currency,omitempty"`
	Notes           string       `json:"notes,omitempty"`
}

// BookingCounts is the dashboard summary of open work.
type BookingCounts struct {
	Pending   int32 `json:"pending"`
	Confirmed int32 `json:"confirmed"`
}
