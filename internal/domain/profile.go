package domain

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleClient  UserRole = "CLIENT"
)

// Profile is a portal account. Bookings reference profiles by client_id;
// guest bookings carry no client_id and are matched by normalized email.
type Profile struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone,omitempty"`
	Address      string   `json:"address,omitempty"`
	Company      string   `json:"company,omitempty"`
	Nationality  string   `json:"nationality,omitempty"`
	VatNumber    string   `json:"vatNumber,omitempty"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	CreatedAt    string   `json:"createdAt"`
}
