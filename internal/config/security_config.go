// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
	SecurityStaff                        // Access token with ADMIN or MANAGER role
)

// EndpointSecurityConfig maps named routes to their required security level.
// Route names are set when the router is built.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.signup": SecurityPublic,
	"auth.login":  SecurityPublic,

	// Auth - Refresh Protected
	"auth.refresh": SecurityRefresh,

	// Auth - Access Protected
	"auth.profile.get":    SecurityAccess,
	"auth.profile.update": SecurityAccess,

	// Bookings
	"bookings.create":  SecurityPublic, // Guest booking form
	"bookings.mine":    SecurityAccess,
	"bookings.list":    SecurityStaff,
	"bookings.options": SecurityStaff,
	"bookings.counts":  SecurityStaff,
	"bookings.get":     SecurityStaff,
	"bookings.status":  SecurityStaff,
	"bookings.update":  SecurityStaff,
	"bookings.delete":  SecurityStaff,

	// Invoices
	"invoices.mine":   SecurityAccess,
	"invoices.list":   SecurityStaff,
	"invoices.get":    SecurityStaff,
	"invoices.create": SecurityStaff,
	"invoices.update": SecurityStaff,
	"invoices.toggle": SecurityStaff,
	"invoices.send":   SecurityStaff,
	"invoices.delete": SecurityStaff,

	// Expenses
	"expenses.list":   SecurityStaff,
	"expenses.create": SecurityStaff,
	"expenses.update": SecurityStaff,
	"expenses.delete": SecurityStaff,

	// Stats and reports
	"stats.get":        SecurityStaff,
	"reports.manifest": SecurityStaff,
	"reports.finance":  SecurityStaff,

	// Settings
	"settings.get":    SecurityPublic, // Public site reads branding
	"settings.update": SecurityStaff,
	"settings.upload": SecurityStaff,

	// Content - public reads, staff writes
	"content.adverts.list":    SecurityPublic,
	"content.adverts.create":  SecurityStaff,
	"content.adverts.update":  SecurityStaff,
	"content.adverts.delete":  SecurityStaff,
	"content.gallery.list":    SecurityPublic,
	"content.gallery.create":  SecurityStaff,
	"content.gallery.delete":  SecurityStaff,
	"content.services.list":   SecurityPublic,
	"content.services.create": SecurityStaff,
	"content.services.update": SecurityStaff,
	"content.services.delete": SecurityStaff,

	// Backup
	"backup.create":  SecurityStaff,
	"backup.restore": SecurityStaff,

	// Static uploads
	"uploads.serve": SecurityPublic,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityStaff
}
