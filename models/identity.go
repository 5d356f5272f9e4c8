package models

// Identity is the authenticated caller as reported by the identity provider.
// It is never persisted; the JWT middleware builds one per request from the
// verified token claims.
type Identity struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Permission values carried in identity tokens.
const (
	PermissionAdmin      = "admin"
	PermissionSuperAdmin = "super_admin"
)
