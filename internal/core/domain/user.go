package domain

import "time"

// User represents a user of the application in the domain. The role attached
// here is trusted input to the workflow engine; the engine never re-derives it.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	AuthProvider string   `json:"authProvider,omitempty"` // e.g. "google", empty for local accounts
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
