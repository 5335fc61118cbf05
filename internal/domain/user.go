package domain

import "time"

// Role is the access level carried in a user's session token.
type Role string

const (
	RoleSuperAdmin  Role = "SUPERADMIN"
	RoleStaff       Role = "STAFF"
	RoleViewer      Role = "VIEWER"
	RoleCoordinator Role = "COORDINATOR"
)

// User is a console account. PasswordHash is a bcrypt digest.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	BatchID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
