package user

import "time"

// User is the read projection of an account. Roles form a two-tier hierarchy
// (Employee/Manager); the manager link is display-only and never traversed by
// business logic.
type User struct {
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Email       string    `json:"email"`
	RoleID      int64     `json:"role_id"`
	RoleName    string    `json:"role_name"`
	ManagerID   *int64    `json:"manager_id,omitempty"`
	ManagerName *string   `json:"manager_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	RoleEmployee int64 = 1
	RoleManager  int64 = 2
)
