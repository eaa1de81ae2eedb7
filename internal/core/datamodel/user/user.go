package user

import "time"

// User carries a two-tier role (Employee/Manager) and an optional
// self-referential manager link used only for display.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	RoleID    int64     `gorm:"column:role_id;not null;default:1"`
	RoleName  string    `gorm:"column:role_name;not null;default:Employee"`
	ManagerID *int64    `gorm:"column:manager_id"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
