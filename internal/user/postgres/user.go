package postgres

import (
	"gorm.io/gorm"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/user"
)

const userSelect = `
SELECT u.id AS user_id,
       u.name AS user_name,
       u.email,
       u.role_id,
       u.role_name,
       u.manager_id,
       m.name AS manager_name,
       u.is_active,
       u.created_at
FROM users u
LEFT JOIN users m ON m.id = u.manager_id`

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUsers() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Raw(userSelect + " ORDER BY u.id").Scan(&users).Error
	return users, err
}

func (r *UserRepository) GetUserByID(id int64) (*user.User, error) {
	var u user.User
	tx := r.db.Raw(userSelect+" WHERE u.id = ?", id).Scan(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, internal.ErrUserNotFound
	}
	return &u, nil
}
