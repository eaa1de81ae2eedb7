package postgres

import (
	"gorm.io/gorm"

	"github.com/ardiputra/expense-portal/internal/category"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetCategories() ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Raw(`SELECT id AS category_id, name AS category_name, is_active
		FROM expense_categories ORDER BY id`).
		Scan(&categories).Error
	return categories, err
}
