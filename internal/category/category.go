package category

// Category is the reference-data view of an expense category. Categories are
// never hard-deleted; deactivated ones keep their id so existing expenses
// stay valid, and creation flows simply stop offering them.
type Category struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	IsActive     bool   `json:"is_active"`
}
