package repositories

import (
	"time"

	"autoparts/app/models"
	"autoparts/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindByID looks up an order by primary key with the buyer preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Where("id = ?", id).
		Preload("User").
		First(&order)
	return order, err
}

// Create persists a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	return orm.DB().Save(order)
}

// ByUser returns one page of the user's orders, newest first.
func (r *OrderRepository) ByUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Order("id desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// AllByUser returns every order of one user, newest first.
func (r *OrderRepository) AllByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Order("id desc").
		Get(&orders)
	return orders, err
}

// All returns one page of all orders, optionally filtered by status and
// buyer, newest first, with buyers preloaded.
func (r *OrderRepository) All(status models.OrderStatus, userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var orders []models.Order
	pagination, err := q.
		Preload("User").
		Order("id desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// Recent returns the n most recent orders with buyers preloaded.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("User").
		Order("id desc").
		Limit(n).
		Get(&orders)
	return orders, err
}

// AllForReport returns every order, oldest first, optionally limited to
// a creation date range. The range applies only when both ends are set.
// The sales report rolls these up in memory rather than pushing
// aggregation into SQL.
func (r *OrderRepository) AllForReport(start, end time.Time) ([]models.Order, error) {
	q := orm.DB().Model(&models.Order{})
	if !start.IsZero() && !end.IsZero() {
		q = q.Where("created_at BETWEEN ? AND ?", start, end)
	}

	var orders []models.Order
	err := q.Order("id asc").Get(&orders)
	return orders, err
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Count(&n)
	return n, err
}
