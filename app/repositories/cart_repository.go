package repositories

import (
	"time"

	"autoparts/app/models"
	"autoparts/pkg/orm"
)

// CartRepository handles database operations for Cart and CartItem.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// ActiveByUser returns the user's ACTIVE cart with items and their
// products preloaded. Returns orm.ErrNotFound when none exists.
func (r *CartRepository) ActiveByUser(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := orm.DB().
		Model(&models.Cart{}).
		Where("user_id = ? AND status = ?", userID, models.CartActive).
		Preload("Items.Product").
		First(&cart)
	return cart, err
}

// CompletedFor returns the user's most recent COMPLETED cart created at
// or before the given time, with items and products preloaded. Orders do
// not store their own lines; the lines live in the cart that was closed
// at checkout.
func (r *CartRepository) CompletedFor(userID uint, before time.Time) (models.Cart, error) {
	var cart models.Cart
	err := orm.DB().
		Model(&models.Cart{}).
		Where("user_id = ? AND status = ? AND created_at <= ?", userID, models.CartCompleted, before).
		Preload("Items.Product").
		Order("created_at desc").
		First(&cart)
	return cart, err
}

// CountActive returns the number of open carts across all users.
func (r *CartRepository) CountActive() (int64, error) {
	var n int64
	err := orm.DB().
		Model(&models.Cart{}).
		Where("status = ?", models.CartActive).
		Count(&n)
	return n, err
}

// Create persists a new cart.
func (r *CartRepository) Create(cart *models.Cart) error {
	return orm.DB().Create(cart)
}

// Save persists changes to a cart.
func (r *CartRepository) Save(cart *models.Cart) error {
	return orm.DB().Save(cart)
}

// ItemByID returns one cart item by primary key.
func (r *CartRepository) ItemByID(id uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).Where("id = ?", id).First(&item)
	return item, err
}

// ItemByProduct returns the cart's line for the given product, if any.
func (r *CartRepository) ItemByProduct(cartID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item)
	return item, err
}

// CreateItem persists a new cart line.
func (r *CartRepository) CreateItem(item *models.CartItem) error {
	return orm.DB().Create(item)
}

// SaveItem persists changes to a cart line.
func (r *CartRepository) SaveItem(item *models.CartItem) error {
	return orm.DB().Save(item)
}

// DeleteItem removes a cart line.
func (r *CartRepository) DeleteItem(id uint) error {
	return orm.DB().Delete(&models.CartItem{}, id)
}

// ClearItems removes every line from the cart.
func (r *CartRepository) ClearItems(cartID uint) error {
	return orm.DB().Where("cart_id = ?", cartID).Delete(&models.CartItem{})
}
