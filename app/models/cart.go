package models

import "gorm.io/gorm"

// CartStatus is the closed set of cart states.
type CartStatus string

const (
	CartActive    CartStatus = "ACTIVE"
	CartCompleted CartStatus = "COMPLETED"
)

// Cart accumulates items for one user before checkout. At most one ACTIVE
// cart exists per user; the invariant is enforced by the get-or-create path
// in the cart service, not by a DB constraint.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"not null;index"                 json:"user_id"`
	Status CartStatus `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE"    json:"items"`
}

// Total sums the line totals using the snapshotted prices.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// CartItem is one line of a cart. Price is a snapshot of the product price
// at add-time and is never re-read from the product.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"not null;index" json:"cart_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null"       json:"quantity"`
	Price     float64 `gorm:"not null"       json:"price"`
	Product   Product `json:"product"`
}
