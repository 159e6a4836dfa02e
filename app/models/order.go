package models

import "gorm.io/gorm"

// OrderStatus is the closed set of order states. Transitions are free-form:
// an admin may set any status from any status.
type OrderStatus string

const (
	OrderPaid       OrderStatus = "PAID"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPaid, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// Order is created once at checkout and never deleted through the API.
// Every field except Status is immutable after creation.
type Order struct {
	gorm.Model
	UserID          uint        `gorm:"not null;index"              json:"user_id"`
	Total           float64     `gorm:"not null"                    json:"total"`
	PaymentMethod   string      `gorm:"size:50;not null"            json:"payment_method"`
	Status          OrderStatus `gorm:"size:20;not null;default:PAID" json:"status"`
	ShippingAddress string      `gorm:"size:255"                    json:"shipping_address"`
	Notes           string      `gorm:"type:text"                   json:"notes"`
	User            User        `json:"user,omitempty"`
}
