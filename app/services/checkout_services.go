package services

import (
	"fmt"

	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/pkg/event"
	"autoparts/pkg/logger"
	"autoparts/pkg/metrics"
	"autoparts/pkg/orm"
)

// defaultPaymentMethod is applied when checkout does not name one.
const defaultPaymentMethod = "TARJETA"

// CheckoutInput carries the optional checkout fields.
type CheckoutInput struct {
	PaymentMethod   string
	ShippingAddress string
	Notes           string
}

type CheckoutService struct {
	carts  *repositories.CartRepository
	orders *repositories.OrderRepository
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		carts:  repositories.NewCartRepository(),
		orders: repositories.NewOrderRepository(),
	}
}

// Checkout converts the user's active cart into a PAID order. Stock is
// re-validated against the live products inside a single transaction, so
// a concurrent stock change either fails the whole checkout or none of
// it. The order total uses the snapshotted line prices, not the current
// product prices. Stock itself is not decremented; fulfilment adjusts it
// through the bulk stock endpoint.
func (s *CheckoutService) Checkout(userID uint, in CheckoutInput) (models.Order, error) {
	cart, err := s.carts.ActiveByUser(userID)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Order{}, ErrEmptyCart
		}
		return models.Order{}, err
	}
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	var order models.Order
	err = orm.Transaction(func(tx *orm.Query) error {
		var total float64
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				First(&product); err != nil {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
			}
			if !product.Active || product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}
			total += item.Price * float64(item.Quantity)
		}

		order = models.Order{
			UserID:          userID,
			Total:           total,
			PaymentMethod:   paymentMethod,
			Status:          models.OrderPaid,
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
		}
		if err := tx.Create(&order); err != nil {
			return err
		}

		// Save a copy without Items so the lines are left untouched.
		done := cart
		done.Items = nil
		done.Status = models.CartCompleted
		return tx.Save(&done)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	event.FireAsync(event.OrderCreated, order)
	logger.Info("checkout: order created",
		"order_id", order.ID, "user_id", userID, "total", order.Total)

	return order, nil
}

// MyOrders returns one page of the user's order history.
func (s *CheckoutService) MyOrders(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ByUser(userID, page, limit)
}

// OrderForUser returns one of the user's orders. Orders belonging to
// someone else look exactly like missing ones.
func (s *CheckoutService) OrderForUser(userID, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.UserID != userID {
		return models.Order{}, orm.ErrNotFound
	}
	return order, nil
}
