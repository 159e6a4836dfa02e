package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/app/models"
	"autoparts/pkg/database"
	"autoparts/pkg/orm"
)

func TestCheckoutEmptyCart(t *testing.T) {
	setupDB(t)
	user := makeUser(t, "buyer@example.com", models.RoleCliente)

	// No cart at all.
	_, err := NewCheckoutService().Checkout(user.ID, CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Cart exists but has no lines.
	_, err = NewCartService().Get(user.ID)
	require.NoError(t, err)
	_, err = NewCheckoutService().Checkout(user.ID, CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutTotalsAndDefaults(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	pads := makeProduct(t, "Brake Pads", 50.00, 10)
	filter := makeProduct(t, "Oil Filter", 9.50, 10)

	_, err := carts.AddItem(user.ID, pads.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, filter.ID, 3)
	require.NoError(t, err)

	// Price change after add must not affect the total (snapshots rule).
	pads.Price = 999.00
	require.NoError(t, database.DB.Save(&pads).Error)

	order, err := NewCheckoutService().Checkout(user.ID, CheckoutInput{
		ShippingAddress: "Av. Central 123",
	})
	require.NoError(t, err)

	assert.InDelta(t, 2*50.00+3*9.50, order.Total, 0.001)
	assert.Equal(t, "TARJETA", order.PaymentMethod)
	assert.Equal(t, models.OrderPaid, order.Status)
	assert.Equal(t, "Av. Central 123", order.ShippingAddress)

	// The cart is consumed: completed, and the next Get starts fresh.
	var old models.Cart
	require.NoError(t, database.DB.First(&old, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.CartCompleted, old.Status)

	fresh, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, fresh.ID)
	assert.Empty(t, fresh.Items)
}

func TestCheckoutRevalidatesStockAtomically(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	scarce := makeProduct(t, "Alternator", 189.00, 5)
	common := makeProduct(t, "Bulb", 5.99, 100)

	_, err := carts.AddItem(user.ID, scarce.ID, 5)
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, common.ID, 1)
	require.NoError(t, err)

	// Stock drops between add and checkout.
	scarce.Stock = 2
	require.NoError(t, database.DB.Save(&scarce).Error)

	_, err = NewCheckoutService().Checkout(user.ID, CheckoutInput{})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: no order, cart still active with both lines.
	var orderCount int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	cart, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CartActive, cart.Status)
	assert.Len(t, cart.Items, 2)
}

func TestCheckoutRejectsDeactivatedProduct(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	product := makeProduct(t, "Pads", 50.00, 10)

	_, err := carts.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	// The product is delisted between add and checkout.
	product.Active = false
	require.NoError(t, database.DB.Save(&product).Error)

	_, err = NewCheckoutService().Checkout(user.ID, CheckoutInput{})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var orderCount int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	// Removing the dead line unblocks the cart.
	cart, err := carts.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	_, err = carts.RemoveItem(user.ID, cart.Items[0].ID)
	require.NoError(t, err)
}

func TestOrderOwnership(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()
	buyer := makeUser(t, "buyer@example.com", models.RoleCliente)
	other := makeUser(t, "other@example.com", models.RoleCliente)
	product := makeProduct(t, "Filter", 10.00, 10)

	_, err := carts.AddItem(buyer.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := checkout.Checkout(buyer.ID, CheckoutInput{})
	require.NoError(t, err)

	got, err := checkout.OrderForUser(buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = checkout.OrderForUser(other.ID, order.ID)
	assert.True(t, orm.IsNotFound(err), "foreign orders must look missing, got %v", err)
}

func TestMyOrdersNewestFirst(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	product := makeProduct(t, "Filter", 10.00, 100)

	var ids []uint
	for i := 0; i < 3; i++ {
		_, err := carts.AddItem(user.ID, product.ID, 1)
		require.NoError(t, err)
		order, err := checkout.Checkout(user.ID, CheckoutInput{})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders, pagination, err := checkout.MyOrders(user.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pagination.Total)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}
