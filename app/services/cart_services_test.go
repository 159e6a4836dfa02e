package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/app/models"
	"autoparts/pkg/database"
	"autoparts/pkg/orm"
)

func TestGetCreatesSingleActiveCart(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)

	first, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CartActive, first.Status)
	assert.Empty(t, first.Items)

	second, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeated calls must reuse the same cart")

	var count int64
	require.NoError(t, database.DB.Model(&models.Cart{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemMergesQuantities(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	product := makeProduct(t, "Oil Filter", 9.50, 10)

	_, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "same product must merge into one line")
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.ItemCount())
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	product := makeProduct(t, "Brake Pads", 50.00, 10)

	_, err := svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	// Price rises after the item is in the cart.
	product.Price = 80.00
	require.NoError(t, database.DB.Save(&product).Error)

	cart, err := svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 50.00, cart.Items[0].Price, 0.001,
		"snapshot from first add must survive the merge")
	assert.InDelta(t, 100.00, cart.Total(), 0.001)
}

func TestAddItemRespectsStock(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	product := makeProduct(t, "Alternator", 189.00, 3)

	_, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	// 2 already in the cart; 2 more would exceed the 3 in stock.
	_, err = svc.AddItem(user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)

	product := models.Product{Name: "Ghost", Price: 5, Stock: 10, Active: false}
	require.NoError(t, database.DB.Create(&product).Error)

	_, err := svc.AddItem(user.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestUpdateItemHidesForeignLines(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	owner := makeUser(t, "owner@example.com", models.RoleCliente)
	intruder := makeUser(t, "intruder@example.com", models.RoleCliente)
	product := makeProduct(t, "Spark Plug", 7.80, 100)

	cart, err := svc.AddItem(owner.ID, product.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	// The intruder needs an active cart of their own for the lookup path.
	_, err = svc.Get(intruder.ID)
	require.NoError(t, err)

	_, err = svc.UpdateItem(intruder.ID, itemID, 5)
	assert.True(t, orm.IsNotFound(err), "foreign items must look missing, got %v", err)

	_, err = svc.RemoveItem(intruder.ID, itemID)
	assert.True(t, orm.IsNotFound(err))
}

func TestClearEmptiesCart(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	a := makeProduct(t, "A", 1.00, 10)
	b := makeProduct(t, "B", 2.00, 10)

	_, err := svc.AddItem(user.ID, a.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(user.ID, b.ID, 2)
	require.NoError(t, err)

	cart, err := svc.Clear(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total())
}
