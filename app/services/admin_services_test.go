package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/app/models"
	"autoparts/pkg/database"
)

func makeOrder(t *testing.T, userID uint, total float64, status models.OrderStatus, at time.Time) models.Order {
	t.Helper()

	order := models.Order{UserID: userID, Total: total, PaymentMethod: "TARJETA", Status: status}
	require.NoError(t, database.DB.Create(&order).Error)
	require.NoError(t, database.DB.Model(&order).Update("created_at", at).Error)
	order.CreatedAt = at
	return order
}

func TestUpdateUserRoleGuards(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	admin := makeUser(t, "admin@example.com", models.RoleAdmin)
	clerk := makeUser(t, "clerk@example.com", models.RoleCliente)

	// Promoting someone else works.
	updated, err := svc.UpdateUserRole(admin.ID, clerk.ID, models.RoleVendedor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendedor, updated.Role)

	// An admin cannot demote themselves.
	_, err = svc.UpdateUserRole(admin.ID, admin.ID, models.RoleCliente)
	assert.ErrorIs(t, err, ErrSelfDemotion)

	// Re-asserting their own admin role is harmless.
	_, err = svc.UpdateUserRole(admin.ID, admin.ID, models.RoleAdmin)
	assert.NoError(t, err)

	// Unknown roles never reach the database.
	_, err = svc.UpdateUserRole(admin.ID, clerk.ID, models.Role("SUPERUSER"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeleteUserGuards(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	admin := makeUser(t, "admin@example.com", models.RoleAdmin)
	victim := makeUser(t, "victim@example.com", models.RoleCliente)

	assert.ErrorIs(t, svc.DeleteUser(admin.ID, admin.ID), ErrSelfDeletion)

	require.NoError(t, svc.DeleteUser(admin.ID, victim.ID))

	// Deleted accounts are gone from lookups.
	_, err := NewAuthService().Me(victim.ID)
	assert.Error(t, err)
}

func TestUpdateOrderStatusWhitelist(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	order := makeOrder(t, user.ID, 100, models.OrderPaid, time.Now())

	updated, err := svc.UpdateOrderStatus(order.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	_, err = svc.UpdateOrderStatus(order.ID, models.OrderStatus("LOST"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateOrderStatus(99999, models.OrderShipped)
	assert.Error(t, err)
}

func TestOrdersStatusFilter(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	makeOrder(t, user.ID, 10, models.OrderPaid, time.Now())
	makeOrder(t, user.ID, 20, models.OrderShipped, time.Now())
	makeOrder(t, user.ID, 30, models.OrderPaid, time.Now())

	paid, pagination, err := svc.Orders("PAID", 0, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pagination.Total)
	assert.Len(t, paid, 2)

	_, _, err = svc.Orders("BOGUS", 0, 1, 10)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Narrowing to a buyer drops everyone else's orders.
	other := makeUser(t, "other@example.com", models.RoleCliente)
	makeOrder(t, other.ID, 5, models.OrderPaid, time.Now())

	mine, _, err := svc.Orders("", user.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	theirs, _, err := svc.Orders("", other.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestUsersRoleAndSearchFilter(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	makeUser(t, "admin@example.com", models.RoleAdmin)
	makeUser(t, "clerk@example.com", models.RoleVendedor)
	makeUser(t, "buyer@example.com", models.RoleCliente)

	all, pagination, err := svc.Users("", "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.EqualValues(t, 3, pagination.Total)

	clients, _, err := svc.Users("CLIENTE", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "buyer@example.com", clients[0].Email)

	found, _, err := svc.Users("", "clerk", 1, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, models.RoleVendedor, found[0].Role)
}

func TestUserDetail(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	makeOrder(t, user.ID, 10, models.OrderPaid, time.Now().Add(-2*time.Hour))
	makeOrder(t, user.ID, 20, models.OrderDelivered, time.Now().Add(-time.Hour))
	makeOrder(t, user.ID, 30, models.OrderPaid, time.Now())

	detail, err := svc.UserDetail(user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, detail.User.ID)
	assert.Equal(t, 3, detail.OrderCount)
	assert.InDelta(t, 60, detail.TotalSpent, 0.001)
	require.Len(t, detail.RecentOrders, 3)
	assert.InDelta(t, 30, detail.RecentOrders[0].Total, 0.001, "newest first")

	_, err = svc.UserDetail(99999)
	assert.Error(t, err)
}

func TestOrderDetailRecoversCartLines(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	product := makeProduct(t, "Pads", 25, 10)

	cart := models.Cart{
		UserID: user.ID,
		Status: models.CartCompleted,
		Items:  []models.CartItem{{ProductID: product.ID, Quantity: 2, Price: 25}},
	}
	require.NoError(t, database.DB.Create(&cart).Error)

	order := makeOrder(t, user.ID, 50, models.OrderPaid, time.Now().Add(time.Minute))

	detail, err := svc.OrderDetail(order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 2, detail.Items[0].Quantity)
	assert.Equal(t, "Pads", detail.Items[0].Product.Name)

	// An order with no matching closed cart still renders, just bare.
	other := makeUser(t, "other@example.com", models.RoleCliente)
	bare := makeOrder(t, other.ID, 10, models.OrderPaid, time.Now())

	detail, err = svc.OrderDetail(bare.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Items)
}

func TestSalesReportRollup(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)

	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	makeOrder(t, user.ID, 100, models.OrderPaid, day1)
	makeOrder(t, user.ID, 50, models.OrderDelivered, day1)
	makeOrder(t, user.ID, 70, models.OrderCancelled, day2)

	report, err := svc.Sales(time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalOrders)
	assert.InDelta(t, 150, report.Revenue, 0.001, "cancelled orders carry no revenue")
	assert.InDelta(t, 75, report.AverageOrder, 0.001, "average spans revenue-counting orders only")
	assert.Equal(t, 1, report.ByStatus[models.OrderCancelled])
	assert.Equal(t, 1, report.ByStatus[models.OrderPaid])

	require.Len(t, report.ByDay, 2)
	assert.Equal(t, "2026-03-01", report.ByDay[0].Date)
	assert.Equal(t, 2, report.ByDay[0].Orders)
	assert.InDelta(t, 150, report.ByDay[0].Revenue, 0.001)
	assert.InDelta(t, 0, report.ByDay[1].Revenue, 0.001)

	// Bounding the range to the first day drops the second day's order.
	bounded, err := svc.Sales(day1.Add(-time.Hour), day1.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, bounded.TotalOrders)
	require.Len(t, bounded.ByDay, 1)
	assert.Equal(t, "2026-03-01", bounded.ByDay[0].Date)
}

func TestInventoryReport(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	makeProduct(t, "Pads", 50, 30)  // default category bucket
	makeProduct(t, "Filter", 10, 2) // low stock

	report, err := svc.Inventory()
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, 32, report.TotalUnits)
	assert.InDelta(t, 50*30+10*2, report.InventoryValue, 0.001)
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "Filter", report.LowStock[0].Name)
}

func TestBulkStockUpdateAllOrNothing(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	a := makeProduct(t, "A", 1, 5)
	b := makeProduct(t, "B", 1, 5)

	// One row references a missing product: nothing may change.
	err := svc.BulkStockUpdate([]StockUpdate{
		{ProductID: a.ID, Stock: 50},
		{ProductID: 99999, Stock: 10},
	})
	require.Error(t, err)

	var check models.Product
	require.NoError(t, database.DB.First(&check, a.ID).Error)
	assert.Equal(t, 5, check.Stock)

	// Negative stock is rejected before touching the database.
	err = svc.BulkStockUpdate([]StockUpdate{{ProductID: a.ID, Stock: -1}})
	assert.ErrorIs(t, err, ErrNegativeStock)

	// A clean batch lands on every row.
	require.NoError(t, svc.BulkStockUpdate([]StockUpdate{
		{ProductID: a.ID, Stock: 7},
		{ProductID: b.ID, Stock: 8},
	}))
	require.NoError(t, database.DB.First(&check, a.ID).Error)
	assert.Equal(t, 7, check.Stock)
	require.NoError(t, database.DB.First(&check, b.ID).Error)
	assert.Equal(t, 8, check.Stock)
}

func TestDashboardStats(t *testing.T) {
	setupDB(t)
	svc := NewAdminService()
	user := makeUser(t, "buyer@example.com", models.RoleCliente)
	makeUser(t, "admin@example.com", models.RoleAdmin)
	makeProduct(t, "Scarce", 10, 1)
	makeProduct(t, "Plenty", 10, 50)
	makeOrder(t, user.ID, 40, models.OrderPaid, time.Now())
	makeOrder(t, user.ID, 60, models.OrderRefunded, time.Now())
	require.NoError(t, database.DB.Create(&models.Cart{UserID: user.ID, Status: models.CartActive}).Error)

	stats, err := svc.Dashboard()
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.Users, "staff accounts are not customers")
	assert.EqualValues(t, 2, stats.Products)
	assert.EqualValues(t, 2, stats.Orders)
	assert.EqualValues(t, 1, stats.ActiveCarts)
	assert.InDelta(t, 40, stats.Revenue, 0.001, "refunds drop out of revenue")
	require.Len(t, stats.LowStock, 1)
	assert.Equal(t, "Scarce", stats.LowStock[0].Name)
	assert.Len(t, stats.RecentOrders, 2)
}
