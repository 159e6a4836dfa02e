package services

import (
	"sort"
	"time"

	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/pkg/cache"
	"autoparts/pkg/collection"
	"autoparts/pkg/event"
	"autoparts/pkg/logger"
	"autoparts/pkg/orm"
)

const (
	lowStockThreshold = 10
	recentOrderCount  = 5

	dashboardCacheTTL = 30 * time.Second
	dashboardCacheKey = "admin:dashboard"
)

// DashboardStats is the admin landing-page summary. Users counts client
// accounts only; staff are not customers.
type DashboardStats struct {
	Users        int64            `json:"users"`
	Products     int64            `json:"products"`
	Orders       int64            `json:"orders"`
	ActiveCarts  int64            `json:"active_carts"`
	Revenue      float64          `json:"revenue"`
	LowStock     []models.Product `json:"low_stock"`
	RecentOrders []models.Order   `json:"recent_orders"`
}

// UserDetail is one account with its purchase history summary.
type UserDetail struct {
	User         models.User    `json:"user"`
	RecentOrders []models.Order `json:"recent_orders"`
	OrderCount   int            `json:"order_count"`
	TotalSpent   float64        `json:"total_spent"`
}

// OrderDetail pairs an order with its lines. Lines are recovered from
// the cart that was closed at checkout.
type OrderDetail struct {
	Order models.Order      `json:"order"`
	Items []models.CartItem `json:"items"`
}

// DailySales is one day of the sales report.
type DailySales struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SalesReport rolls up the full order history.
type SalesReport struct {
	TotalOrders  int                        `json:"total_orders"`
	Revenue      float64                    `json:"revenue"`
	AverageOrder float64                    `json:"average_order"`
	ByStatus     map[models.OrderStatus]int `json:"by_status"`
	ByDay        []DailySales               `json:"by_day"`
}

// CategoryStock is one category of the inventory report.
type CategoryStock struct {
	Category string  `json:"category"`
	Products int     `json:"products"`
	Units    int     `json:"units"`
	Value    float64 `json:"value"`
}

// InventoryReport summarises current stock levels.
type InventoryReport struct {
	TotalProducts  int              `json:"total_products"`
	TotalUnits     int              `json:"total_units"`
	InventoryValue float64          `json:"inventory_value"`
	ByCategory     []CategoryStock  `json:"by_category"`
	LowStock       []models.Product `json:"low_stock"`
}

// StockUpdate is one row of a bulk stock adjustment. Rows are checked by
// BulkStockUpdate itself (non-negative stock, product must exist); tag
// validation does not reach slice elements.
type StockUpdate struct {
	ProductID uint `json:"product_id"`
	Stock     int  `json:"stock"`
}

type AdminService struct {
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	carts    *repositories.CartRepository
}

func NewAdminService() *AdminService {
	return &AdminService{
		users:    repositories.NewUserRepository(),
		products: repositories.NewProductRepository(),
		orders:   repositories.NewOrderRepository(),
		carts:    repositories.NewCartRepository(),
	}
}

// countsTowardsRevenue excludes cancelled and refunded orders.
func countsTowardsRevenue(o models.Order) bool {
	return o.Status != models.OrderCancelled && o.Status != models.OrderRefunded
}

// Dashboard builds the admin landing-page stats. The result is cached
// for a few seconds; the dashboard polls and none of these numbers need
// to be live.
func (s *AdminService) Dashboard() (DashboardStats, error) {
	var stats DashboardStats
	if cache.Get(dashboardCacheKey, &stats) {
		return stats, nil
	}

	clients, err := s.users.CountByRole(models.RoleCliente)
	if err != nil {
		return DashboardStats{}, err
	}
	products, err := s.products.Count(true)
	if err != nil {
		return DashboardStats{}, err
	}
	activeCarts, err := s.carts.CountActive()
	if err != nil {
		return DashboardStats{}, err
	}
	orders, err := s.orders.AllForReport(time.Time{}, time.Time{})
	if err != nil {
		return DashboardStats{}, err
	}
	lowStock, err := s.products.LowStock(lowStockThreshold)
	if err != nil {
		return DashboardStats{}, err
	}
	recent, err := s.orders.Recent(recentOrderCount)
	if err != nil {
		return DashboardStats{}, err
	}

	revenue := collection.Reduce(
		collection.Filter(orders, countsTowardsRevenue),
		0.0,
		func(acc float64, o models.Order) float64 { return acc + o.Total },
	)

	stats = DashboardStats{
		Users:        clients,
		Products:     products,
		Orders:       int64(len(orders)),
		ActiveCarts:  activeCarts,
		Revenue:      revenue,
		LowStock:     lowStock,
		RecentOrders: recent,
	}
	if err := cache.Set(dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		logger.Warn("admin: dashboard cache write failed", "error", err)
	}
	return stats, nil
}

// Users returns one page of accounts, optionally narrowed by role and a
// name/email search term.
func (s *AdminService) Users(role, search string, page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(models.Role(role), search, page, limit)
}

// UserDetail returns one account with its last orders and lifetime
// purchase totals.
func (s *AdminService) UserDetail(userID uint) (UserDetail, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return UserDetail{}, err
	}

	orders, err := s.orders.AllByUser(userID)
	if err != nil {
		return UserDetail{}, err
	}

	recent := orders
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return UserDetail{
		User:         user,
		RecentOrders: recent,
		OrderCount:   len(orders),
		TotalSpent: collection.Reduce(orders, 0.0, func(acc float64, o models.Order) float64 {
			return acc + o.Total
		}),
	}, nil
}

// UpdateUserRole changes a user's role. An admin cannot demote their own
// account, which keeps at least the acting admin in place.
func (s *AdminService) UpdateUserRole(actorID, targetID uint, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, ErrInvalidRole
	}
	if actorID == targetID && role != models.RoleAdmin {
		return models.User{}, ErrSelfDemotion
	}

	user, err := s.users.FindByID(targetID)
	if err != nil {
		return models.User{}, err
	}

	user.Role = role
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}

	logger.Info("admin: role changed", "user_id", targetID, "role", role, "by", actorID)
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfDeletion
	}

	if _, err := s.users.FindByID(targetID); err != nil {
		return err
	}
	if err := s.users.Delete(targetID); err != nil {
		return err
	}

	logger.Info("admin: user deleted", "user_id", targetID, "by", actorID)
	return nil
}

// Orders returns one page of all orders, optionally filtered by status
// and buyer.
func (s *AdminService) Orders(status string, userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var st models.OrderStatus
	if status != "" {
		st = models.OrderStatus(status)
		if !st.Valid() {
			return nil, orm.Pagination{}, ErrInvalidStatus
		}
	}
	return s.orders.All(st, userID, page, limit)
}

// OrderDetail returns an order together with its lines. Orders do not
// carry their own line table; the lines are read back from the buyer's
// COMPLETED cart closest below the order's creation time. A missing
// cart yields an order with no lines rather than an error.
func (s *AdminService) OrderDetail(orderID uint) (OrderDetail, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return OrderDetail{}, err
	}

	detail := OrderDetail{Order: order, Items: []models.CartItem{}}

	cart, err := s.carts.CompletedFor(order.UserID, order.CreatedAt)
	switch {
	case err == nil:
		detail.Items = cart.Items
	case !orm.IsNotFound(err):
		return OrderDetail{}, err
	}

	return detail, nil
}

// UpdateOrderStatus moves an order to a new status and notifies the
// admin feed.
func (s *AdminService) UpdateOrderStatus(orderID uint, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, ErrInvalidStatus
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}

	order.Status = status
	if err := s.orders.Save(&order); err != nil {
		return models.Order{}, err
	}

	event.FireAsync(event.OrderStatusChanged, order)
	logger.Info("admin: order status changed", "order_id", orderID, "status", status)
	return order, nil
}

// Sales rolls the order history up in memory, optionally limited to a
// date range (applied only when both ends are given). Order volume in
// this store stays small enough that SQL aggregation is not worth the
// portability cost across the four supported drivers.
func (s *AdminService) Sales(start, end time.Time) (SalesReport, error) {
	orders, err := s.orders.AllForReport(start, end)
	if err != nil {
		return SalesReport{}, err
	}

	counted := collection.Filter(orders, countsTowardsRevenue)
	revenue := collection.Reduce(counted, 0.0,
		func(acc float64, o models.Order) float64 { return acc + o.Total },
	)

	byStatus := collection.CountBy(orders, func(o models.Order) models.OrderStatus {
		return o.Status
	})

	byDayMap := collection.GroupBy(orders, func(o models.Order) string {
		return o.CreatedAt.Format("2006-01-02")
	})

	days := make([]string, 0, len(byDayMap))
	for day := range byDayMap {
		days = append(days, day)
	}
	sort.Strings(days)

	byDay := collection.Map(days, func(day string) DailySales {
		dayOrders := byDayMap[day]
		dayRevenue := collection.Reduce(
			collection.Filter(dayOrders, countsTowardsRevenue),
			0.0,
			func(acc float64, o models.Order) float64 { return acc + o.Total },
		)
		return DailySales{Date: day, Orders: len(dayOrders), Revenue: dayRevenue}
	})

	// Average over the orders that actually carry revenue, so refunds
	// do not drag the mean down.
	avg := 0.0
	if len(counted) > 0 {
		avg = revenue / float64(len(counted))
	}

	return SalesReport{
		TotalOrders:  len(orders),
		Revenue:      revenue,
		AverageOrder: avg,
		ByStatus:     byStatus,
		ByDay:        byDay,
	}, nil
}

// Inventory summarises stock levels per category. The product snapshot
// comes through the read cache; a minute of staleness is fine here.
func (s *AdminService) Inventory() (InventoryReport, error) {
	products, err := s.products.AllCached(time.Minute)
	if err != nil {
		return InventoryReport{}, err
	}

	byCategoryMap := collection.GroupBy(products, func(p models.Product) string {
		if p.Category == "" {
			return "uncategorized"
		}
		return p.Category
	})

	categories := make([]string, 0, len(byCategoryMap))
	for c := range byCategoryMap {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	byCategory := collection.Map(categories, func(c string) CategoryStock {
		group := byCategoryMap[c]
		return CategoryStock{
			Category: c,
			Products: len(group),
			Units: collection.Reduce(group, 0, func(acc int, p models.Product) int {
				return acc + p.Stock
			}),
			Value: collection.Reduce(group, 0.0, func(acc float64, p models.Product) float64 {
				return acc + p.Price*float64(p.Stock)
			}),
		}
	})

	lowStock, err := s.products.LowStock(lowStockThreshold)
	if err != nil {
		return InventoryReport{}, err
	}

	return InventoryReport{
		TotalProducts: len(products),
		TotalUnits: collection.Reduce(products, 0, func(acc int, p models.Product) int {
			return acc + p.Stock
		}),
		InventoryValue: collection.Reduce(products, 0.0, func(acc float64, p models.Product) float64 {
			return acc + p.Price*float64(p.Stock)
		}),
		ByCategory: byCategory,
		LowStock:   lowStock,
	}, nil
}

// BulkStockUpdate sets the stock of several products at once. The whole
// batch commits or rolls back together, so a typo in one row cannot
// leave the inventory half-updated.
func (s *AdminService) BulkStockUpdate(updates []StockUpdate) error {
	for _, u := range updates {
		if u.Stock < 0 {
			return ErrNegativeStock
		}
	}

	err := orm.Transaction(func(tx *orm.Query) error {
		for _, u := range updates {
			if err := s.products.SetStock(tx, u.ProductID, u.Stock); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.Del("products:all", "catalog:meta")
	logger.Info("admin: bulk stock update", "rows", len(updates))
	return nil
}
