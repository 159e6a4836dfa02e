package routes

import (
	"net/http"

	"autoparts/app/controllers"
	"autoparts/app/models"
	"autoparts/app/services"
	"autoparts/pkg/middleware"
	"autoparts/pkg/rbac"
	"autoparts/pkg/response"
	"autoparts/pkg/router"
	"autoparts/pkg/ws"
)

// RegisterAPI mounts every application route.
func RegisterAPI(r *router.Router) {
	authService := services.NewAuthService()

	authController := controllers.NewAuthController()
	productController := controllers.NewProductController()
	cartController := controllers.NewCartController()
	paymentController := controllers.NewPaymentController()
	adminController := controllers.NewAdminController()
	graphqlController := controllers.NewGraphQLController()

	authed := middleware.Auth(authService.LoadRole)
	staffOnly := rbac.HasRole(string(models.RoleAdmin), string(models.RoleVendedor))
	adminOnly := rbac.HasRole(string(models.RoleAdmin))

	wireOrderFeed()

	api := r.Group("/api")

	api.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	// ── Public ───────────────────────────────────────────────────────
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)

	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/meta/filters", "products.meta", productController.Meta)
	api.Get("/products/{id}", "products.show", productController.Show)

	api.Post("/graphql", "graphql", graphqlController.Query)

	// ── Catalog mutations (admin + vendedor) ─────────────────────────
	api.Post("/products", "products.store", productController.Store, authed, staffOnly)
	api.Put("/products/{id}", "products.update", productController.Update, authed, staffOnly)
	api.Delete("/products/{id}", "products.destroy", productController.Destroy, authed, staffOnly)
	api.Patch("/products/{id}/toggle", "products.toggle", productController.Toggle, authed, staffOnly)
	api.Post("/products/{id}/image", "products.image", productController.Upload, authed, staffOnly)

	// ── Authenticated ────────────────────────────────────────────────
	protected := api.Group("", authed)
	protected.Get("/auth/me", "auth.me", authController.Me)

	protected.Get("/cart", "cart.show", cartController.Show)
	protected.Delete("/cart", "cart.clear", cartController.Clear)
	protected.Post("/cart/add", "cart.add", cartController.AddItem)
	protected.Put("/cart/item/{id}", "cart.item.update", cartController.UpdateItem)
	protected.Delete("/cart/item/{id}", "cart.item.remove", cartController.RemoveItem)

	protected.Post("/payment/checkout", "payment.checkout", paymentController.Checkout)
	protected.Get("/payment/orders", "payment.orders", paymentController.Index)
	protected.Get("/payment/orders/{id}", "payment.orders.show", paymentController.Show)

	// ── Admin console (ADMIN only; VENDEDOR is limited to the catalog
	// mutations above) ───────────────────────────────────────────────
	admin := protected.Group("/admin", adminOnly)
	admin.Get("/dashboard", "admin.dashboard", adminController.Dashboard)

	admin.Get("/products", "admin.products.index", productController.AdminIndex)
	admin.Post("/products/bulk-stock", "admin.products.bulkstock", adminController.BulkStock)

	admin.Get("/orders", "admin.orders.index", adminController.Orders)
	admin.Get("/orders/{id}", "admin.orders.show", adminController.OrderShow)
	admin.Put("/orders/{id}/status", "admin.orders.status", adminController.UpdateOrderStatus)

	admin.Get("/users", "admin.users.index", adminController.Users)
	admin.Get("/users/{id}", "admin.users.show", adminController.UserShow)
	admin.Put("/users/{id}/role", "admin.users.role", adminController.UpdateUserRole)
	admin.Delete("/users/{id}", "admin.users.delete", adminController.DeleteUser)
	admin.Get("/reports/sales", "admin.reports.sales", adminController.Sales)
	admin.Get("/reports/inventory", "admin.reports.inventory", adminController.Inventory)

	// ── Live order feed ──────────────────────────────────────────────
	r.Get("/ws/admin/orders", "ws.admin.orders", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, OrderFeed)
	}, authed, adminOnly)
}
