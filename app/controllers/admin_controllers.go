package controllers

import (
	"net/http"
	"time"

	"autoparts/app/models"
	"autoparts/app/services"
	"autoparts/pkg/bind"
	"autoparts/pkg/middleware"
	"autoparts/pkg/response"
)

type AdminController struct {
	service *services.AdminService
}

func NewAdminController() *AdminController {
	return &AdminController{
		service: services.NewAdminService(),
	}
}

// Dashboard handles GET /api/admin/dashboard.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Dashboard()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}

// Users handles GET /api/admin/users.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	users, pagination, err := c.service.Users(q.Get("role"), q.Get("search"), page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Paginated(w, users, pagination)
}

// UserShow handles GET /api/admin/users/{id}.
func (c *AdminController) UserShow(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := c.service.UserDetail(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, detail)
}

// UpdateUserRole handles PUT /api/admin/users/{id}/role.
func (c *AdminController) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromCtx(r)

	targetID, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var body struct {
		Role string `json:"role" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.UpdateUserRole(actorID, targetID, models.Role(body.Role))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromCtx(r)

	targetID, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.service.DeleteUser(actorID, targetID); err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{"deleted": targetID})
}

// Orders handles GET /api/admin/orders.
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	status := r.URL.Query().Get("status")
	userID := uint(queryInt(r, "user_id", 0))

	orders, pagination, err := c.service.Orders(status, userID, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Paginated(w, orders, pagination)
}

// OrderShow handles GET /api/admin/orders/{id}.
func (c *AdminController) OrderShow(w http.ResponseWriter, r *http.Request) {
	id, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := c.service.OrderDetail(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, detail)
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}/status.
func (c *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.UpdateOrderStatus(orderID, models.OrderStatus(body.Status))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, order)
}

// Sales handles GET /api/admin/reports/sales. The optional start_date
// and end_date parameters (YYYY-MM-DD) bound the report; both must be
// given for the range to apply.
func (c *AdminController) Sales(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}
	if !end.IsZero() {
		// Make the end date inclusive of its whole day.
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	report, err := c.service.Sales(start, end)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, report)
}

// Inventory handles GET /api/admin/reports/inventory.
func (c *AdminController) Inventory(w http.ResponseWriter, r *http.Request) {
	report, err := c.service.Inventory()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, report)
}

// BulkStock handles POST /api/admin/products/bulk-stock.
func (c *AdminController) BulkStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Updates []services.StockUpdate `json:"updates"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.Updates) == 0 {
		response.Error(w, http.StatusBadRequest, "updates must not be empty")
		return
	}

	if err := c.service.BulkStockUpdate(body.Updates); err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{"updated": len(body.Updates)})
}
