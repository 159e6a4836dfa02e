package controllers

import (
	"net/http"

	"autoparts/app/services"
	"autoparts/pkg/bind"
	"autoparts/pkg/middleware"
	"autoparts/pkg/response"
)

type PaymentController struct {
	service *services.CheckoutService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{
		service: services.NewCheckoutService(),
	}
}

// Checkout handles POST /api/payment/checkout.
func (c *PaymentController) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	var body struct {
		PaymentMethod   string `json:"payment_method"   validate:"nullable,max=50"`
		ShippingAddress string `json:"shipping_address" validate:"nullable,max=255"`
		Notes           string `json:"notes"            validate:"nullable,max=1000"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Checkout(userID, services.CheckoutInput{
		PaymentMethod:   body.PaymentMethod,
		ShippingAddress: body.ShippingAddress,
		Notes:           body.Notes,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, order)
}

// Index handles GET /api/payment/orders.
func (c *PaymentController) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	orders, pagination, err := c.service.MyOrders(userID, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Paginated(w, orders, pagination)
}

// Show handles GET /api/payment/orders/{id}.
func (c *PaymentController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	orderID, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.service.OrderForUser(userID, orderID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, order)
}
