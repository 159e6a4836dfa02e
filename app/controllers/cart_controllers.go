package controllers

import (
	"net/http"

	"autoparts/app/services"
	"autoparts/pkg/bind"
	"autoparts/pkg/middleware"
	"autoparts/pkg/response"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{
		service: services.NewCartService(),
	}
}

// Show handles GET /api/cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	cart, err := c.service.Get(userID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, cartPayload(cart))
}

// AddItem handles POST /api/cart/add.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	var body struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity"   validate:"required,gte=1"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.service.AddItem(userID, body.ProductID, body.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, cartPayload(cart))
}

// UpdateItem handles PUT /api/cart/item/{id}.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	itemID, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var body struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.service.UpdateItem(userID, itemID, body.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, cartPayload(cart))
}

// RemoveItem handles DELETE /api/cart/item/{id}.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	itemID, err := paramID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := c.service.RemoveItem(userID, itemID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, cartPayload(cart))
}

// Clear handles DELETE /api/cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)

	cart, err := c.service.Clear(userID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, cartPayload(cart))
}
