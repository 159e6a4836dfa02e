package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"autoparts/app/models"
	"autoparts/app/services"
	"autoparts/pkg/logger"
	"autoparts/pkg/orm"
	"autoparts/pkg/response"
)

// paramID parses the {id} route parameter.
func paramID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryFloat reads an optional float query parameter.
func queryFloat(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// queryDate reads an optional YYYY-MM-DD query parameter. A missing
// parameter yields a zero time; a malformed one is an error.
func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

// fail maps service errors onto HTTP status codes.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case orm.IsNotFound(err):
		response.NotFound(w)
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSKUTaken):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrSelfDemotion),
		errors.Is(err, services.ErrSelfDeletion),
		errors.Is(err, services.ErrProductInactive),
		errors.Is(err, services.ErrInvalidImage),
		errors.Is(err, services.ErrImageTooLarge),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNegativeStock):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// cartPayload shapes a cart for the API response with derived totals.
func cartPayload(cart models.Cart) map[string]interface{} {
	return map[string]interface{}{
		"cart":       cart,
		"total":      cart.Total(),
		"item_count": cart.ItemCount(),
	}
}
