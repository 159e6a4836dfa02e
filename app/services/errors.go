package services

import "errors"

// Domain errors returned by the services. Controllers translate these
// into HTTP status codes.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDemotion       = errors.New("cannot change your own role")
	ErrSelfDeletion       = errors.New("cannot delete your own account")

	ErrSKUTaken        = errors.New("sku is already in use")
	ErrProductInactive = errors.New("product is not available")
	ErrInvalidImage    = errors.New("image must be jpeg, png, webp or avif")
	ErrImageTooLarge   = errors.New("image exceeds the 5 MB limit")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")

	ErrInvalidStatus = errors.New("invalid order status")
	ErrNegativeStock = errors.New("stock cannot be negative")
)
