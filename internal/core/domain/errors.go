package domain

import "errors"

// Caller input and credentials.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnauthorized       = errors.New("credential rejected by identity provider")
	ErrServiceUnavailable = errors.New("identity provider unavailable")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Authorization.
var (
	ErrForbidden = errors.New("access forbidden")
	ErrNotOwner  = errors.New("resource not owned by caller")
)

// Lookups.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrShopNotFound    = errors.New("shop not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// ErrInvalidTransition is returned when an order status change skips or
// reverses the lifecycle.
var ErrInvalidTransition = errors.New("invalid status transition")
