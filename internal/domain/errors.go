package domain

import "errors"

// Input errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// User errors
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
)

// Catalog and reward errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrRewardNotFound  = errors.New("reward not found")
	ErrRewardInactive  = errors.New("reward is not active")
)

// Checkout errors
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidCartLine      = errors.New("invalid cart line")
	ErrInvalidAddress       = errors.New("incomplete shipping address")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Order and points errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInsufficientPoints = errors.New("insufficient points")
)
