package postgres

import "errors"

// User errors
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Catalog errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrRewardNotFound  = errors.New("reward not found")
)

// Order and ledger errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)
