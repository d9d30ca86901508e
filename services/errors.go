package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidOrderState  = errors.New("order is not in a cancellable state")
	ErrUnknownOrderStatus = errors.New("unknown order status")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
