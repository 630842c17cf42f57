package account

import "errors"

var (
	// ErrInvalidCredentials is returned when the username or password is empty.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidAmount occurs when an amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds occurs when a debit exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
