package account

import "github.com/shopspring/decimal"

// DefaultStartingBalance is the balance a new session opens with.
var DefaultStartingBalance = decimal.RequireFromString("1000.00")

// Credentials is the username/password pair presented at login.
type Credentials struct {
	Username string
	Password string
}

// Transfer is a PIX transfer request. The recipient key is opaque.
type Transfer struct {
	RecipientKey string
	Amount       decimal.Decimal
}
