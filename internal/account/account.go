// Package account holds the authoritative balance of the single demo session
// and the rules every mutation must pass before the balance changes.
package account

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Account is the in-memory session account. All mutations are serialized
// through mu so each one applies fully or not at all.
type Account struct {
	mu            sync.RWMutex
	balance       decimal.Decimal
	authenticated bool
}

// New opens an unauthenticated account with the given starting balance.
// Negative starting balances are clamped to zero.
func New(startingBalance decimal.Decimal) *Account {
	if startingBalance.IsNegative() {
		startingBalance = decimal.Zero
	}
	return &Account{balance: startingBalance}
}

// Login applies the placeholder credential policy: any pair with a
// non-blank username and password is accepted.
func (a *Account) Login(creds Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || strings.TrimSpace(creds.Password) == "" {
		return ErrInvalidCredentials
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authenticated = true
	return nil
}

// Authenticated reports whether Login has succeeded for this session.
func (a *Account) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// Balance returns a snapshot of the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Withdraw debits amount. Withdrawing the whole balance is allowed.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	return a.debit(amount)
}

// Deposit credits amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	return nil
}

// Transfer debits t.Amount towards t.RecipientKey. The key is neither
// validated nor resolved; no record of the transfer is kept.
func (a *Account) Transfer(t Transfer) error {
	return a.debit(t.Amount)
}

func (a *Account) debit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}
