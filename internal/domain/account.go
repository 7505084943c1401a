package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountActive  AccountStatus = "ACTIVE"
	AccountBlocked AccountStatus = "BLOCKED"
	AccountClosed  AccountStatus = "CLOSED"
)

// DefaultAgency is the single branch code every account is opened under.
const DefaultAgency = "0001"

type Account struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	Agency        string          `json:"agency"`
	Balance       decimal.Decimal `json:"balance"`
	UserID        string          `json:"user_id"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Credit increases the balance. The amount must be strictly positive.
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidData("amount", "credit amount must be positive")
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit decreases the balance. The amount must be strictly positive and
// must not exceed the current balance.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidData("amount", "debit amount must be positive")
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance(a.Balance, amount)
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
