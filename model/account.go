package model

import "github.com/shopspring/decimal"

type AccountStatus string

const (
	StatusActive  AccountStatus = "Active"
	StatusBlocked AccountStatus = "Blocked"
)

// AccountSummary is the admin listing view of an account. The card number is
// masked and the PIN is never included.
type AccountSummary struct {
	CardNumber string          `json:"card_number"`
	Balance    decimal.Decimal `json:"balance"`
	Status     AccountStatus   `json:"status"`
}
