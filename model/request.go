// file: model/request.go

package model

import "github.com/shopspring/decimal"

// CardRequest is the payload for checking a card number before PIN entry.
// Formats are checked by the service so that malformed input maps to its own
// error kind rather than a generic validation failure.
type CardRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
}

// SessionRequest opens a session for a card once its PIN is verified.
type SessionRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
	PIN        string `json:"pin" validate:"required"`
}

// AmountRequest is the payload for deposits and withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ChangePinRequest requires the current PIN and the new PIN entered twice.
type ChangePinRequest struct {
	CurrentPIN string `json:"current_pin" validate:"required"`
	NewPIN     string `json:"new_pin" validate:"required"`
	ConfirmPIN string `json:"confirm_pin" validate:"required"`
}

// ProvisionAccountRequest defines the admin payload for adding an account.
type ProvisionAccountRequest struct {
	CardNumber     string          `json:"card_number" validate:"required"`
	PIN            string          `json:"pin" validate:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// SessionResponse carries the bearer token for the opened session.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
