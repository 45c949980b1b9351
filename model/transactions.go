package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

func (k TransactionKind) Valid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is one immutable ledger entry. ResultingBalance is the account
// balance immediately after the entry was applied.
type Transaction struct {
	ID               uuid.UUID       `json:"id"`
	Kind             TransactionKind `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Timestamp        time.Time       `json:"date"`
	ResultingBalance decimal.Decimal `json:"balance"`
}
