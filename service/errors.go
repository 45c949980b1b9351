package service

import (
	"errors"
	"fmt"

	"go-atm/model"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedCard      = errors.New("invalid card number, must be 16 digits")
	ErrAccountNotFound    = errors.New("card not found")
	ErrCardBlocked        = errors.New("card is blocked, please contact customer service")
	ErrInvalidPin         = errors.New("incorrect PIN")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidPinFormat   = errors.New("PIN must be 4 digits")
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")
	ErrAccountExists      = errors.New("card number already exists")
	ErrNegativeBalance    = errors.New("initial balance cannot be negative")
	ErrSessionNotFound    = errors.New("session not found or already ended")
	ErrAmountOutOfRange   = errors.New("amount is out of range")
	ErrUnknownKind        = errors.New("unknown transaction type")
)

// InvalidPinError is returned by a failed PIN verification that did not
// trigger a lockout.
type InvalidPinError struct {
	RemainingAttempts int
}

func (e *InvalidPinError) Error() string {
	return fmt.Sprintf("incorrect PIN, %d attempts remaining", e.RemainingAttempts)
}

func (e *InvalidPinError) Is(target error) bool { return target == ErrInvalidPin }

// DailyLimitError reports which daily ceiling a deposit or withdrawal would
// have crossed.
type DailyLimitError struct {
	Kind  model.TransactionKind
	Limit decimal.Decimal
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily %s limit exceeded (%s)", e.Kind, e.Limit.StringFixed(2))
}

func (e *DailyLimitError) Is(target error) bool { return target == ErrDailyLimitExceeded }

// ProgrammingError marks misuse of the API by the caller. It is raised with
// panic and is never returned as an ordinary result.
type ProgrammingError struct {
	msg string
}

func (e *ProgrammingError) Error() string { return "programming error: " + e.msg }

var ErrNoActiveSession = &ProgrammingError{msg: "operation on a session with no active account"}
