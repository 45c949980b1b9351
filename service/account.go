// file: service/account.go

package service

import (
	"sync"
	"time"

	"go-atm/logger"
	"go-atm/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MaxFailedAttempts is the number of consecutive wrong PINs that blocks a card.
const MaxFailedAttempts = 3

// DefaultHistoryLimit is the number of entries shown by a history request
// that does not name a limit.
const DefaultHistoryLimit = 10

// Clock supplies ledger timestamps and the current calendar date.
type Clock func() time.Time

// Account owns one card's balance, PIN, lockout state and ledger. All methods
// are safe for concurrent use.
type Account struct {
	mu             sync.Mutex
	cardNumber     string
	pin            string
	balance        decimal.Decimal
	failedAttempts int
	blocked        bool
	transactions   []model.Transaction
	now            Clock
}

// NewAccount builds an account with an empty ledger. It performs no format
// checks; AccountDirectory.ProvisionAccount is the validating entry point.
func NewAccount(cardNumber, pin string, balance decimal.Decimal, now Clock) *Account {
	if now == nil {
		now = time.Now
	}
	return &Account{
		cardNumber: cardNumber,
		pin:        pin,
		balance:    balance,
		now:        now,
	}
}

func (a *Account) CardNumber() string { return a.cardNumber }

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) FailedAttempts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failedAttempts
}

func (a *Account) IsBlocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blocked
}

// VerifyPin checks candidate against the stored PIN. A blocked account fails
// with ErrCardBlocked without looking at candidate. The third consecutive
// mismatch blocks the account for good.
func (a *Account) VerifyPin(candidate string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.blocked {
		return ErrCardBlocked
	}
	if candidate == a.pin {
		a.failedAttempts = 0
		return nil
	}

	a.failedAttempts++
	if a.failedAttempts >= MaxFailedAttempts {
		a.blocked = true
		logger.Log.WithField("card", logger.MaskCard(a.cardNumber)).Warn("Card blocked after too many failed PIN attempts")
		return ErrCardBlocked
	}
	return &InvalidPinError{RemainingAttempts: MaxFailedAttempts - a.failedAttempts}
}

// Deposit adds amount and returns the new balance.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyLocked(model.KindDeposit, amount)
}

// Withdraw removes amount and returns the new balance. It never overdraws.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyLocked(model.KindWithdrawal, amount)
}

// applyLocked validates and books one ledger entry. Callers hold a.mu.
func (a *Account) applyLocked(kind model.TransactionKind, amount decimal.Decimal) (decimal.Decimal, error) {
	if !isBoundedAmount(amount) {
		return a.balance, ErrAmountOutOfRange
	}
	if !amount.IsPositive() {
		return a.balance, ErrInvalidAmount
	}

	next := a.balance
	switch kind {
	case model.KindDeposit:
		next = next.Add(amount)
	case model.KindWithdrawal:
		if amount.GreaterThan(a.balance) {
			return a.balance, ErrInsufficientFunds
		}
		next = next.Sub(amount)
	default:
		panic(&ProgrammingError{msg: "unknown transaction kind " + string(kind)})
	}

	a.balance = next
	a.transactions = append(a.transactions, model.Transaction{
		ID:               uuid.New(),
		Kind:             kind,
		Amount:           amount,
		Timestamp:        a.now(),
		ResultingBalance: next,
	})

	logger.Log.WithFields(logrus.Fields{
		"card":    logger.MaskCard(a.cardNumber),
		"type":    kind,
		"amount":  amount.String(),
		"balance": next.String(),
	}).Info("Ledger entry recorded")

	return next, nil
}

// ChangePin replaces the PIN. The caller must have verified the current PIN;
// lockout state is left as it is.
func (a *Account) ChangePin(newPin string) error {
	if !isPin(newPin) {
		return ErrInvalidPinFormat
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pin = newPin
	logger.Log.WithField("card", logger.MaskCard(a.cardNumber)).Info("PIN changed")
	return nil
}

// TransactionHistory returns up to limit of the most recent entries, oldest
// first.
func (a *Account) TransactionHistory(limit int) []model.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	if limit <= 0 {
		return []model.Transaction{}
	}
	start := len(a.transactions) - limit
	if start < 0 {
		start = 0
	}
	out := make([]model.Transaction, len(a.transactions)-start)
	copy(out, a.transactions[start:])
	return out
}

// dailyTotalLocked sums the amounts of kind entries dated on the same
// calendar day as day. Callers hold a.mu.
func (a *Account) dailyTotalLocked(kind model.TransactionKind, day time.Time) decimal.Decimal {
	total := decimal.Zero
	y, m, d := day.Date()
	for _, t := range a.transactions {
		if t.Kind != kind {
			continue
		}
		ty, tm, td := t.Timestamp.In(day.Location()).Date()
		if ty == y && tm == m && td == d {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func (a *Account) Summary() model.AccountSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	status := model.StatusActive
	if a.blocked {
		status = model.StatusBlocked
	}
	return model.AccountSummary{
		CardNumber: logger.MaskCard(a.cardNumber),
		Balance:    a.balance,
		Status:     status,
	}
}
