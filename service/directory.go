// file: service/directory.go

package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go-atm/logger"
	"go-atm/model"
	"go-atm/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the store the directory keeps accounts in,
// keyed by card number.
type IAccountRepository interface {
	Create(key string, account *Account) error
	Get(key string) (*Account, error)
	List() []*Account
}

// ISessionRepository defines the registry of live sessions, keyed by session id.
type ISessionRepository interface {
	Create(key string, session *Session) error
	Get(key string) (*Session, error)
	Delete(key string)
	List() []*Session
}

type DirectoryConfig struct {
	DailyWithdrawalLimit decimal.Decimal
	DailyDepositLimit    decimal.Decimal
	AdminSecret          string
	// SessionTTL bounds how long a session stays registered after it
	// starts. Zero keeps sessions until they are ended explicitly.
	SessionTTL time.Duration
	Clock      Clock
}

func DefaultDirectoryConfig() DirectoryConfig {
	return DirectoryConfig{
		DailyWithdrawalLimit: decimal.NewFromInt(500),
		DailyDepositLimit:    decimal.NewFromInt(10000),
		AdminSecret:          "9999",
		SessionTTL:           15 * time.Minute,
		Clock:                time.Now,
	}
}

// AccountDirectory owns every Account, resolves cards, provisions new
// accounts, evaluates daily limits and tracks sessions.
type AccountDirectory struct {
	accounts        IAccountRepository
	sessions        ISessionRepository
	withdrawalLimit decimal.Decimal
	depositLimit    decimal.Decimal
	adminSecret     string
	sessionTTL      time.Duration
	now             Clock
}

func NewAccountDirectory(accounts IAccountRepository, sessions ISessionRepository, cfg DirectoryConfig) *AccountDirectory {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &AccountDirectory{
		accounts:        accounts,
		sessions:        sessions,
		withdrawalLimit: cfg.DailyWithdrawalLimit,
		depositLimit:    cfg.DailyDepositLimit,
		adminSecret:     cfg.AdminSecret,
		sessionTTL:      cfg.SessionTTL,
		now:             cfg.Clock,
	}
}

// NewInMemoryDirectory wires a directory to fresh in-memory stores.
func NewInMemoryDirectory(cfg DirectoryConfig) *AccountDirectory {
	return NewAccountDirectory(
		repository.NewMemoryRepository[*Account]("accounts"),
		repository.NewMemoryRepository[*Session]("sessions"),
		cfg,
	)
}

// AuthenticateCard checks the card format and that an account exists for
// it. It does not check the PIN.
func (d *AccountDirectory) AuthenticateCard(cardNumber string) error {
	_, err := d.Account(cardNumber)
	return err
}

// Account resolves a card number to its account.
func (d *AccountDirectory) Account(cardNumber string) (*Account, error) {
	if !isCardNumber(cardNumber) {
		return nil, ErrMalformedCard
	}
	acc, err := d.accounts.Get(cardNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("could not look up account: %w", err)
	}
	return acc, nil
}

// VerifyPin resolves the card and delegates to Account.VerifyPin.
func (d *AccountDirectory) VerifyPin(cardNumber, pin string) error {
	acc, err := d.Account(cardNumber)
	if err != nil {
		return err
	}
	return acc.VerifyPin(pin)
}

func (d *AccountDirectory) limitFor(kind model.TransactionKind) decimal.Decimal {
	switch kind {
	case model.KindWithdrawal:
		return d.withdrawalLimit
	case model.KindDeposit:
		return d.depositLimit
	default:
		panic(&ProgrammingError{msg: "unknown transaction kind " + string(kind)})
	}
}

// CheckDailyLimit reports whether adding amount to today's kind entries on
// account would cross the configured ceiling. It does not mutate anything.
func (d *AccountDirectory) CheckDailyLimit(account *Account, kind model.TransactionKind, amount decimal.Decimal) error {
	account.mu.Lock()
	defer account.mu.Unlock()
	return d.checkDailyLimitLocked(account, kind, amount)
}

func (d *AccountDirectory) checkDailyLimitLocked(account *Account, kind model.TransactionKind, amount decimal.Decimal) error {
	if !isBoundedAmount(amount) {
		return ErrAmountOutOfRange
	}
	limit := d.limitFor(kind)
	today := account.dailyTotalLocked(kind, d.now())
	if today.Add(amount).GreaterThan(limit) {
		logger.Log.WithFields(logrus.Fields{
			"card":   logger.MaskCard(account.cardNumber),
			"type":   kind,
			"amount": amount.String(),
			"today":  today.String(),
			"limit":  limit.String(),
		}).Warn("Daily limit exceeded")
		return &DailyLimitError{Kind: kind, Limit: limit}
	}
	return nil
}

// ProvisionAccount validates card format, PIN format, a non-negative opening
// balance and card uniqueness, in that order, then stores a new account.
func (d *AccountDirectory) ProvisionAccount(cardNumber, pin string, initialBalance decimal.Decimal) (*Account, error) {
	if !isCardNumber(cardNumber) {
		return nil, ErrMalformedCard
	}
	if !isPin(pin) {
		return nil, ErrInvalidPinFormat
	}
	if initialBalance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	if !isBoundedAmount(initialBalance) {
		return nil, ErrAmountOutOfRange
	}
	if _, err := d.accounts.Get(cardNumber); err == nil {
		return nil, ErrAccountExists
	}

	acc := NewAccount(cardNumber, pin, initialBalance, d.now)
	if err := d.accounts.Create(cardNumber, acc); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("could not store account: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"card":    logger.MaskCard(cardNumber),
		"balance": initialBalance.String(),
	}).Info("Account provisioned")
	return acc, nil
}

// VerifyAdmin compares secret with the admin credential. There is no
// attempt counting here.
func (d *AccountDirectory) VerifyAdmin(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(secret), []byte(d.adminSecret)) == 1
}

// ListAccounts returns masked summaries of every account ordered by card.
func (d *AccountDirectory) ListAccounts() []model.AccountSummary {
	accounts := d.accounts.List()
	out := make([]model.AccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.Summary())
	}
	return out
}

// StartSession binds the card's account to a new session. PIN verification
// is a separate step the caller performs first.
func (d *AccountDirectory) StartSession(cardNumber string) (*Session, error) {
	acc, err := d.Account(cardNumber)
	if err != nil {
		return nil, err
	}
	s := newSession(acc, d.now())
	if err := d.sessions.Create(s.ID().String(), s); err != nil {
		return nil, fmt.Errorf("could not register session: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"card":       logger.MaskCard(cardNumber),
		"session_id": s.ID().String(),
	}).Info("Session started")
	return s, nil
}

// Session looks up a live session by id. A session past its TTL is ended
// and forgotten on the way.
func (d *AccountDirectory) Session(id string) (*Session, error) {
	s, err := d.sessions.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("could not look up session: %w", err)
	}
	if d.expired(s, d.now()) {
		d.EndSession(s)
		return nil, ErrSessionNotFound
	}
	if !s.Active() {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (d *AccountDirectory) expired(s *Session, now time.Time) bool {
	return d.sessionTTL > 0 && !now.Before(s.StartedAt().Add(d.sessionTTL))
}

// ReapExpiredSessions ends every registered session past its TTL and
// returns how many were removed.
func (d *AccountDirectory) ReapExpiredSessions() int {
	now := d.now()
	reaped := 0
	for _, s := range d.sessions.List() {
		if d.expired(s, now) {
			d.EndSession(s)
			reaped++
		}
	}
	if reaped > 0 {
		logger.Log.WithField("count", reaped).Info("Expired sessions reaped")
	}
	return reaped
}

// EndSession unbinds the account and forgets the session. Ending a nil or
// already ended session does nothing.
func (d *AccountDirectory) EndSession(s *Session) {
	if s == nil {
		return
	}
	d.sessions.Delete(s.ID().String())
	if s.Active() {
		s.end()
		logger.Log.WithField("session_id", s.ID().String()).Info("Session ended")
	}
}

// Withdraw checks the daily withdrawal limit and withdraws from the
// session's account inside one critical section.
func (d *AccountDirectory) Withdraw(s *Session, amount decimal.Decimal) (decimal.Decimal, error) {
	return d.transact(s.Account(), model.KindWithdrawal, amount)
}

// Deposit checks the daily deposit limit and deposits to the session's
// account inside one critical section.
func (d *AccountDirectory) Deposit(s *Session, amount decimal.Decimal) (decimal.Decimal, error) {
	return d.transact(s.Account(), model.KindDeposit, amount)
}

// Apply runs the limit check and the kind mutation on account inside one
// critical section. Unlike Withdraw and Deposit it takes the kind as data,
// so an unknown kind is an ordinary error.
func (d *AccountDirectory) Apply(account *Account, kind model.TransactionKind, amount decimal.Decimal) (decimal.Decimal, error) {
	if !kind.Valid() {
		return account.Balance(), ErrUnknownKind
	}
	return d.transact(account, kind, amount)
}

func (d *AccountDirectory) transact(acc *Account, kind model.TransactionKind, amount decimal.Decimal) (decimal.Decimal, error) {
	acc.mu.Lock()
	defer acc.mu.Unlock()

	if err := d.checkDailyLimitLocked(acc, kind, amount); err != nil {
		return acc.balance, err
	}
	return acc.applyLocked(kind, amount)
}
