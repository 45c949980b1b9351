// service/account_test.go
package service

import (
	"os"
	"testing"
	"time"

	"go-atm/logger"
	"go-atm/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeClock is a settable time source for date-sensitive tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestAccount(balance string) *Account {
	return NewAccount("1234567890123456", "1234", dec(balance), nil)
}

func TestAccount_VerifyPin(t *testing.T) {
	t.Run("correct pin", func(t *testing.T) {
		acc := newTestAccount("0")
		assert.NoError(t, acc.VerifyPin("1234"))
		assert.Equal(t, 0, acc.FailedAttempts())
	})

	t.Run("wrong pin reports remaining attempts", func(t *testing.T) {
		acc := newTestAccount("0")

		err := acc.VerifyPin("0000")
		var pinErr *InvalidPinError
		require.ErrorAs(t, err, &pinErr)
		assert.ErrorIs(t, err, ErrInvalidPin)
		assert.Equal(t, 2, pinErr.RemainingAttempts)

		err = acc.VerifyPin("0000")
		require.ErrorAs(t, err, &pinErr)
		assert.Equal(t, 1, pinErr.RemainingAttempts)
		assert.Equal(t, 2, acc.FailedAttempts())
	})

	t.Run("third failure blocks and correct pin no longer works", func(t *testing.T) {
		acc := newTestAccount("0")
		_ = acc.VerifyPin("0000")
		_ = acc.VerifyPin("0000")

		assert.ErrorIs(t, acc.VerifyPin("0000"), ErrCardBlocked)
		assert.True(t, acc.IsBlocked())

		assert.ErrorIs(t, acc.VerifyPin("1234"), ErrCardBlocked)
		assert.Equal(t, 3, acc.FailedAttempts(), "blocked verification must not touch the counter")
	})

	t.Run("success after failures resets counter", func(t *testing.T) {
		for _, failures := range []int{1, 2} {
			acc := newTestAccount("0")
			for i := 0; i < failures; i++ {
				_ = acc.VerifyPin("9999")
			}
			assert.NoError(t, acc.VerifyPin("1234"))
			assert.Equal(t, 0, acc.FailedAttempts())
			assert.False(t, acc.IsBlocked())
		}
	})

	t.Run("counter is consecutive", func(t *testing.T) {
		acc := newTestAccount("0")
		_ = acc.VerifyPin("0000")
		_ = acc.VerifyPin("0000")
		require.NoError(t, acc.VerifyPin("1234"))
		_ = acc.VerifyPin("0000")
		_ = acc.VerifyPin("0000")
		assert.False(t, acc.IsBlocked())
	})
}

func TestAccount_DepositWithdraw(t *testing.T) {
	t.Run("balance follows ledger", func(t *testing.T) {
		acc := newTestAccount("100")
		ops := []struct {
			kind   model.TransactionKind
			amount string
		}{
			{model.KindDeposit, "50.25"},
			{model.KindWithdrawal, "20"},
			{model.KindDeposit, "0.10"},
			{model.KindWithdrawal, "130.35"},
			{model.KindDeposit, "7"},
		}

		want := dec("100")
		for _, op := range ops {
			var err error
			if op.kind == model.KindDeposit {
				_, err = acc.Deposit(dec(op.amount))
				want = want.Add(dec(op.amount))
			} else {
				_, err = acc.Withdraw(dec(op.amount))
				want = want.Sub(dec(op.amount))
			}
			require.NoError(t, err)
		}

		assert.True(t, want.Equal(acc.Balance()), "want %s got %s", want, acc.Balance())
		history := acc.TransactionHistory(100)
		require.Len(t, history, len(ops))
		assert.True(t, acc.Balance().Equal(history[len(history)-1].ResultingBalance))
		for i, op := range ops {
			assert.Equal(t, op.kind, history[i].Kind)
			assert.True(t, dec(op.amount).Equal(history[i].Amount))
		}
	})

	t.Run("deposit returns new balance", func(t *testing.T) {
		acc := newTestAccount("10")
		bal, err := acc.Deposit(dec("5"))
		assert.NoError(t, err)
		assert.True(t, dec("15").Equal(bal))
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		acc := newTestAccount("10")
		for _, amt := range []string{"0", "-1"} {
			_, err := acc.Deposit(dec(amt))
			assert.ErrorIs(t, err, ErrInvalidAmount)
			_, err = acc.Withdraw(dec(amt))
			assert.ErrorIs(t, err, ErrInvalidAmount)
		}
		assert.Empty(t, acc.TransactionHistory(10))
		assert.True(t, dec("10").Equal(acc.Balance()))
	})

	t.Run("out of range amounts are rejected before arithmetic", func(t *testing.T) {
		acc := newTestAccount("10")
		for _, amt := range []string{"1e200000000", "1e-200000000", "0.000000001", "123456789012345678901"} {
			_, err := acc.Deposit(dec(amt))
			assert.ErrorIs(t, err, ErrAmountOutOfRange, amt)
			_, err = acc.Withdraw(dec(amt))
			assert.ErrorIs(t, err, ErrAmountOutOfRange, amt)
		}
		assert.Empty(t, acc.TransactionHistory(10))
		assert.True(t, dec("10").Equal(acc.Balance()))
	})

	t.Run("insufficient funds leaves state unchanged", func(t *testing.T) {
		acc := newTestAccount("10")
		_, err := acc.Withdraw(dec("10.01"))
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.True(t, dec("10").Equal(acc.Balance()))
		assert.Empty(t, acc.TransactionHistory(10))
	})

	t.Run("withdraw whole balance", func(t *testing.T) {
		acc := newTestAccount("10")
		bal, err := acc.Withdraw(dec("10"))
		assert.NoError(t, err)
		assert.True(t, bal.IsZero())
	})

	t.Run("mutations do not touch lockout state", func(t *testing.T) {
		acc := newTestAccount("10")
		_ = acc.VerifyPin("0000")
		_, _ = acc.Deposit(dec("1"))
		_, _ = acc.Withdraw(dec("1"))
		assert.Equal(t, 1, acc.FailedAttempts())
	})
}

func TestAccount_ChangePin(t *testing.T) {
	t.Run("invalid formats", func(t *testing.T) {
		acc := newTestAccount("0")
		for _, pin := range []string{"12a4", "123", "12345", "", "+123", "１２３４"} {
			assert.ErrorIs(t, acc.ChangePin(pin), ErrInvalidPinFormat, pin)
		}
		assert.NoError(t, acc.VerifyPin("1234"), "PIN must be unchanged")
	})

	t.Run("valid change", func(t *testing.T) {
		acc := newTestAccount("0")
		require.NoError(t, acc.ChangePin("4321"))
		assert.NoError(t, acc.VerifyPin("4321"))
	})

	t.Run("same pin allowed and lockout state kept", func(t *testing.T) {
		acc := newTestAccount("0")
		_ = acc.VerifyPin("0000")
		require.NoError(t, acc.ChangePin("1234"))
		assert.Equal(t, 1, acc.FailedAttempts())
	})
}

func TestAccount_TransactionHistory(t *testing.T) {
	acc := newTestAccount("0")
	for i := 1; i <= 4; i++ {
		_, err := acc.Deposit(decimal.NewFromInt(int64(i)))
		require.NoError(t, err)
	}

	t.Run("fewer entries than limit", func(t *testing.T) {
		h := acc.TransactionHistory(DefaultHistoryLimit)
		require.Len(t, h, 4)
		for i, tx := range h {
			assert.True(t, decimal.NewFromInt(int64(i+1)).Equal(tx.Amount))
		}
	})

	t.Run("more entries than limit returns last n in order", func(t *testing.T) {
		h := acc.TransactionHistory(2)
		require.Len(t, h, 2)
		assert.True(t, dec("3").Equal(h[0].Amount))
		assert.True(t, dec("4").Equal(h[1].Amount))
	})

	t.Run("non-positive limit", func(t *testing.T) {
		assert.Empty(t, acc.TransactionHistory(0))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		h := acc.TransactionHistory(1)
		h[0].Amount = dec("1000")
		assert.True(t, dec("4").Equal(acc.TransactionHistory(1)[0].Amount))
	})
}

func TestAccount_Summary(t *testing.T) {
	acc := newTestAccount("42")
	s := acc.Summary()
	assert.Equal(t, "1234********3456", s.CardNumber)
	assert.Equal(t, model.StatusActive, s.Status)

	for i := 0; i < MaxFailedAttempts; i++ {
		_ = acc.VerifyPin("0000")
	}
	assert.Equal(t, model.StatusBlocked, acc.Summary().Status)
}
