package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

const (
	cardNumberRule = "len=16,number"
	pinRule        = "len=4,number"
)

// Money bounds. Values outside them would make decimal arithmetic rescale
// into an arbitrarily large big.Int.
const (
	maxAmountScale  = 8
	maxAmountDigits = 20
)

func isCardNumber(s string) bool {
	return validate.Var(s, cardNumberRule) == nil
}

func isPin(s string) bool {
	return validate.Var(s, pinRule) == nil
}

// isBoundedAmount reports whether amount has at most maxAmountScale decimal
// places and at most maxAmountDigits integer digits. It only inspects the
// exponent and coefficient length, so it is safe on hostile input.
func isBoundedAmount(amount decimal.Decimal) bool {
	exp := amount.Exponent()
	if exp < -maxAmountScale || exp > maxAmountDigits {
		return false
	}
	return amount.NumDigits()+int(exp) <= maxAmountDigits
}
