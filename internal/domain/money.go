package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is a whole amount in the smallest unit the café charges in.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount int64, unit currency.Unit) Money {
	return Money{
		Amount:   decimal.NewFromInt(amount),
		Currency: unit,
	}
}

func (m Money) String() string {
	return m.Amount.StringFixed(0) + " " + m.Currency.String()
}
