package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is what the till prices in when nothing else is configured.
var DefaultCurrency = currency.MXN

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

var displayPrinter = message.NewPrinter(language.AmericanEnglish)

// dollarSign lists the units the till shows with a bare "$".
var dollarSign = map[currency.Unit]bool{
	currency.MXN: true,
	currency.USD: true,
}

// String renders the amount the way the till shows it: "$1,234.50" for peso
// and dollar, "EUR 1,234.50" for any other unit.
// Rounding to two fraction digits happens only here.
func (m Money) String() string {
	f, _ := m.Amount.Round(2).Float64()

	sign := ""
	if f < 0 {
		sign, f = "-", -f
	}

	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = DefaultCurrency
	}

	if dollarSign[unit] {
		return displayPrinter.Sprintf("%s$%.2f", sign, f)
	}
	return displayPrinter.Sprintf("%s%s %.2f", sign, unit, f)
}
