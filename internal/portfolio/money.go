package portfolio

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a currency code is unknown.
const DefaultCurrency = money.USD

func currency(code string) *money.Currency {
	if c := money.GetCurrency(code); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}

// FormatMoney renders v in the given ISO currency, e.g. "$1,234.56" for USD.
func FormatMoney(v float64, code string) string {
	cur := currency(code)
	minor := decimal.NewFromFloat(math.Abs(v)).Shift(int32(cur.Fraction)).Round(0).IntPart()
	s := cur.Formatter().Format(minor)
	if v < 0 && minor != 0 {
		return "-" + s
	}
	return s
}

// FormatSigned is FormatMoney with an explicit sign; zero renders as positive.
func FormatSigned(v float64, code string) string {
	s := FormatMoney(math.Abs(v), code)
	if v < 0 && s != FormatMoney(0, code) {
		return "-" + s
	}
	return "+" + s
}
