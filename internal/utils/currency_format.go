package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders amount as US dollars with two decimals and digit
// grouping. Example: 1234.5 returns "$1,234.50", -3 returns "-$3.00".
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	f, _ := amount.Round(2).Float64()
	return sign + "$" + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// FormatNumber renders n with digit grouping. Example: 1234567 returns "1,234,567".
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
