package cli

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// Money formats an amount in rupees with thousands separators.
// Whole amounts drop the paisa.
func Money(amount float64) string {
	if amount == math.Trunc(amount) {
		return moneyPrinter.Sprintf("Rs %d", int64(amount))
	}
	return moneyPrinter.Sprintf("Rs %.2f", amount)
}
