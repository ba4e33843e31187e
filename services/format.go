package services

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol is printed in front of every amount unless configured otherwise.
const DefaultCurrencySymbol = "$"

// proposalDateLayout is the MM/DD/YYYY layout used on printed documents.
const proposalDateLayout = "01/02/2006"

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// CurrencyFormatter renders amounts as "<symbol> 1,234.50".
type CurrencyFormatter struct {
	Symbol string
}

// Format groups the integer part with en-US thousands separators and always
// prints exactly two fraction digits. Rounding follows the float formatter
// of x/text (nearest, ties resolved on the binary value like strconv).
func (f CurrencyFormatter) Format(amount float64) string {
	symbol := f.Symbol
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return symbol + " " + amountPrinter.Sprintf("%.2f", amount)
}

// FormatCurrency formats an amount with the default "$ " prefix.
// Example: 1234.5 → "$ 1,234.50".
func FormatCurrency(amount float64) string {
	return CurrencyFormatter{}.Format(amount)
}

// formatQuantity prints a whole-number quantity without grouping.
func formatQuantity(qty int) string {
	return strconv.Itoa(qty)
}

// formatProposalDate prints t as MM/DD/YYYY.
func formatProposalDate(t time.Time) string {
	return t.Format(proposalDateLayout)
}

// normalizeDate converts an HTML date input value (YYYY-MM-DD) to MM/DD/YYYY.
// Anything else is returned unchanged.
func normalizeDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return formatProposalDate(t)
}
