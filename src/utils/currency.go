package utils

import "strings"

// ReportingCurrency is the single currency all stored prices and aggregates
// are normalized into.
const ReportingCurrency = "INR"

// conversionRates maps a currency code to its factor into the reporting
// currency. Extend by adding entries.
var conversionRates = map[string]float64{
	"USD":             83.5,
	ReportingCurrency: 1,
}

// ConvertToReporting converts an amount from the given currency into the
// reporting currency. Unknown currency codes are treated as already being in
// the reporting currency (factor 1) rather than as an error.
func ConvertToReporting(amount float64, currency string) float64 {
	rate, ok := conversionRates[currency]
	if !ok {
		return amount
	}
	return amount * rate
}

// NormalizeTicker trims and upper-cases a ticker symbol. An empty or all-blank
// input normalizes to the empty string.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
