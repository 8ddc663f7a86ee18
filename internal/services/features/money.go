package features

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// moneyPattern matches a currency marker (symbol or code) adjacent to a
// number with an optional magnitude suffix, e.g. "usd 200 million",
// "$3.2m", "s$85 million", "hk$1.2b". Input is normalized lowercase text.
var moneyPattern = regexp.MustCompile(
	`(?:(us\$|a\$|s\$|hk\$|nz\$|c\$|\$|€|£|¥)|\b(usd|aud|sgd|hkd|nzd|cad|eur|gbp|jpy|cny|rmb|chf|inr|krw|twd|myr|idr|thb|php|vnd)\b)\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(k\b|m\b|b\b|bn\b|mn\b|thousand\b|million\b|billion\b)?`)

// symbolCurrencies maps currency symbols to ISO codes. A bare "$" is read
// as USD; regional dollar symbols carry their own prefix.
var symbolCurrencies = map[string]string{
	"$":   "USD",
	"us$": "USD",
	"a$":  "AUD",
	"s$":  "SGD",
	"hk$": "HKD",
	"nz$": "NZD",
	"c$":  "CAD",
	"€":   "EUR",
	"£":   "GBP",
	"¥":   "JPY",
}

// codeAliases maps non-ISO currency spellings to ISO codes.
var codeAliases = map[string]string{
	"rmb": "CNY",
}

var magnitudes = map[string]float64{
	"k":        1e3,
	"thousand": 1e3,
	"m":        1e6,
	"mn":       1e6,
	"million":  1e6,
	"b":        1e9,
	"bn":       1e9,
	"billion":  1e9,
}

// extractAmounts scans normalized text for monetary figures and converts
// each to a canonical USD-equivalent when the currency appears in the rate
// table. Unknown currencies degrade to an unnormalized amount rather than
// an error. Results keep document order.
func extractAmounts(normalized string, rates map[string]float64) []models.MonetaryAmount {
	matches := moneyPattern.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return nil
	}

	amounts := make([]models.MonetaryAmount, 0, len(matches))
	for _, m := range matches {
		currency := resolveCurrency(m[1], m[2])
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
		if err != nil {
			continue
		}

		if suffix := strings.TrimSpace(m[4]); suffix != "" {
			if mult, ok := magnitudes[suffix]; ok {
				value *= mult
			}
		}

		amount := models.MonetaryAmount{Value: value, Currency: currency}
		if rate, ok := rates[currency]; ok {
			amount.USD = value * rate
			amount.Normalized = true
		}
		amounts = append(amounts, amount)
	}

	return amounts
}

func resolveCurrency(symbol, code string) string {
	if symbol != "" {
		if iso, ok := symbolCurrencies[symbol]; ok {
			return iso
		}
		return symbol
	}
	if iso, ok := codeAliases[code]; ok {
		return iso
	}
	return strings.ToUpper(code)
}
