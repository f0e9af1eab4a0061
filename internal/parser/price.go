package parser

import (
	"math"
	"strconv"
	"strings"
)

// NoPrice marks a card whose price text could not be parsed. It compares
// larger than any real price, so such candidates are never picked as cheapest.
var NoPrice = math.Inf(1)

// ParsePrice extracts the numeric value from raw price text such as
// "199 ₽" or "1 234,50 ₽". It never fails: empty or unparseable input
// yields NoPrice.
func ParsePrice(text string) float64 {
	if text == "" {
		return NoPrice
	}

	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), ",", ".")

	// More than one period means thousands grouping: keep only the last
	// one as the decimal point (1.234.50 -> 1234.50).
	if parts := strings.Split(cleaned, "."); len(parts) > 2 {
		cleaned = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return NoPrice
	}
	return value
}

// HasPrice reports whether a parsed price is a real, finite value.
func HasPrice(price float64) bool {
	return !math.IsInf(price, 1)
}
