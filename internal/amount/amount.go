package amount

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinels some portal exports use for "no value". They parse to zero like
// any other malformed cell.
var nullTokens = map[string]struct{}{
	"nan": {}, "none": {}, "null": {}, "n/a": {}, "-": {},
}

// ParseAmount parses currency-formatted cell text ("$1,234.50") into a
// number. Any cell that cannot be parsed yields 0 so a single malformed cell
// never aborts a whole batch. No error ever escapes this package.
func ParseAmount(text string) float64 {
	s := clean(text)
	if s == "" {
		return 0
	}
	if _, ok := nullTokens[strings.ToLower(s)]; ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParsePercent parses percent-formatted cell text ("12.5%") into a number,
// with the same zero-on-failure policy as ParseAmount.
func ParsePercent(text string) float64 {
	return ParseAmount(text)
}

func clean(text string) string {
	s := strings.ReplaceAll(text, "\u00A0", " ")
	s = strings.TrimSpace(s)
	for _, cut := range []string{"$", "%", ","} {
		s = strings.ReplaceAll(s, cut, "")
	}
	return strings.TrimSpace(s)
}

// Round2 rounds a monetary value to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercent renders a discount percentage the way the upload schema
// expects it: nearest whole percent with a trailing marker.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}
