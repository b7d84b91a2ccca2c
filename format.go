package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// formatValue renders v with exactly decimals fraction digits (or fewer when
// stripZeros is set) using the separators of cfg. It does not round; callers
// pass values that already went through Round.
func formatValue(v Value, decimals int, cfg *LocaleConfig, stripZeros bool) (string, error) {
	if v.IsNaN() {
		return "", invalidInput("cannot format NaN")
	}
	if decimals < 0 || decimals > maxDecimals {
		return "", invalidInput("decimals must be between 0 and %d, got %d", maxDecimals, decimals)
	}
	if v.Kind() == KindIntegral {
		b, _ := v.Big()
		negative := b.Sign() < 0
		digits := strings.TrimPrefix(b.String(), "-")
		return affixSign(negative, groupDigits(digits, cfg.Group)), nil
	}
	return formatFloat(v.f, decimals, cfg, stripZeros), nil
}

func formatFloat(f float64, decimals int, cfg *LocaleConfig, stripZeros bool) string {
	if math.IsInf(f, 0) {
		return affixSign(f < 0, "∞")
	}

	fixed := strconv.FormatFloat(math.Abs(f), 'f', decimals, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if stripZeros {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	out := groupDigits(intPart, cfg.Group)
	if fracPart != "" {
		out += cfg.Decimal + fracPart
	}
	return affixSign(f < 0 && hasNonZeroDigit(intPart+fracPart), out)
}

// groupDigits inserts sep between every three digits, counting from the right.
func groupDigits(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func affixSign(negative bool, s string) string {
	if negative {
		return "-" + s
	}
	return s
}

func hasNonZeroDigit(s string) bool {
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return true
		}
	}
	return false
}
