package numfmt

import (
	"strconv"
	"strings"
	"unicode"
)

const maskPlaceholder = '#'

// ApplyMask lays the digits of value over pattern. Every '#' consumes the next
// digit and every other rune is copied as is; output stops at the first '#'
// left without a digit. Non-digit runes in value are ignored.
func ApplyMask(value, pattern string) (string, error) {
	if strings.TrimSpace(value) == "" || pattern == "" {
		return "", invalidInput("mask needs a value and a pattern")
	}

	digits := make([]rune, 0, len(value))
	for _, r := range value {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	var b strings.Builder
	next := 0
	for _, r := range pattern {
		if r != maskPlaceholder {
			b.WriteRune(r)
			continue
		}
		if next >= len(digits) {
			break
		}
		b.WriteRune(digits[next])
		next++
	}
	return b.String(), nil
}

// Mask returns the named pattern registered for locale. The error lists the
// masks the locale does have.
func (e *Engine) Mask(locale, name string) (string, error) {
	cfg, err := e.locale(locale)
	if err != nil {
		return "", err
	}
	return lookupMask(cfg, name)
}

func lookupMask(cfg *LocaleConfig, name string) (string, error) {
	if strings.ContainsRune(name, maskPlaceholder) {
		return name, nil
	}
	pattern, ok := cfg.Masks[strings.TrimSpace(name)]
	if !ok {
		return "", unsupportedMask(cfg.Code, name, sortedKeys(cfg.Masks))
	}
	return pattern, nil
}

// maskDigits is the digit string a Value contributes to a mask.
func maskDigits(v Value) string {
	if v.Kind() == KindIntegral {
		return strings.TrimPrefix(v.String(), "-")
	}
	return strconv.FormatFloat(v.Abs().Float64(), 'f', -1, 64)
}
