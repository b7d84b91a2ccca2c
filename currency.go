package numfmt

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

// CurrencyOptions control FormatCurrency. Start from CurrencyDefaults; the zero
// value renders no symbol and no decimals.
type CurrencyOptions struct {
	Code       string
	Decimals   int
	ShowSymbol bool
	ShowCode   bool
	StripZeros bool
	Mode       RoundingMode
}

// CurrencyDefaults returns two decimals with the symbol shown.
func CurrencyDefaults(code string) CurrencyOptions {
	return CurrencyOptions{
		Code:       code,
		Decimals:   2,
		ShowSymbol: true,
		Mode:       RoundHalfUp,
	}
}

// FormatCurrency renders v as an amount of opts.Code in locale.
//
// A currency the locale does not configure is an error while the symbol is
// requested. With only ShowCode set any ISO 4217 code is accepted.
func (e *Engine) FormatCurrency(v Value, locale string, opts CurrencyOptions) (string, error) {
	cfg, err := e.locale(locale)
	if err != nil {
		return "", err
	}
	return formatCurrency(v, cfg, opts)
}

func formatCurrency(v Value, cfg *LocaleConfig, opts CurrencyOptions) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(opts.Code))
	cur, known := cfg.Currency(code)
	if !known {
		switch {
		case opts.ShowSymbol:
			return "", unsupportedCurrency(cfg.Code, code, sortedKeys(cfg.Currencies))
		case opts.ShowCode:
			if _, err := currency.ParseISO(code); err != nil {
				return "", unsupportedCurrency(cfg.Code, code, sortedKeys(cfg.Currencies))
			}
		}
	}

	rounded, err := Round(v, opts.Decimals, opts.Mode)
	if err != nil {
		return "", err
	}
	number, err := formatValue(rounded.Abs(), opts.Decimals, cfg, opts.StripZeros)
	if err != nil {
		return "", err
	}

	var out string
	switch {
	case opts.ShowCode:
		out = code + " " + number
	case opts.ShowSymbol && cur.Position == PositionAfter:
		out = number + " " + cur.Symbol
	case opts.ShowSymbol:
		out = cur.Symbol + symbolGap(cur.Symbol) + number
	default:
		out = number
	}

	return affixSign(rounded.Sign() < 0 && hasNonZeroDigit(number), out), nil
}

// symbolGap is the separator between a leading symbol and the number: none
// for single-rune symbols like "$" or "£", a space for "R$" or "CHF".
func symbolGap(symbol string) string {
	if utf8.RuneCountInString(symbol) == 1 {
		return ""
	}
	return " "
}
