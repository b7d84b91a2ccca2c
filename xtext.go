package numfmt

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DeriveSeparators asks the CLDR tables in golang.org/x/text for the group and
// decimal separators of locale. Unknown or malformed codes get "," and ".".
func DeriveSeparators(locale string) (group, decimal string) {
	group, decimal = ",", "."
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return group, decimal
	}

	printer := message.NewPrinter(tag)
	sample := printer.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))

	var separators []string
	var current strings.Builder
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if current.Len() > 0 {
				separators = append(separators, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}

	switch len(separators) {
	case 0:
		return group, decimal
	case 1:
		if separators[0] == group {
			return ".", separators[0]
		}
		return group, separators[0]
	default:
		return separators[0], separators[len(separators)-1]
	}
}
