package numfmt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidInput marks a NaN value, a negative decimal count or an empty mask argument.
var ErrInvalidInput = errors.New("numfmt: invalid input")

// ErrUnsupportedLocale indicates that no locale config is registered for a code.
var ErrUnsupportedLocale = errors.New("numfmt: unsupported locale")

// ErrUnsupportedCurrency indicates that a locale has no entry for a currency code.
var ErrUnsupportedCurrency = errors.New("numfmt: unsupported currency")

// ErrUnsupportedMask indicates that a locale has no mask with the requested name.
var ErrUnsupportedMask = errors.New("numfmt: unsupported mask")

// ErrInvalidLocaleConfig is returned when a locale config fails validation on register.
var ErrInvalidLocaleConfig = errors.New("numfmt: invalid locale config")

const (
	textCodeInvalidInput        = "NUMFMT_INVALID_INPUT"
	textCodeUnsupportedLocale   = "NUMFMT_UNSUPPORTED_LOCALE"
	textCodeUnsupportedCurrency = "NUMFMT_UNSUPPORTED_CURRENCY"
	textCodeUnsupportedMask     = "NUMFMT_UNSUPPORTED_MASK"
	textCodeInvalidLocaleConfig = "NUMFMT_INVALID_LOCALE_CONFIG"
)

func invalidInput(format string, args ...any) error {
	return goerrors.Wrap(ErrInvalidInput, goerrors.CategoryBadInput, fmt.Sprintf(format, args...)).
		WithTextCode(textCodeInvalidInput)
}

func unsupportedLocale(code string, known []string) error {
	return goerrors.Wrap(ErrUnsupportedLocale, goerrors.CategoryNotFound,
		fmt.Sprintf("locale %q is not registered (available: %s)", code, listOptions(known))).
		WithTextCode(textCodeUnsupportedLocale).
		WithMetadata(map[string]any{"locale": code, "available": known})
}

func unsupportedCurrency(locale, code string, known []string) error {
	return goerrors.Wrap(ErrUnsupportedCurrency, goerrors.CategoryNotFound,
		fmt.Sprintf("currency %q is not configured for locale %q (available: %s)", code, locale, listOptions(known))).
		WithTextCode(textCodeUnsupportedCurrency).
		WithMetadata(map[string]any{"locale": locale, "currency": code, "available": known})
}

func unsupportedMask(locale, name string, known []string) error {
	return goerrors.Wrap(ErrUnsupportedMask, goerrors.CategoryNotFound,
		fmt.Sprintf("mask %q is not configured for locale %q (available: %s)", name, locale, listOptions(known))).
		WithTextCode(textCodeUnsupportedMask).
		WithMetadata(map[string]any{"locale": locale, "mask": name, "available": known})
}

func invalidLocaleConfig(code string, cause error) error {
	msg := fmt.Sprintf("locale %q failed validation", code)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return goerrors.Wrap(ErrInvalidLocaleConfig, goerrors.CategoryValidation, msg).
		WithTextCode(textCodeInvalidLocaleConfig)
}

func listOptions(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
