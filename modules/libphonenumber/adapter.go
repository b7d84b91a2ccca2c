// Package libphonenumber derives phone masks and formats phone numbers with
// the libphonenumber metadata, for locales registered in a numfmt engine.
package libphonenumber

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-numfmt"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
)

const (
	// MaskNational is the mask name for the national format, "(###) ###-####".
	MaskNational = "phone"
	// MaskInternational is the mask name for the international format, "+1 ###-###-####".
	MaskInternational = "phone-intl"
)

type options struct {
	region string
	format phonenumbers.PhoneNumberFormat
	kind   phonenumbers.PhoneNumberType
}

// Option configures the adapter.
type Option func(*options)

// WithRegion forces the ISO 3166-1 alpha-2 region instead of the one in the locale.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = strings.ToUpper(strings.TrimSpace(region))
	}
}

// WithFormat selects the libphonenumber output format of Format (defaults to INTERNATIONAL).
func WithFormat(format phonenumbers.PhoneNumberFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithNumberType selects the example number the masks are derived from
// (defaults to MOBILE).
func WithNumberType(kind phonenumbers.PhoneNumberType) Option {
	return func(o *options) {
		o.kind = kind
	}
}

func buildOptions(opts []Option) options {
	cfg := options{format: phonenumbers.INTERNATIONAL, kind: phonenumbers.MOBILE}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Register adds the phone and phone-intl masks to each locale, replacing
// masks of the same name. Locales the engine cannot resolve are an error.
func Register(engine *numfmt.Engine, locales []string, opts ...Option) error {
	cfg := buildOptions(opts)

	for _, locale := range locales {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			continue
		}

		region := determineRegion(locale, cfg.region)
		if region == "" {
			return fmt.Errorf("libphonenumber: no region for locale %q", locale)
		}
		masks, ok := masksFor(region, cfg.kind)
		if !ok {
			return fmt.Errorf("libphonenumber: no example number for region %s", region)
		}

		if !engine.Registry().Has(locale) {
			if err := engine.LoadLocale(locale); err != nil {
				return err
			}
		}
		localeCfg, err := engine.Registry().Lookup(locale)
		if err != nil {
			return err
		}
		if localeCfg.Masks == nil {
			localeCfg.Masks = make(map[string]string, len(masks))
		}
		for name, mask := range masks {
			localeCfg.Masks[name] = mask
		}
		if err := engine.RegisterLocale(locale, localeCfg); err != nil {
			return err
		}
	}
	return nil
}

// PhoneMasks returns the national and international masks for region.
func PhoneMasks(region string, opts ...Option) (map[string]string, bool) {
	cfg := buildOptions(opts)
	return masksFor(strings.ToUpper(strings.TrimSpace(region)), cfg.kind)
}

func masksFor(region string, kind phonenumbers.PhoneNumberType) (map[string]string, bool) {
	example := phonenumbers.GetExampleNumberForType(region, kind)
	if example == nil {
		example = phonenumbers.GetExampleNumber(region)
	}
	if example == nil {
		return nil, false
	}

	national := phonenumbers.Format(example, phonenumbers.NATIONAL)
	international := phonenumbers.Format(example, phonenumbers.INTERNATIONAL)
	if national == "" || international == "" {
		return nil, false
	}

	// The country calling code stays literal so the mask only takes the
	// national digits.
	prefix := fmt.Sprintf("+%d", example.GetCountryCode())
	rest := strings.TrimPrefix(international, prefix)

	return map[string]string{
		MaskNational:      digitsToPlaceholders(national),
		MaskInternational: prefix + digitsToPlaceholders(rest),
	}, true
}

func digitsToPlaceholders(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '#'
		}
		return r
	}, s)
}

// Format parses raw with the region of locale and renders it with the
// configured format. Input libphonenumber rejects is returned trimmed.
func Format(locale, raw string, opts ...Option) string {
	cfg := buildOptions(opts)

	value := strings.TrimSpace(raw)
	if value == "" {
		return value
	}

	number, err := phonenumbers.Parse(value, determineRegion(locale, cfg.region))
	if err != nil {
		return value
	}
	if !phonenumbers.IsPossibleNumber(number) && !phonenumbers.IsValidNumber(number) {
		return value
	}

	formatted := phonenumbers.Format(number, cfg.format)
	if formatted == "" {
		return value
	}
	return formatted
}

func determineRegion(locale, explicitRegion string) string {
	if explicitRegion != "" {
		return explicitRegion
	}
	return regionFromLocale(locale)
}

func regionFromLocale(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}

	region, confidence := tag.Region()
	if confidence == language.No {
		return ""
	}
	return strings.ToUpper(region.String())
}
