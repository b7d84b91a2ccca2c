package numfmt

import (
	"fmt"
	"reflect"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey names the map key or struct field holding the locale in
	// template data. Defaults to "Locale".
	LocaleKey string
	// Decimals overrides the engine default for num_format.
	Decimals *int
}

// TemplateHelpers exposes the engine to html/template and text/template.
// Every helper takes the template data first so the locale travels with it:
//
//	{{ num_currency . .Total "USD" }}
func (e *Engine) TemplateHelpers(cfg HelperConfig) map[string]any {
	base := func(data any) FormatOptions {
		opts := e.Options()
		opts.Locale = extractLocale(data, cfg.LocaleKey, e.defaultLocale)
		if cfg.Decimals != nil {
			opts.Decimals = *cfg.Decimals
		}
		return opts
	}

	return map[string]any{
		"num_format": func(data any, value any, decimals ...int) (string, error) {
			opts := base(data)
			if len(decimals) > 0 {
				opts.Decimals = decimals[0]
			}
			return e.BeautifyAny(value, opts)
		},

		"num_abbrev": func(data any, value any) (string, error) {
			opts := base(data)
			opts.Abbreviated = true
			return e.BeautifyAny(value, opts)
		},

		"num_currency": func(data any, value any, code string) (string, error) {
			opts := base(data)
			opts.Currency = code
			return e.BeautifyAny(value, opts)
		},

		"num_bytes": func(data any, value any) (string, error) {
			opts := base(data)
			opts.Bytes = true
			return e.BeautifyAny(value, opts)
		},

		"num_percent": func(data any, value any) (string, error) {
			opts := base(data)
			opts.Percentage = true
			return e.BeautifyAny(value, opts)
		},

		"num_mask": func(data any, value any, mask string) (string, error) {
			opts := base(data)
			opts.Mask = mask
			return e.BeautifyAny(value, opts)
		},

		"num_speech": func(data any, text any) (string, error) {
			return e.ToSpeech(fmt.Sprint(text), extractLocale(data, cfg.LocaleKey, e.defaultLocale))
		},

		"num_parse": func(data any, text string) float64 {
			return e.Parse(text, extractLocale(data, cfg.LocaleKey, e.defaultLocale))
		},
	}
}

// extractLocale extracts the locale from template data using the configured key
// This function handles both map[string]any and struct types (like PageData)
func extractLocale(data any, localeKey, fallback string) string {
	if data == nil {
		return fallback
	}

	if localeKey == "" {
		localeKey = "Locale"
	}

	// Handle string directly
	if str, ok := data.(string); ok {
		return str
	}

	switch d := data.(type) {
	case map[string]any:
		if v, ok := d[localeKey]; ok {
			if str, ok := v.(string); ok {
				return str
			}
		}
	case map[string]string:
		if v, ok := d[localeKey]; ok {
			return v
		}
	}

	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return fallback
		}
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		field := value.FieldByName(localeKey)
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	}

	return fallback
}
