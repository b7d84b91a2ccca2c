package numfmt

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FormatOptions select one rendering of a value. Currency wins over Mask,
// Mask over Bytes, Bytes over Percentage; with none of them set the value is
// rounded, formatted and optionally abbreviated.
type FormatOptions struct {
	Locale      string       `json:"locale,omitempty"`
	Decimals    int          `json:"decimals"`
	StripZeros  bool         `json:"stripZeros,omitempty"`
	Mode        RoundingMode `json:"mode,omitempty"`
	Abbreviated bool         `json:"abbreviated,omitempty"`

	Currency   string `json:"currency,omitempty"`
	ShowSymbol bool   `json:"showSymbol,omitempty"`
	ShowCode   bool   `json:"showCode,omitempty"`

	// Mask is a mask name registered for the locale, or a literal pattern
	// when it contains '#'.
	Mask string `json:"mask,omitempty"`

	Bytes    bool `json:"bytes,omitempty"`
	Binary   bool `json:"binary,omitempty"`
	LongForm bool `json:"longForm,omitempty"`

	Percentage bool  `json:"percentage,omitempty"`
	Multiply   bool  `json:"multiply,omitempty"`
	AddSpace   *bool `json:"addSpace,omitempty"`
}

// DefaultFormatOptions returns en-US, two decimals, HALF_UP, the currency
// symbol shown, binary byte units and ratio percentages.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Locale:     "en-US",
		Decimals:   2,
		Mode:       RoundHalfUp,
		ShowSymbol: true,
		Binary:     true,
		Multiply:   true,
	}
}

// Validate checks option ranges.
func (o FormatOptions) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Decimals, validation.Min(0), validation.Max(maxDecimals)),
		validation.Field(&o.Mode, validation.By(func(value any) error {
			mode, _ := value.(RoundingMode)
			if mode == "" || mode.Valid() {
				return nil
			}
			_, err := ParseRoundingMode(string(mode))
			return err
		})),
		validation.Field(&o.Currency, validation.Length(0, 3)),
	)
	if err != nil {
		return invalidInput("format options: %v", err)
	}
	return nil
}

func (o FormatOptions) currencyOptions() CurrencyOptions {
	return CurrencyOptions{
		Code:       o.Currency,
		Decimals:   o.Decimals,
		ShowSymbol: o.ShowSymbol,
		ShowCode:   o.ShowCode,
		StripZeros: o.StripZeros,
		Mode:       o.Mode,
	}
}

func (o FormatOptions) bytesOptions() BytesOptions {
	return BytesOptions{
		Binary:     o.Binary,
		Decimals:   o.Decimals,
		StripZeros: o.StripZeros,
		LongForm:   o.LongForm,
		Mode:       o.Mode,
	}
}

func (o FormatOptions) percentOptions() PercentOptions {
	return PercentOptions{
		Multiply:   o.Multiply,
		Decimals:   o.Decimals,
		StripZeros: o.StripZeros,
		AddSpace:   o.AddSpace,
		Mode:       o.Mode,
	}
}

// renderKind names the branch of render that produced a string.
type renderKind int

const (
	renderNumber renderKind = iota
	renderCurrency
	renderMask
	renderBytes
	renderPercentage
)

// Beautify renders v according to opts.
func (e *Engine) Beautify(v Value, opts FormatOptions) (string, error) {
	ctx := &HookContext{
		Operation: OperationBeautify,
		Locale:    opts.Locale,
		Value:     v,
		Options:   opts,
	}
	e.before(ctx)

	result, _, err := e.render(ctx.Value, ctx.Options)
	ctx.Result = result
	ctx.Error = err

	e.after(ctx)
	return ctx.Result, ctx.Error
}

// BeautifyAny converts v with ValueOf and renders it.
func (e *Engine) BeautifyAny(v any, opts FormatOptions) (string, error) {
	value, err := ValueOf(v)
	if err != nil {
		return "", err
	}
	return e.Beautify(value, opts)
}

func (e *Engine) render(v Value, opts FormatOptions) (string, renderKind, error) {
	if err := opts.Validate(); err != nil {
		return "", renderNumber, err
	}
	cfg, err := e.locale(opts.Locale)
	if err != nil {
		return "", renderNumber, err
	}
	if v.IsNaN() {
		return "", renderNumber, invalidInput("cannot format NaN")
	}

	switch {
	case strings.TrimSpace(opts.Currency) != "":
		out, err := formatCurrency(v, cfg, opts.currencyOptions())
		return out, renderCurrency, err
	case strings.TrimSpace(opts.Mask) != "":
		pattern, err := lookupMask(cfg, opts.Mask)
		if err != nil {
			return "", renderMask, err
		}
		out, err := ApplyMask(maskDigits(v), pattern)
		return out, renderMask, err
	case opts.Bytes:
		out, err := formatBytes(v, cfg, opts.bytesOptions())
		return out, renderBytes, err
	case opts.Percentage:
		out, err := formatPercentage(v, cfg, opts.percentOptions())
		return out, renderPercentage, err
	}

	rounded, err := Round(v, opts.Decimals, opts.Mode)
	if err != nil {
		return "", renderNumber, err
	}
	out, err := formatValue(rounded, opts.Decimals, cfg, opts.StripZeros)
	if err != nil {
		return "", renderNumber, err
	}
	if opts.Abbreviated {
		out = abbreviate(rounded, out, cfg)
	}
	return out, renderNumber, nil
}
