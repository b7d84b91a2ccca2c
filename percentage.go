package numfmt

// PercentOptions control FormatPercentage. Start from PercentDefaults.
type PercentOptions struct {
	// Multiply treats the input as a ratio (0.5 is 50%).
	Multiply   bool
	Decimals   int
	StripZeros bool
	// AddSpace puts a space before "%"; nil uses the locale default.
	AddSpace *bool
	Mode     RoundingMode
}

// PercentDefaults returns ratio input with two decimals.
func PercentDefaults() PercentOptions {
	return PercentOptions{Multiply: true, Decimals: 2, Mode: RoundHalfUp}
}

// FormatPercentage renders v followed by a percent sign.
func (e *Engine) FormatPercentage(v Value, locale string, opts PercentOptions) (string, error) {
	cfg, err := e.locale(locale)
	if err != nil {
		return "", err
	}
	return formatPercentage(v, cfg, opts)
}

func formatPercentage(v Value, cfg *LocaleConfig, opts PercentOptions) (string, error) {
	if v.IsNaN() {
		return "", invalidInput("cannot format NaN as a percentage")
	}
	f := v.Float64()
	if opts.Multiply {
		f *= 100
	}
	rounded, err := RoundFloat(f, opts.Decimals, opts.Mode)
	if err != nil {
		return "", err
	}
	number := formatFloat(rounded, opts.Decimals, cfg, opts.StripZeros)

	space := cfg.PercentSpace
	if opts.AddSpace != nil {
		space = *opts.AddSpace
	}
	if space {
		return number + " %", nil
	}
	return number + "%", nil
}
