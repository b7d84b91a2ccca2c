package numfmt

// Num is a chainable builder over FormatOptions:
//
//	out, err := engine.Num(numfmt.Float(1234.5)).Locale("pt-BR").Currency("BRL").Format()
//
// Conversion errors from Of are carried to the terminal call.
type Num struct {
	engine *Engine
	value  Value
	opts   FormatOptions
	err    error
}

// Num starts a builder seeded with the engine defaults.
func (e *Engine) Num(v Value) *Num {
	return &Num{engine: e, value: v, opts: e.Options()}
}

// Of starts a builder on the default engine from any numeric value ValueOf accepts.
func Of(v any) *Num {
	value, err := ValueOf(v)
	n := Default().Num(value)
	n.err = err
	return n
}

func (n *Num) Locale(locale string) *Num {
	n.opts.Locale = locale
	return n
}

func (n *Num) Decimals(decimals int) *Num {
	n.opts.Decimals = decimals
	return n
}

func (n *Num) Rounding(mode RoundingMode) *Num {
	n.opts.Mode = mode
	return n
}

func (n *Num) StripZeros() *Num {
	n.opts.StripZeros = true
	return n
}

func (n *Num) Abbreviated() *Num {
	n.opts.Abbreviated = true
	return n
}

// Currency renders the value as money in code, with the symbol shown.
func (n *Num) Currency(code string) *Num {
	n.opts.Currency = code
	return n
}

// ShowCode prints the ISO code in place of the symbol.
func (n *Num) ShowCode() *Num {
	n.opts.ShowCode = true
	return n
}

func (n *Num) HideSymbol() *Num {
	n.opts.ShowSymbol = false
	return n
}

// Mask applies a named mask or a literal '#' pattern.
func (n *Num) Mask(mask string) *Num {
	n.opts.Mask = mask
	return n
}

// Bytes renders a byte size; binary selects KiB-style units.
func (n *Num) Bytes(binary bool) *Num {
	n.opts.Bytes = true
	n.opts.Binary = binary
	return n
}

func (n *Num) LongForm() *Num {
	n.opts.LongForm = true
	return n
}

// Percent renders a percentage; multiply treats the value as a ratio.
func (n *Num) Percent(multiply bool) *Num {
	n.opts.Percentage = true
	n.opts.Multiply = multiply
	return n
}

func (n *Num) PercentSpace(add bool) *Num {
	n.opts.AddSpace = &add
	return n
}

// Options returns a copy of the accumulated options.
func (n *Num) Options() FormatOptions {
	return n.opts
}

func (n *Num) Format() (string, error) {
	if n.err != nil {
		return "", n.err
	}
	return n.engine.Beautify(n.value, n.opts)
}

func (n *Num) Parts() ([]NumberPart, error) {
	if n.err != nil {
		return nil, n.err
	}
	return n.engine.ToParts(n.value, n.opts)
}

// Speech formats the value and speaks the result.
func (n *Num) Speech() (string, error) {
	formatted, err := n.Format()
	if err != nil {
		return "", err
	}
	return n.engine.ToSpeech(formatted, n.opts.Locale)
}

// String returns the formatted value, or an empty string on error.
func (n *Num) String() string {
	out, _ := n.Format()
	return out
}
