// Package numfmt formats numbers for people and reads them back.
//
// An Engine holds a registry of locale configs (separators, currencies,
// masks, abbreviation units and number words) and offers rounding under
// seven modes, grouped formatting, abbreviation ("1.5k", "1,23 mi"),
// currency, byte size and percentage rendering, typed part decomposition,
// spoken words and a lenient parser that inverts all of them.
//
//	engine, err := numfmt.NewEngine(numfmt.WithDefaultLocale("pt-BR"))
//	out, err := engine.Beautify(numfmt.Float(1234.5678), engine.Options())
//	// out == "1.234,57"
package numfmt

// Beautify renders v on the default engine.
func Beautify(v any, opts FormatOptions) (string, error) {
	return Default().BeautifyAny(v, opts)
}

// Parse reads a formatted number on the default engine.
func Parse(text, locale string) float64 {
	return Default().Parse(text, locale)
}

// ToSpeech speaks a formatted number on the default engine.
func ToSpeech(text, locale string) (string, error) {
	return Default().ToSpeech(text, locale)
}
