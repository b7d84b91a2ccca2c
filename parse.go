package numfmt

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads a formatted number back into a float64. It accepts grouping,
// currency symbols and codes, parentheses or a minus for negatives, a percent
// sign, abbreviation units and byte units. Unparseable text yields 0; Parse
// never fails, unknown locales fall back to "," grouping and "." decimals.
func (e *Engine) Parse(text, locale string) float64 {
	ctx := &HookContext{
		Operation: OperationParse,
		Locale:    locale,
		Input:     text,
	}
	e.before(ctx)

	cfg, err := e.locale(ctx.Locale)
	if err != nil {
		e.logger.Debug("parse falls back to neutral separators", "locale", ctx.Locale, "error", err)
		cfg = neutralLocale
	}
	ctx.Number = unbeautify(ctx.Input, cfg)

	e.after(ctx)
	return ctx.Number
}

var neutralLocale = (&LocaleConfig{Code: "und", Group: ",", Decimal: "."}).withDefaults()

var currencyCodePattern = regexp.MustCompile(`(?i)\b[a-z]{3}\b`)

type byteSuffix struct {
	suffix     string
	multiplier float64
}

var byteSuffixes = buildByteSuffixes()

func buildByteSuffixes() []byteSuffix {
	var out []byteSuffix
	for i := 1; i < len(binaryByteUnits); i++ {
		binary := math.Pow(1024, float64(i))
		decimal := math.Pow(1000, float64(i))
		out = append(out,
			byteSuffix{strings.ToLower(binaryByteUnits[i]), binary},
			byteSuffix{strings.ToLower(decimalByteUnits[i]), decimal},
			byteSuffix{strings.ToLower(binaryByteNames[i]), binary},
			byteSuffix{strings.ToLower(strings.TrimSuffix(binaryByteNames[i], "s")), binary},
			byteSuffix{strings.ToLower(decimalByteNames[i]), decimal},
			byteSuffix{strings.ToLower(strings.TrimSuffix(decimalByteNames[i], "s")), decimal},
		)
	}
	out = append(out, byteSuffix{"bytes", 1}, byteSuffix{"byte", 1})
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].suffix) > len(out[j].suffix)
	})
	return out
}

func unbeautify(text string, cfg *LocaleConfig) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}

	percent := false
	if strings.Contains(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.Replace(s, "%", "", 1))
	}

	s, negative := stripNegative(s)
	s = strings.TrimSpace(stripCurrencies(s, cfg))
	s, negativeAfterSymbol := stripNegative(s)
	negative = negative || negativeAfterSymbol

	exp10 := 0
	multiplier := 1.0
	if rest, m, ok := trimByteSuffix(s); ok {
		s, multiplier = rest, m
	} else if rest, ok := trimPlainByteSuffix(s); ok {
		s = rest
	} else if rest, order, ok := trimUnitSuffix(s, cfg); ok {
		s, exp10 = rest, 3*order
	} else if rest, order, ok := trimGenericSuffix(s, cfg); ok {
		s, exp10 = rest, 3*order
	}

	intDigits, fracDigits := splitNumber(s, cfg)
	if intDigits == "" && fracDigits == "" {
		return 0
	}
	if percent {
		exp10 -= 2
	}

	literal := intDigits
	if literal == "" {
		literal = "0"
	}
	if fracDigits != "" {
		literal += "." + fracDigits
	}
	if exp10 != 0 {
		literal += "e" + strconv.Itoa(exp10)
	}
	result, err := strconv.ParseFloat(literal, 64)
	if err != nil && !math.IsInf(result, 0) {
		return 0
	}

	result *= multiplier
	if negative {
		result = -result
	}
	return result
}

// stripCurrencies removes configured symbols (longest first) and any
// configured ISO code standing as a word.
func stripCurrencies(s string, cfg *LocaleConfig) string {
	for _, c := range currenciesBySymbolLength(cfg) {
		if c.config.Symbol != "" {
			s = strings.ReplaceAll(s, c.config.Symbol, "")
		}
	}
	return currencyCodePattern.ReplaceAllStringFunc(s, func(word string) string {
		if _, ok := cfg.Currency(word); ok {
			return ""
		}
		return word
	})
}

func trimByteSuffix(s string) (string, float64, bool) {
	lower := strings.ToLower(s)
	for _, b := range byteSuffixes {
		if !strings.HasSuffix(lower, b.suffix) {
			continue
		}
		head := strings.TrimSpace(s[:len(s)-len(b.suffix)])
		if endsWithDigit(head) {
			return head, b.multiplier, true
		}
	}
	return s, 1, false
}

// trimPlainByteSuffix accepts the "512.00 B" rendering of FormatBytes. The
// space separates it from the compact "1.2B" billion form.
func trimPlainByteSuffix(s string) (string, bool) {
	head, ok := strings.CutSuffix(s, "B")
	if !ok || head == "" {
		return s, false
	}
	prev, _ := utf8.DecodeLastRuneInString(head)
	if !unicode.IsSpace(prev) {
		return s, false
	}
	head = strings.TrimSpace(head)
	if !endsWithDigit(head) {
		return s, false
	}
	return head, true
}

func trimUnitSuffix(s string, cfg *LocaleConfig) (string, int, bool) {
	lower := strings.ToLower(s)
	for _, label := range unitLabelsLongestFirst(cfg) {
		suffix := strings.ToLower(label.text)
		if !strings.HasSuffix(lower, suffix) {
			continue
		}
		head := strings.TrimSpace(s[:len(s)-len(suffix)])
		if endsWithDigit(head) {
			return head, label.order, true
		}
	}
	return s, 0, false
}

// trimGenericSuffix accepts a lone k/M/B/T after a digit or a space.
func trimGenericSuffix(s string, cfg *LocaleConfig) (string, int, bool) {
	r, size := utf8.DecodeLastRuneInString(s)
	order, ok := genericUnitOrders[strings.ToLower(string(r))]
	if !ok || size == len(s) {
		return s, 0, false
	}
	head := s[:len(s)-size]
	prev, _ := utf8.DecodeLastRuneInString(head)
	if !unicode.IsDigit(prev) && !unicode.IsSpace(prev) {
		return s, 0, false
	}
	if strings.HasSuffix(head, cfg.Decimal) {
		return s, 0, false
	}
	return strings.TrimSpace(head), order, true
}

// splitNumber separates integer and fraction digits. Whitespace and
// apostrophes always group. The locale decimal, when present, is the decimal
// point at its last occurrence; mixed separators make the last one decimal; a
// lone foreign separator is decimal unless exactly three digits follow it.
func splitNumber(s string, cfg *LocaleConfig) (string, string) {
	type sep struct {
		text string
		at   int
	}
	var (
		body strings.Builder
		seps []sep
	)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			body.WriteRune(r)
		case unicode.IsSpace(r), r == '\'', r == '’':
			// grouping only
		case r == '.', r == ',', string(r) == cfg.Decimal, string(r) == cfg.Group:
			seps = append(seps, sep{text: string(r), at: body.Len()})
		}
	}
	digits := body.String()
	if len(seps) == 0 {
		return digits, ""
	}

	last := seps[len(seps)-1]
	mixed := false
	for _, sp := range seps[:len(seps)-1] {
		if sp.text != last.text {
			mixed = true
			break
		}
	}

	decimalAt := -1
	switch {
	case last.text == cfg.Decimal:
		decimalAt = last.at
	case mixed:
		decimalAt = last.at
	default:
		if len(seps) == 1 && len(digits)-last.at != 3 {
			decimalAt = last.at
		}
	}

	if decimalAt < 0 {
		return digits, ""
	}
	return digits[:decimalAt], digits[decimalAt:]
}
