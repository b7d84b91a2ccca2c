package numfmt

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToSpeech turns a formatted number ("R$ 12M", "-2,5 mi", "$1.5k") into words
// using the speech rules of locale. Text without digits is returned trimmed
// and unchanged.
func (e *Engine) ToSpeech(text, locale string) (string, error) {
	ctx := &HookContext{
		Operation: OperationSpeech,
		Locale:    locale,
		Input:     text,
	}
	e.before(ctx)

	cfg, err := e.locale(ctx.Locale)
	if err == nil {
		ctx.Result = speak(ctx.Input, cfg)
	}
	ctx.Error = err

	e.after(ctx)
	return ctx.Result, ctx.Error
}

func speak(text string, cfg *LocaleConfig) string {
	raw := strings.TrimSpace(text)
	rules := cfg.speechRules()

	raw, negative := stripNegative(raw)

	code, raw := detectCurrency(raw, cfg)
	raw, negativeAfterSymbol := stripNegative(raw)
	negative = negative || negativeAfterSymbol

	order, hasUnit := detectUnitAbbreviation(raw, cfg)

	intDigits, fracDigits, ok := normalizeNumberText(raw, cfg.Decimal)
	if !ok {
		return strings.TrimSpace(text)
	}
	intDigits = strings.TrimLeft(intDigits, "0")
	intIsOne := intDigits == "1"

	var words []string
	words = append(words, integerWords(intDigits, rules, cfg.OmitLeadingOne))
	if fracDigits != "" {
		words = append(words, rules.Point, digitWords(fracDigits, rules))
	}
	if hasUnit && order < len(rules.Scales) && (intDigits != "" || hasNonZeroDigit(fracDigits)) {
		if scale := rules.Scales[order].Label(fracDigits == "" && intIsOne); scale != "" {
			words = append(words, scale)
		}
	}
	spoken := strings.Join(words, " ")

	if label, ok := rules.Currency[code]; ok && code != "" {
		plural := hasNonZeroDigit(fracDigits) || !intIsOne
		joiner := " "
		if rules.CurrencyJoiner != "" && endsOnLargeScale(intDigits, order, hasUnit) {
			joiner = rules.CurrencyJoiner
		}
		spoken += joiner + label.Label(!plural)
	}

	if negative {
		spoken = rules.Minus + " " + spoken
	}
	return spoken
}

// stripNegative removes a leading minus sign or wrapping parentheses.
func stripNegative(s string) (string, bool) {
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
		negative = true
	}
	for _, minus := range []string{"-", "−"} {
		if strings.HasPrefix(s, minus) {
			return strings.TrimSpace(strings.TrimPrefix(s, minus)), true
		}
	}
	return s, negative
}

// detectCurrency finds a configured symbol at the side its position names and
// returns the currency code with the symbol removed from s.
func detectCurrency(s string, cfg *LocaleConfig) (string, string) {
	for _, c := range currenciesBySymbolLength(cfg) {
		switch c.config.Position {
		case PositionBefore:
			if strings.HasPrefix(s, c.config.Symbol) {
				return c.code, strings.TrimSpace(strings.TrimPrefix(s, c.config.Symbol))
			}
		case PositionAfter:
			if strings.HasSuffix(s, c.config.Symbol) {
				return c.code, strings.TrimSpace(strings.TrimSuffix(s, c.config.Symbol))
			}
		}
	}
	return "", s
}

type namedCurrency struct {
	code   string
	config CurrencyConfig
}

// currenciesBySymbolLength orders currencies so "US$" is tried before "$".
func currenciesBySymbolLength(cfg *LocaleConfig) []namedCurrency {
	out := make([]namedCurrency, 0, len(cfg.Currencies))
	for _, code := range sortedKeys(cfg.Currencies) {
		out = append(out, namedCurrency{code: code, config: cfg.Currencies[code]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i].config.Symbol) > utf8.RuneCountInString(out[j].config.Symbol)
	})
	return out
}

var genericUnitOrders = map[string]int{"k": 1, "m": 2, "b": 3, "t": 4}

// detectUnitAbbreviation returns the power-of-1000 order of a trailing unit
// label, trying the locale's units from the largest order down and then the
// generic k/m/b/t letters.
func detectUnitAbbreviation(s string, cfg *LocaleConfig) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0, false
	}
	for order := len(cfg.Units) - 1; order >= 1; order-- {
		unit := cfg.Units[order]
		for _, label := range []string{unit.Plural, unit.Singular} {
			label = strings.ToLower(label)
			if label == "" || !strings.HasSuffix(lower, label) {
				continue
			}
			head := strings.TrimSpace(strings.TrimSuffix(lower, label))
			if endsWithDigit(head) {
				return order, true
			}
		}
	}

	end := len(lower)
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(lower[:start])
		if !unicode.IsLetter(r) {
			break
		}
		start -= size
	}
	if order, ok := genericUnitOrders[lower[start:end]]; ok && endsWithDigit(strings.TrimSpace(lower[:start])) {
		return order, true
	}
	return 0, false
}

func endsWithDigit(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r >= '0' && r <= '9'
}

// normalizeNumberText extracts integer and fraction digits from s. The last
// separator is the decimal point unless it is the only separator, differs from
// the locale decimal and is followed by exactly three digits.
func normalizeNumberText(s, decimal string) (intDigits, fracDigits string, ok bool) {
	var cleaned strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			cleaned.WriteRune(r)
		}
	}
	body := strings.Trim(cleaned.String(), ".,")
	if !strings.ContainsAny(body, "0123456789") {
		return "", "", false
	}

	last := strings.LastIndexAny(body, ".,")
	if last < 0 {
		return body, "", true
	}

	separator := body[last : last+1]
	tail := body[last+1:]
	single := strings.Count(body, ".")+strings.Count(body, ",") == 1
	if single && separator != decimal && len(tail) == 3 {
		return stripSeparators(body), "", true
	}
	if !single && !strings.ContainsAny(body[:last], otherSeparator(separator)) && separator != decimal {
		// "1,234,567": a repeated separator that is not the locale decimal groups
		return stripSeparators(body), "", true
	}
	return stripSeparators(body[:last]), tail, true
}

func otherSeparator(sep string) string {
	if sep == "." {
		return ","
	}
	return "."
}

func stripSeparators(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}

// integerWords spells a digit string. OmitLeadingOne drops the "one" before
// the thousands word.
func integerWords(digits string, rules SpeechRules, omitLeadingOne bool) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return smallWord(0, rules)
	}

	// Orders past the scale table have no word to speak.
	if (len(digits)-1)/3 >= max(len(rules.Scales), 1) {
		return digitWords(digits, rules)
	}

	var chunks []int
	for end := len(digits); end > 0; end -= 3 {
		start := end - 3
		if start < 0 {
			start = 0
		}
		n, _ := strconv.Atoi(digits[start:end])
		chunks = append(chunks, n)
	}

	var words []string
	for i := len(chunks) - 1; i >= 0; i-- {
		n := chunks[i]
		if n == 0 {
			continue
		}
		if i == 0 {
			words = append(words, threeDigitWords(n, rules))
			continue
		}
		var scale string
		if i < len(rules.Scales) {
			scale = rules.Scales[i].Label(n == 1)
		}
		switch {
		case scale == "":
			words = append(words, threeDigitWords(n, rules))
		case i == 1 && n == 1 && omitLeadingOne:
			words = append(words, scale)
		default:
			words = append(words, threeDigitWords(n, rules)+" "+scale)
		}
	}
	return strings.Join(words, " ")
}

func threeDigitWords(n int, rules SpeechRules) string {
	switch {
	case n < 20:
		return smallWord(n, rules)
	case n < 100:
		tens, units := n/10, n%10
		tensWord := listWord(rules.Tens, tens)
		if units == 0 {
			return tensWord
		}
		if rules.Grammar.HyphenateTens {
			return tensWord + "-" + smallWord(units, rules)
		}
		return tensWord + rules.Grammar.TensJoiner + smallWord(units, rules)
	case n == 100 && rules.ExactHundred != "":
		return rules.ExactHundred
	}

	hundreds, rest := n/100, n%100
	hundredWord := listWord(rules.Hundreds, hundreds)
	if hundredWord == "" {
		hundredWord = smallWord(hundreds, rules) + " " + rules.Grammar.HundredSuffix
	}
	if rest == 0 {
		return hundredWord
	}
	return hundredWord + rules.Grammar.HundredsJoiner + threeDigitWords(rest, rules)
}

func smallWord(n int, rules SpeechRules) string {
	if word := listWord(rules.Small, n); word != "" {
		return word
	}
	return strconv.Itoa(n)
}

func listWord(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}

// endsOnLargeScale reports whether the spoken amount closes on a million or
// a larger scale word ("doze milhões", "um milhão").
func endsOnLargeScale(intDigits string, order int, hasUnit bool) bool {
	if hasUnit {
		return order >= 2
	}
	return len(intDigits) > 6 && strings.Trim(intDigits[len(intDigits)-6:], "0") == ""
}

// digitWords speaks each digit on its own ("25" is "two five").
func digitWords(digits string, rules SpeechRules) string {
	words := make([]string, 0, len(digits))
	for _, r := range digits {
		words = append(words, smallWord(int(r-'0'), rules))
	}
	return strings.Join(words, " ")
}
