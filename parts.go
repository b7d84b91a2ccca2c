package numfmt

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToParts renders v like Beautify and splits the result into typed parts.
// Joining the Text of every part reproduces the Beautify output exactly.
func (e *Engine) ToParts(v Value, opts FormatOptions) ([]NumberPart, error) {
	ctx := &HookContext{
		Operation: OperationParts,
		Locale:    opts.Locale,
		Value:     v,
		Options:   opts,
	}
	e.before(ctx)

	formatted, kind, err := e.render(ctx.Value, ctx.Options)
	if err == nil {
		var cfg *LocaleConfig
		cfg, err = e.locale(ctx.Options.Locale)
		if err == nil {
			ctx.Result = formatted
			ctx.Parts = tokenize(formatted, cfg, kind, ctx.Options)
		}
	}
	ctx.Error = err

	e.after(ctx)
	if ctx.Error != nil {
		return nil, ctx.Error
	}
	return ctx.Parts, nil
}

var byteUnitPattern = regexp.MustCompile(`^(?:(?:Kibi|Mebi|Gibi|Tebi|Pebi|Exbi|Kilo|Mega|Giga|Tera|Peta|Exa)bytes?|Bytes?|[KMGTPE]i?B|B)`)

var genericUnitPattern = regexp.MustCompile(`^[kKmMbBtT]`)

type partScanner struct {
	rest  string
	parts []NumberPart
}

func (s *partScanner) emit(kind PartKind, text string) {
	if text == "" {
		return
	}
	// merge adjacent literals
	if n := len(s.parts); n > 0 && kind == PartLiteral && s.parts[n-1].Kind == PartLiteral {
		s.parts[n-1].Text += text
		s.rest = s.rest[len(text):]
		return
	}
	s.parts = append(s.parts, NumberPart{Kind: kind, Text: text})
	s.rest = s.rest[len(text):]
}

func (s *partScanner) consumePrefix(kind PartKind, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(s.rest, prefix) {
		return false
	}
	s.emit(kind, prefix)
	return true
}

func (s *partScanner) space() {
	end := 0
	for end < len(s.rest) {
		r, size := utf8.DecodeRuneInString(s.rest[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	s.emit(PartLiteral, s.rest[:end])
}

func (s *partScanner) digits(kind PartKind) bool {
	end := 0
	for end < len(s.rest) && s.rest[end] >= '0' && s.rest[end] <= '9' {
		end++
	}
	s.emit(kind, s.rest[:end])
	return end > 0
}

// startsWithDigitAfter reports whether rest continues with a digit right after prefix.
func (s *partScanner) startsWithDigitAfter(prefix string) bool {
	if prefix == "" || !strings.HasPrefix(s.rest, prefix) || len(s.rest) == len(prefix) {
		return false
	}
	c := s.rest[len(prefix)]
	return c >= '0' && c <= '9'
}

func (s *partScanner) number(cfg *LocaleConfig) {
	if !s.digits(PartInteger) {
		s.consumePrefix(PartLiteral, "∞")
		return
	}
	for s.startsWithDigitAfter(cfg.Group) {
		s.emit(PartGroupSeparator, cfg.Group)
		s.digits(PartInteger)
	}
	if s.startsWithDigitAfter(cfg.Decimal) {
		s.emit(PartDecimalSeparator, cfg.Decimal)
		s.digits(PartFraction)
	}
}

func (s *partScanner) currency(cfg *LocaleConfig, opts FormatOptions) bool {
	code := strings.ToUpper(strings.TrimSpace(opts.Currency))
	if opts.ShowCode && s.consumePrefix(PartCurrency, code) {
		return true
	}
	if cur, ok := cfg.Currency(code); ok && opts.ShowSymbol {
		return s.consumePrefix(PartCurrency, cur.Symbol)
	}
	return false
}

func (s *partScanner) unit(cfg *LocaleConfig, kind renderKind) {
	if kind == renderBytes {
		if m := byteUnitPattern.FindString(s.rest); m != "" {
			s.emit(PartUnit, m)
		}
		return
	}
	for _, label := range unitLabelsLongestFirst(cfg) {
		if s.consumePrefix(PartUnit, label.text) {
			return
		}
	}
	if m := genericUnitPattern.FindString(s.rest); m != "" {
		s.emit(PartUnit, m)
	}
}

func tokenize(formatted string, cfg *LocaleConfig, kind renderKind, opts FormatOptions) []NumberPart {
	s := &partScanner{rest: formatted}

	if kind == renderMask {
		for s.rest != "" {
			if !s.digits(PartInteger) {
				_, size := utf8.DecodeRuneInString(s.rest)
				s.emit(PartLiteral, s.rest[:size])
			}
		}
		return s.parts
	}

	if !s.consumePrefix(PartMinusSign, "-") {
		s.consumePrefix(PartPlusSign, "+")
	}

	leading := false
	if kind == renderCurrency {
		leading = s.currency(cfg, opts)
		s.space()
	}

	s.number(cfg)
	s.space()

	if kind == renderBytes || (kind == renderNumber && opts.Abbreviated) {
		s.unit(cfg, kind)
		s.space()
	}

	if kind == renderPercentage {
		s.consumePrefix(PartPercentSign, "%")
	}

	if kind == renderCurrency && !leading {
		s.currency(cfg, opts)
	}

	s.emit(PartLiteral, s.rest)
	return s.parts
}

type unitLabelEntry struct {
	text  string
	order int
}

// unitLabelsLongestFirst lists every singular and plural label of cfg, longest
// first; equal lengths put the higher order first.
func unitLabelsLongestFirst(cfg *LocaleConfig) []unitLabelEntry {
	var labels []unitLabelEntry
	seen := map[string]struct{}{}
	for order, unit := range cfg.Units {
		if order == 0 {
			continue
		}
		for _, text := range []string{unit.Singular, unit.Plural} {
			if text == "" {
				continue
			}
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}
			labels = append(labels, unitLabelEntry{text: text, order: order})
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(labels[i].text), utf8.RuneCountInString(labels[j].text)
		if li != lj {
			return li > lj
		}
		return labels[i].order > labels[j].order
	})
	return labels
}
