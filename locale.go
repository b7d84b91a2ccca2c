package numfmt

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

// CurrencyPosition places a currency symbol relative to the number.
type CurrencyPosition string

const (
	PositionBefore CurrencyPosition = "before"
	PositionAfter  CurrencyPosition = "after"
)

// CurrencyConfig is the symbol and placement for one currency in a locale.
type CurrencyConfig struct {
	Symbol   string           `json:"symbol" yaml:"symbol" toml:"symbol"`
	Position CurrencyPosition `json:"position" yaml:"position" toml:"position"`
}

// UnitLabel is a singular/plural label pair. Data files may spell it as a
// single string, a two element list or a mapping.
type UnitLabel struct {
	Singular string `json:"singular" yaml:"singular" toml:"singular"`
	Plural   string `json:"plural" yaml:"plural" toml:"plural"`
}

// Label picks the singular form when singular is true, falling back to the other form when empty.
func (u UnitLabel) Label(singular bool) string {
	if singular {
		if u.Singular != "" {
			return u.Singular
		}
		return u.Plural
	}
	if u.Plural != "" {
		return u.Plural
	}
	return u.Singular
}

func (u UnitLabel) IsZero() bool {
	return u.Singular == "" && u.Plural == ""
}

func (u *UnitLabel) fromAny(raw any) error {
	switch v := raw.(type) {
	case nil:
		*u = UnitLabel{}
	case string:
		*u = UnitLabel{Singular: v, Plural: v}
	case []any:
		if len(v) == 0 || len(v) > 2 {
			return fmt.Errorf("unit label: expected 1 or 2 entries, got %d", len(v))
		}
		sg, ok := v[0].(string)
		if !ok {
			return fmt.Errorf("unit label: expected string, got %T", v[0])
		}
		pl := sg
		if len(v) == 2 {
			if pl, ok = v[1].(string); !ok {
				return fmt.Errorf("unit label: expected string, got %T", v[1])
			}
		}
		*u = UnitLabel{Singular: sg, Plural: pl}
	case map[string]any:
		sg, _ := v["singular"].(string)
		pl, _ := v["plural"].(string)
		*u = UnitLabel{Singular: sg, Plural: pl}
	default:
		return fmt.Errorf("unit label: unsupported value %T", raw)
	}
	return nil
}

func (u *UnitLabel) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return u.fromAny(raw)
}

func (u *UnitLabel) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return u.fromAny(raw)
}

// MarshalYAML writes the short string form when both labels match.
func (u UnitLabel) MarshalYAML() (any, error) {
	if u.Singular == u.Plural {
		return u.Singular, nil
	}
	return []string{u.Singular, u.Plural}, nil
}

// UnmarshalTOML satisfies toml.Unmarshaler.
func (u *UnitLabel) UnmarshalTOML(raw any) error {
	return u.fromAny(raw)
}

// GrammarRules drive the recursive number-to-words composition.
type GrammarRules struct {
	HyphenateTens  bool   `json:"hyphenateTens" yaml:"hyphenateTens" toml:"hyphenateTens"`
	TensJoiner     string `json:"tensJoiner" yaml:"tensJoiner" toml:"tensJoiner"`
	HundredsJoiner string `json:"hundredsJoiner" yaml:"hundredsJoiner" toml:"hundredsJoiner"`
	HundredSuffix  string `json:"hundredSuffix" yaml:"hundredSuffix" toml:"hundredSuffix"`
}

// SpeechRules is the vocabulary used by ToSpeech. Every field is optional.
type SpeechRules struct {
	Small          []string             `json:"small" yaml:"small" toml:"small"`
	Tens           []string             `json:"tens" yaml:"tens" toml:"tens"`
	Scales         []UnitLabel          `json:"scales" yaml:"scales" toml:"scales"`
	Point          string               `json:"point" yaml:"point" toml:"point"`
	Minus          string               `json:"minus" yaml:"minus" toml:"minus"`
	Currency       map[string]UnitLabel `json:"currency" yaml:"currency" toml:"currency"`
	CurrencyJoiner string               `json:"currencyJoiner" yaml:"currencyJoiner" toml:"currencyJoiner"`
	Hundreds       []string             `json:"hundreds" yaml:"hundreds" toml:"hundreds"`
	ExactHundred   string               `json:"exactHundred" yaml:"exactHundred" toml:"exactHundred"`
	Grammar        GrammarRules         `json:"grammar" yaml:"grammar" toml:"grammar"`
}

var defaultSpeech = SpeechRules{
	Small: []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	},
	Tens: []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"},
	Scales: []UnitLabel{
		{},
		{Singular: "thousand", Plural: "thousand"},
		{Singular: "million", Plural: "million"},
		{Singular: "billion", Plural: "billion"},
		{Singular: "trillion", Plural: "trillion"},
	},
	Point: "point",
	Minus: "minus",
	Grammar: GrammarRules{
		TensJoiner:     " ",
		HundredsJoiner: " ",
		HundredSuffix:  "hundred",
	},
}

// LocaleConfig is everything the engine knows about one locale.
type LocaleConfig struct {
	Code       string                    `json:"code" yaml:"code" toml:"code"`
	Name       string                    `json:"name" yaml:"name" toml:"name"`
	Group      string                    `json:"group" yaml:"group" toml:"group"`
	Decimal    string                    `json:"decimal" yaml:"decimal" toml:"decimal"`
	Masks      map[string]string         `json:"masks" yaml:"masks" toml:"masks"`
	Currencies map[string]CurrencyConfig `json:"currencies" yaml:"currencies" toml:"currencies"`
	// Units is indexed by power-of-1000 order; index 0 is the unscaled slot.
	Units  []UnitLabel  `json:"units" yaml:"units" toml:"units"`
	Speech *SpeechRules `json:"speech,omitempty" yaml:"speech,omitempty" toml:"speech,omitempty"`
	// Compact joins abbreviation units without a space ("1.5k").
	Compact bool `json:"compact" yaml:"compact" toml:"compact"`
	// PercentSpace is the default for PercentOptions.AddSpace.
	PercentSpace bool `json:"percentSpace" yaml:"percentSpace" toml:"percentSpace"`
	// OmitLeadingOne speaks 1000 as the bare scale word ("mil").
	OmitLeadingOne bool     `json:"omitLeadingOne" yaml:"omitLeadingOne" toml:"omitLeadingOne"`
	Fallbacks      []string `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty" toml:"fallbacks,omitempty"`
}

var defaultUnits = []UnitLabel{
	{},
	{Singular: "k", Plural: "k"},
	{Singular: "M", Plural: "M"},
	{Singular: "B", Plural: "B"},
	{Singular: "T", Plural: "T"},
}

// Clone returns a deep copy.
func (c *LocaleConfig) Clone() *LocaleConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.Masks != nil {
		out.Masks = make(map[string]string, len(c.Masks))
		for k, v := range c.Masks {
			out.Masks[k] = v
		}
	}
	if c.Currencies != nil {
		out.Currencies = make(map[string]CurrencyConfig, len(c.Currencies))
		for k, v := range c.Currencies {
			out.Currencies[k] = v
		}
	}
	out.Units = append([]UnitLabel(nil), c.Units...)
	out.Fallbacks = append([]string(nil), c.Fallbacks...)
	out.Speech = c.Speech.Clone()
	return &out
}

// Clone returns a deep copy.
func (s *SpeechRules) Clone() *SpeechRules {
	if s == nil {
		return nil
	}
	out := *s
	out.Small = append([]string(nil), s.Small...)
	out.Tens = append([]string(nil), s.Tens...)
	out.Hundreds = append([]string(nil), s.Hundreds...)
	out.Scales = append([]UnitLabel(nil), s.Scales...)
	if s.Currency != nil {
		out.Currency = make(map[string]UnitLabel, len(s.Currency))
		for k, v := range s.Currency {
			out.Currency[k] = v
		}
	}
	return &out
}

// Currency returns the config for a currency code, matched case-insensitively.
func (c *LocaleConfig) Currency(code string) (CurrencyConfig, bool) {
	if c == nil {
		return CurrencyConfig{}, false
	}
	cfg, ok := c.Currencies[strings.ToUpper(strings.TrimSpace(code))]
	return cfg, ok
}

// Validate checks structural consistency. Separators must be set and distinct,
// currency codes must be ISO 4217 and positions must be before/after.
func (c *LocaleConfig) Validate() error {
	if c == nil {
		return invalidLocaleConfig("", fmt.Errorf("config is nil"))
	}
	err := validation.ValidateStruct(c,
		validation.Field(&c.Code, validation.Required),
		validation.Field(&c.Group, validation.Required),
		validation.Field(&c.Decimal, validation.Required, validation.By(func(value any) error {
			if s, _ := value.(string); s != "" && s == c.Group {
				return validation.NewError("numfmt.locale.separators", "decimal and group separators must differ")
			}
			return nil
		})),
		validation.Field(&c.Currencies, validation.By(validateCurrencies)),
		validation.Field(&c.Speech, validation.By(validateSpeech)),
	)
	if err != nil {
		return invalidLocaleConfig(c.Code, err)
	}
	return nil
}

func validateCurrencies(value any) error {
	currencies, _ := value.(map[string]CurrencyConfig)
	for code, cfg := range currencies {
		if _, err := currency.ParseISO(code); err != nil {
			return validation.NewError("numfmt.locale.currency_code", fmt.Sprintf("%q is not an ISO 4217 code", code))
		}
		if cfg.Symbol == "" {
			return validation.NewError("numfmt.locale.currency_symbol", fmt.Sprintf("%s has no symbol", code))
		}
		if cfg.Position != PositionBefore && cfg.Position != PositionAfter {
			return validation.NewError("numfmt.locale.currency_position",
				fmt.Sprintf("%s position must be before or after, got %q", code, cfg.Position))
		}
	}
	return nil
}

func validateSpeech(value any) error {
	speech, _ := value.(*SpeechRules)
	if speech == nil {
		return nil
	}
	if len(speech.Small) > 20 {
		return validation.NewError("numfmt.locale.speech_small", "small number words cover 0..19")
	}
	if len(speech.Tens) > 10 {
		return validation.NewError("numfmt.locale.speech_tens", "tens words cover 0..9 tens")
	}
	if len(speech.Hundreds) > 10 {
		return validation.NewError("numfmt.locale.speech_hundreds", "hundreds words cover 0..9 hundreds")
	}
	return nil
}

// withDefaults fills the gaps a partial config may leave, without touching the receiver.
func (c *LocaleConfig) withDefaults() *LocaleConfig {
	out := c.Clone()
	if len(out.Units) == 0 {
		out.Units = append([]UnitLabel(nil), defaultUnits...)
	}
	if out.Masks == nil {
		out.Masks = map[string]string{}
	}
	if out.Currencies == nil {
		out.Currencies = map[string]CurrencyConfig{}
	}
	return out
}

// layer merges overlay on top of base: masks and currencies are unioned,
// scalar fields and lists from overlay win when set.
func layer(base, overlay *LocaleConfig) *LocaleConfig {
	if base == nil {
		return overlay.Clone()
	}
	if overlay == nil {
		return base.Clone()
	}
	out := overlay.Clone()
	if out.Masks == nil {
		out.Masks = map[string]string{}
	}
	for k, v := range base.Masks {
		if _, ok := out.Masks[k]; !ok {
			out.Masks[k] = v
		}
	}
	if out.Currencies == nil {
		out.Currencies = map[string]CurrencyConfig{}
	}
	for k, v := range base.Currencies {
		if _, ok := out.Currencies[k]; !ok {
			out.Currencies[k] = v
		}
	}
	if out.Code == "" {
		out.Code = base.Code
	}
	if out.Name == "" {
		out.Name = base.Name
	}
	if out.Group == "" {
		out.Group = base.Group
	}
	if out.Decimal == "" {
		out.Decimal = base.Decimal
	}
	if len(out.Units) == 0 {
		out.Units = append([]UnitLabel(nil), base.Units...)
	}
	if out.Speech == nil {
		out.Speech = base.Speech.Clone()
	}
	return out
}

// speechRules resolves every optional field against the English defaults.
func (c *LocaleConfig) speechRules() SpeechRules {
	rules := defaultSpeech
	rules.Currency = nil
	if c == nil || c.Speech == nil {
		return rules
	}
	s := c.Speech
	if len(s.Small) > 0 {
		rules.Small = s.Small
	}
	if len(s.Tens) > 0 {
		rules.Tens = s.Tens
	}
	if len(s.Scales) > 0 {
		rules.Scales = s.Scales
	}
	if s.Point != "" {
		rules.Point = s.Point
	}
	if s.Minus != "" {
		rules.Minus = s.Minus
	}
	rules.Currency = s.Currency
	rules.CurrencyJoiner = s.CurrencyJoiner
	rules.Hundreds = s.Hundreds
	rules.ExactHundred = s.ExactHundred
	rules.Grammar.HyphenateTens = s.Grammar.HyphenateTens
	if s.Grammar.TensJoiner != "" {
		rules.Grammar.TensJoiner = s.Grammar.TensJoiner
	}
	if s.Grammar.HundredsJoiner != "" {
		rules.Grammar.HundredsJoiner = s.Grammar.HundredsJoiner
	}
	if s.Grammar.HundredSuffix != "" {
		rules.Grammar.HundredSuffix = s.Grammar.HundredSuffix
	}
	return rules
}
