package numfmt

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func TestUnitLabelDecoding(t *testing.T) {
	want := []UnitLabel{
		{},
		{Singular: "k", Plural: "k"},
		{Singular: "milhão", Plural: "milhões"},
		{Singular: "bi", Plural: "bis"},
	}

	t.Run("json", func(t *testing.T) {
		var got []UnitLabel
		data := `["", "k", ["milhão", "milhões"], {"singular": "bi", "plural": "bis"}]`
		if err := json.Unmarshal([]byte(data), &got); err != nil {
			t.Fatalf("json: %v", err)
		}
		assertUnitLabels(t, got, want)
	})

	t.Run("yaml", func(t *testing.T) {
		var got []UnitLabel
		data := "- \"\"\n- k\n- [milhão, milhões]\n- {singular: bi, plural: bis}\n"
		if err := yaml.Unmarshal([]byte(data), &got); err != nil {
			t.Fatalf("yaml: %v", err)
		}
		assertUnitLabels(t, got, want)
	})

	t.Run("toml", func(t *testing.T) {
		var doc struct {
			Units []UnitLabel `toml:"units"`
		}
		data := `units = ["", "k", ["milhão", "milhões"], {singular = "bi", plural = "bis"}]`
		if err := toml.Unmarshal([]byte(data), &doc); err != nil {
			t.Fatalf("toml: %v", err)
		}
		assertUnitLabels(t, doc.Units, want)
	})

	t.Run("invalid", func(t *testing.T) {
		var got []UnitLabel
		if err := json.Unmarshal([]byte(`[["a", "b", "c"]]`), &got); err == nil {
			t.Fatal("expected error for three entries")
		}
		if err := json.Unmarshal([]byte(`[42]`), &got); err == nil {
			t.Fatal("expected error for a number")
		}
	})
}

func assertUnitLabels(t *testing.T, got, want []UnitLabel) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d labels, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnitLabelLabel(t *testing.T) {
	label := UnitLabel{Singular: "mil", Plural: "mil"}
	if label.Label(true) != "mil" || label.Label(false) != "mil" {
		t.Fatalf("unexpected label %+v", label)
	}

	onlyPlural := UnitLabel{Plural: "Mio."}
	if onlyPlural.Label(true) != "Mio." {
		t.Fatalf("singular must fall back to plural")
	}
	onlySingular := UnitLabel{Singular: "Mrd"}
	if onlySingular.Label(false) != "Mrd" {
		t.Fatalf("plural must fall back to singular")
	}
	if !(UnitLabel{}).IsZero() {
		t.Fatal("empty label must be zero")
	}
}

func TestLocaleConfigValidate(t *testing.T) {
	valid := &LocaleConfig{Code: "en-US", Group: ",", Decimal: "."}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name string
		cfg  *LocaleConfig
	}{
		{name: "nil", cfg: nil},
		{name: "missing code", cfg: &LocaleConfig{Group: ",", Decimal: "."}},
		{name: "missing group", cfg: &LocaleConfig{Code: "en-US", Decimal: "."}},
		{name: "same separators", cfg: &LocaleConfig{Code: "en-US", Group: ".", Decimal: "."}},
		{name: "too many small words", cfg: &LocaleConfig{Code: "en-US", Group: ",", Decimal: ".", Speech: &SpeechRules{
			Small: make([]string, 21),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalidLocaleConfig) {
				t.Fatalf("expected ErrInvalidLocaleConfig, got %v", err)
			}
		})
	}
}

func TestLocaleConfigClone(t *testing.T) {
	original := &LocaleConfig{
		Code:       "pt-BR",
		Group:      ".",
		Decimal:    ",",
		Masks:      map[string]string{"cpf": "###.###.###-##"},
		Currencies: map[string]CurrencyConfig{"BRL": {Symbol: "R$", Position: PositionBefore}},
		Units:      []UnitLabel{{}, {Singular: "mil", Plural: "mil"}},
		Speech:     &SpeechRules{Small: []string{"zero", "um"}, Currency: map[string]UnitLabel{"BRL": {Singular: "real", Plural: "reais"}}},
		Fallbacks:  []string{"pt"},
	}

	clone := original.Clone()
	clone.Masks["cpf"] = "x"
	clone.Currencies["BRL"] = CurrencyConfig{}
	clone.Units[1].Plural = "x"
	clone.Speech.Small[1] = "x"
	clone.Speech.Currency["BRL"] = UnitLabel{}
	clone.Fallbacks[0] = "x"

	if original.Masks["cpf"] != "###.###.###-##" ||
		original.Currencies["BRL"].Symbol != "R$" ||
		original.Units[1].Plural != "mil" ||
		original.Speech.Small[1] != "um" ||
		original.Speech.Currency["BRL"].Plural != "reais" ||
		original.Fallbacks[0] != "pt" {
		t.Fatalf("clone shares state with the original: %+v", original)
	}

	var nilCfg *LocaleConfig
	if nilCfg.Clone() != nil {
		t.Fatal("nil clone must be nil")
	}
}

func TestLayer(t *testing.T) {
	base := &LocaleConfig{
		Group:      ",",
		Decimal:    ".",
		Masks:      map[string]string{"card": "#### ####", "zip": "#####"},
		Currencies: map[string]CurrencyConfig{"EUR": {Symbol: "€", Position: PositionAfter}},
		Units:      []UnitLabel{{}, {Singular: "k", Plural: "k"}},
	}
	overlay := &LocaleConfig{
		Code:       "de-DE",
		Group:      ".",
		Masks:      map[string]string{"zip": "## ###"},
		Currencies: map[string]CurrencyConfig{"CHF": {Symbol: "CHF", Position: PositionBefore}},
	}

	got := layer(base, overlay)
	if got.Code != "de-DE" || got.Group != "." || got.Decimal != "." {
		t.Fatalf("unexpected scalars %+v", got)
	}
	if got.Masks["zip"] != "## ###" || got.Masks["card"] != "#### ####" {
		t.Fatalf("unexpected masks %v", got.Masks)
	}
	if len(got.Currencies) != 2 {
		t.Fatalf("expected union of currencies, got %v", got.Currencies)
	}
	if len(got.Units) != 2 {
		t.Fatalf("expected base units, got %v", got.Units)
	}
	if base.Masks["zip"] != "#####" {
		t.Fatal("layer must not mutate its inputs")
	}
}

func TestSpeechRulesDefaults(t *testing.T) {
	rules := (&LocaleConfig{Speech: &SpeechRules{Point: "vírgula"}}).speechRules()
	if rules.Point != "vírgula" {
		t.Fatalf("expected override, got %q", rules.Point)
	}
	if rules.Minus != "minus" || rules.Small[3] != "three" {
		t.Fatalf("expected English defaults, got %+v", rules)
	}

	var nilCfg *LocaleConfig
	if got := nilCfg.speechRules(); got.Point != "point" {
		t.Fatalf("expected defaults for nil config, got %+v", got)
	}
}

func TestDeriveSeparators(t *testing.T) {
	tests := []struct {
		locale  string
		group   string
		decimal string
	}{
		{locale: "en-US", group: ",", decimal: "."},
		{locale: "de-DE", group: ".", decimal: ","},
		{locale: "pt_BR", group: ".", decimal: ","},
		{locale: "not a locale", group: ",", decimal: "."},
	}
	for _, tt := range tests {
		group, decimal := DeriveSeparators(tt.locale)
		if group != tt.group || decimal != tt.decimal {
			t.Fatalf("DeriveSeparators(%q) = %q %q, want %q %q", tt.locale, group, decimal, tt.group, tt.decimal)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := map[string]string{
		"pt_br":   "pt-BR",
		" en-US ": "en-US",
		"":        "",
		"de":      "de",
	}
	for input, want := range tests {
		if got := normalizeLocale(input); got != want {
			t.Fatalf("normalizeLocale(%q) = %q, want %q", input, got, want)
		}
	}
}
