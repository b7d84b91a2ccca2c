package numfmt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register("pt_br", &LocaleConfig{
		Group:   ".",
		Decimal: ",",
		Currencies: map[string]CurrencyConfig{
			"BRL": {Symbol: "R$", Position: PositionBefore},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !registry.Has("pt-BR") {
		t.Fatal("expected pt-BR to be registered")
	}

	cfg, err := registry.Lookup("pt-BR")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cfg.Code != "pt-BR" {
		t.Fatalf("expected normalized code, got %q", cfg.Code)
	}
	if !reflect.DeepEqual(cfg.Units, defaultUnits) {
		t.Fatalf("expected default units, got %v", cfg.Units)
	}

	cfg.Currencies["BRL"] = CurrencyConfig{Symbol: "X", Position: PositionAfter}
	again, _ := registry.Lookup("pt-BR")
	if again.Currencies["BRL"].Symbol != "R$" {
		t.Fatal("Lookup must return a copy")
	}
}

func TestRegistryLastWriteWins(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register("en-US", &LocaleConfig{Group: ",", Decimal: "."}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register("en-US", &LocaleConfig{Group: " ", Decimal: "."}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cfg, err := registry.Lookup("en-US")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cfg.Group != " " {
		t.Fatalf("expected replaced group, got %q", cfg.Group)
	}
}

func TestRegistryDerivesMissingSeparators(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register("de-DE", &LocaleConfig{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	cfg, _ := registry.Lookup("de-DE")
	if cfg.Group != "." || cfg.Decimal != "," {
		t.Fatalf("expected CLDR separators, got group %q decimal %q", cfg.Group, cfg.Decimal)
	}
}

func TestRegistryRejectsInvalidConfig(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name string
		cfg  *LocaleConfig
	}{
		{name: "nil", cfg: nil},
		{name: "same separators", cfg: &LocaleConfig{Group: ",", Decimal: ","}},
		{name: "bad currency code", cfg: &LocaleConfig{Group: ",", Decimal: ".", Currencies: map[string]CurrencyConfig{
			"DOLLAR": {Symbol: "$", Position: PositionBefore},
		}}},
		{name: "bad position", cfg: &LocaleConfig{Group: ",", Decimal: ".", Currencies: map[string]CurrencyConfig{
			"USD": {Symbol: "$", Position: "middle"},
		}}},
		{name: "missing symbol", cfg: &LocaleConfig{Group: ",", Decimal: ".", Currencies: map[string]CurrencyConfig{
			"USD": {Position: PositionBefore},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register("xx-XX", tt.cfg)
			if !errors.Is(err, ErrInvalidLocaleConfig) {
				t.Fatalf("expected ErrInvalidLocaleConfig, got %v", err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}

	if registry.Has("xx-XX") {
		t.Fatal("rejected configs must not be stored")
	}
}

func TestRegistryUnsupportedLocaleListsCodes(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("en-US", &LocaleConfig{Group: ",", Decimal: "."})
	_ = registry.Register("pt-BR", &LocaleConfig{Group: ".", Decimal: ","})

	_, err := registry.Lookup("ja-JP")
	if !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
	if !strings.Contains(err.Error(), "en-US, pt-BR") {
		t.Fatalf("expected available codes in %q", err.Error())
	}
}

func TestRegistryFallbacks(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("en-US", &LocaleConfig{Group: ",", Decimal: "."})
	_ = registry.Register("pt", &LocaleConfig{Group: ".", Decimal: ","})

	cfg, err := registry.Lookup("pt-AO")
	if err != nil {
		t.Fatalf("expected parent fallback, got %v", err)
	}
	if cfg.Code != "pt" {
		t.Fatalf("expected pt, got %s", cfg.Code)
	}

	registry.SetFallback("es-MX", "en-US")
	cfg, err = registry.Lookup("es-MX")
	if err != nil {
		t.Fatalf("expected explicit fallback, got %v", err)
	}
	if cfg.Code != "en-US" {
		t.Fatalf("expected en-US, got %s", cfg.Code)
	}

	if err := registry.Register("it-IT", &LocaleConfig{Group: ".", Decimal: ",", Fallbacks: []string{"it-IT", "pt", ""}}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	it, _ := registry.Lookup("it-IT")
	if !reflect.DeepEqual(it.Fallbacks, []string{"pt"}) {
		t.Fatalf("expected sanitized fallbacks, got %v", it.Fallbacks)
	}
	cfg, err = registry.Lookup("it-IT")
	if err != nil || cfg.Code != "it-IT" {
		t.Fatalf("exact match must win over fallbacks, got %v %v", cfg, err)
	}
}

func TestRegistryResolverOption(t *testing.T) {
	resolver := NewStaticFallbackResolver()
	resolver.Set("gl-ES", "es-ES")

	registry := NewRegistry(WithRegistryResolver(resolver))
	_ = registry.Register("es-ES", &LocaleConfig{Group: ".", Decimal: ","})

	cfg, err := registry.Lookup("gl-ES")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cfg.Code != "es-ES" {
		t.Fatalf("expected es-ES, got %s", cfg.Code)
	}
}

func TestRegistryCommonLayer(t *testing.T) {
	common := &LocaleConfig{
		Masks: map[string]string{"card": "#### ####"},
		Currencies: map[string]CurrencyConfig{
			"USD": {Symbol: "$", Position: PositionBefore},
		},
	}
	registry := NewRegistry(WithRegistryCommon(common))

	err := registry.Register("de-DE", &LocaleConfig{
		Group:   ".",
		Decimal: ",",
		Currencies: map[string]CurrencyConfig{
			"USD": {Symbol: "$", Position: PositionAfter},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	cfg, _ := registry.Lookup("de-DE")
	if cfg.Masks["card"] != "#### ####" {
		t.Fatalf("expected common mask, got %v", cfg.Masks)
	}
	if cfg.Currencies["USD"].Position != PositionAfter {
		t.Fatalf("locale entry must override the common layer, got %v", cfg.Currencies["USD"])
	}
}

func TestRegistryLoadUsesLoader(t *testing.T) {
	calls := 0
	loader := LoaderFunc(func(code string) (*LocaleConfig, error) {
		calls++
		if code != "ja-JP" {
			return nil, unsupportedLocale(code, []string{"ja-JP"})
		}
		return &LocaleConfig{Group: ",", Decimal: "."}, nil
	})
	registry := NewRegistry(WithRegistryLoader(loader))

	if _, err := registry.Load("ja-JP"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := registry.Load("ja-JP"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one loader call, got %d", calls)
	}

	if _, err := registry.Load("ko-KR"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
}

func TestRegistryCatalog(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("pt-BR", &LocaleConfig{
		Name:    "Português (Brasil)",
		Group:   ".",
		Decimal: ",",
		Masks:   map[string]string{"cpf": "###.###.###-##", "cep": "#####-###"},
		Currencies: map[string]CurrencyConfig{
			"BRL": {Symbol: "R$", Position: PositionBefore},
		},
		Speech: &SpeechRules{Point: "ponto"},
	})
	_ = registry.Register("en-US", &LocaleConfig{Group: ",", Decimal: "."})

	catalog := registry.Catalog()
	if !reflect.DeepEqual(catalog.Codes(), []string{"en-US", "pt-BR"}) {
		t.Fatalf("unexpected codes %v", catalog.Codes())
	}
	if catalog.DisplayName("pt_BR") != "Português (Brasil)" {
		t.Fatalf("unexpected display name %q", catalog.DisplayName("pt-BR"))
	}

	meta, ok := catalog.Locale("pt-BR")
	if !ok {
		t.Fatal("expected pt-BR metadata")
	}
	if !reflect.DeepEqual(meta.Masks, []string{"cep", "cpf"}) || !meta.HasSpeech {
		t.Fatalf("unexpected metadata %+v", meta)
	}

	_ = registry.Register("fr-FR", &LocaleConfig{Group: " ", Decimal: ","})
	if catalog.Has("fr-FR") {
		t.Fatal("catalog must be a snapshot")
	}
	if len(catalog.All()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(catalog.All()))
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("en-US", &LocaleConfig{Group: ",", Decimal: "."})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("en-%c%c", 'A'+i, 'A'+i)
			if err := registry.Register(code, &LocaleConfig{Group: ",", Decimal: "."}); err != nil {
				t.Errorf("Register(%s): %v", code, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := registry.Lookup("en-US"); err != nil {
					t.Errorf("Lookup: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := len(registry.Codes()); got != 9 {
		t.Fatalf("expected 9 locales, got %d", got)
	}
}
