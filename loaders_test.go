package numfmt

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedLoader(t *testing.T) {
	loader := NewEmbeddedLoader()

	want := []string{"de-DE", "en-US", "es-ES", "fr-FR", "pt-BR"}
	if got := loader.Codes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Codes = %v, want %v", got, want)
	}

	cfg, err := loader.Load("pt_br")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Code != "pt-BR" || cfg.Decimal != "," {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Masks["cpf"] == "" {
		t.Fatal("expected cpf mask")
	}

	if _, err := loader.Load("common"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("common layer must not load as a locale, got %v", err)
	}
	if _, err := loader.Load("ja-JP"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}

	common, err := loader.Common()
	if err != nil {
		t.Fatalf("Common: %v", err)
	}
	if _, ok := common.Currency("gbp"); !ok {
		t.Fatal("expected GBP in the common layer")
	}
}

func TestFileLoaderFormats(t *testing.T) {
	loader := NewFileLoader(
		filepath.Join("testdata", "it-IT.json"),
		filepath.Join("testdata", "nl-NL.yaml"),
		filepath.Join("testdata", "ja-JP.toml"),
	)

	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got := sortedKeys(all); !reflect.DeepEqual(got, []string{"it-IT", "ja-JP", "nl-NL"}) {
		t.Fatalf("unexpected codes %v", got)
	}

	it := all["it-IT"]
	if it.Speech == nil || it.Speech.Point != "virgola" {
		t.Fatalf("expected italian speech rules, got %+v", it.Speech)
	}
	if got := it.Speech.Scales[1]; got != (UnitLabel{Singular: "mille", Plural: "mila"}) {
		t.Fatalf("unexpected list scale %+v", got)
	}
	if got := it.Units[1]; got != (UnitLabel{Singular: "mila", Plural: "mila"}) {
		t.Fatalf("unexpected string unit %+v", got)
	}

	nl := all["nl-NL"]
	if got := nl.Units[1]; got != (UnitLabel{Singular: "K", Plural: "K"}) {
		t.Fatalf("unexpected mapping unit %+v", got)
	}
	if nl.Currencies["EUR"].Position != PositionBefore {
		t.Fatalf("unexpected EUR config %+v", nl.Currencies["EUR"])
	}

	ja := all["ja-JP"]
	if !ja.Compact || ja.Currencies["JPY"].Symbol != "¥" {
		t.Fatalf("unexpected ja-JP config %+v", ja)
	}
	if got := ja.Units[2]; got.Plural != "百万" {
		t.Fatalf("unexpected toml unit %+v", got)
	}
}

func TestFileLoaderMissAndErrors(t *testing.T) {
	loader := NewFileLoader(filepath.Join("testdata", "nl-NL.yaml"))
	if _, err := loader.Load("it-IT"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}

	if _, err := NewFileLoader().Load("it-IT"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("empty loader must report a miss, got %v", err)
	}

	bad := NewFileLoader(filepath.Join("testdata", "nl-NL.yaml"), "locale.txt")
	if _, err := bad.LoadAll(); err == nil {
		t.Fatal("expected error for a missing file")
	}

	dir := t.TempDir()
	broken := filepath.Join(dir, "xx-XX.json")
	if err := os.WriteFile(broken, []byte(`{"group": `), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := NewFileLoader(broken).Load("xx-XX"); err == nil || errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFileLoaderCodeFromFileName(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sv_SE.yaml")
	if err := os.WriteFile(p, []byte("group: \" \"\ndecimal: \",\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := NewFileLoader(p).Load("sv-SE")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Code != "sv-SE" {
		t.Fatalf("expected code from file name, got %q", cfg.Code)
	}
}

func TestDirLoader(t *testing.T) {
	loader, err := NewDirLoader(filepath.Join("testdata", "locales"))
	if err != nil {
		t.Fatalf("NewDirLoader: %v", err)
	}
	if got := loader.Codes(); !reflect.DeepEqual(got, []string{"it-IT", "ja-JP", "nl-NL"}) {
		t.Fatalf("unexpected codes %v", got)
	}

	if _, err := NewDirLoader(filepath.Join("testdata", "missing")); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestChainLoader(t *testing.T) {
	files := NewFileLoader(filepath.Join("testdata", "nl-NL.yaml"))
	chain := ChainLoader{files, nil, NewEmbeddedLoader()}

	if got := chain.Codes(); !reflect.DeepEqual(got, []string{"de-DE", "en-US", "es-ES", "fr-FR", "nl-NL", "pt-BR"}) {
		t.Fatalf("unexpected codes %v", got)
	}

	cfg, err := chain.Load("nl-NL")
	if err != nil || cfg.Code != "nl-NL" {
		t.Fatalf("expected nl-NL from the file loader, got %v %v", cfg, err)
	}
	cfg, err = chain.Load("de-DE")
	if err != nil || cfg.Code != "de-DE" {
		t.Fatalf("expected de-DE from the embedded loader, got %v %v", cfg, err)
	}

	_, err = chain.Load("ko-KR")
	if !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}

	failing := LoaderFunc(func(string) (*LocaleConfig, error) {
		return nil, errors.New("disk on fire")
	})
	if _, err := (ChainLoader{failing, NewEmbeddedLoader()}).Load("de-DE"); err == nil || errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("hard errors must stop the chain, got %v", err)
	}
}

func TestFileLoaderIntegration(t *testing.T) {
	engine := newTestEngine(t,
		WithLocaleDir(filepath.Join("testdata", "locales")),
		WithDefaultLocale("nl-NL"),
	)

	got, err := engine.FormatNumber(Float(1234.5), 2, "", false)
	if err != nil {
		t.Fatalf("FormatNumber: %v", err)
	}
	if got != "1.234,50" {
		t.Fatalf("FormatNumber = %q", got)
	}

	opts := engine.Options()
	opts.Locale = "it-IT"
	opts.Abbreviated = true
	got, err = engine.Beautify(Float(2500000), opts)
	if err != nil {
		t.Fatalf("Beautify: %v", err)
	}
	if got != "2,5 Mln" {
		t.Fatalf("Beautify = %q", got)
	}

	speech, err := engine.ToSpeech("23", "it-IT")
	if err != nil {
		t.Fatalf("ToSpeech: %v", err)
	}
	if speech != "ventitre" {
		t.Fatalf("ToSpeech = %q", speech)
	}

	if got := engine.Parse("1,5 mila", "it-IT"); got != 1500 {
		t.Fatalf("Parse = %v", got)
	}
}
