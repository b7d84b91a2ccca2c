package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/goliatone/go-numfmt"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

const generatedHeader = "# Code generated by numfmt locales generate from CLDR data. DO NOT EDIT.\n"

type generatorConfig struct {
	cldrPath   string
	out        string
	locales    []string
	currencies []string
}

// compactScales are the short decimal format keys for orders 1 to 4.
var compactScales = []string{"1000", "1000000", "1000000000", "1000000000000"}

var emptyRegion language.Region

func newGenerateCommand(a *app) *cobra.Command {
	var cfg generatorConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write locale files from CLDR number data",
		Long: `generate reads the numbers section of a CLDR core checkout (the
directory holding main/) and writes one YAML locale file per --locale.

Separators, abbreviation units, percent spacing and currency symbols come
from CLDR. Masks and speech rules are not part of CLDR; add them by hand.`,
		Example: `  numfmt locales generate --cldr ./cldr/common --locale it-IT --locale nl-NL --out locales
  numfmt locales generate --locale sv-SE --currency SEK,EUR`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.cldrPath == "" {
				environ := a.environ
				if environ == nil {
					environ = envMap(os.Environ())
				}
				cfg.cldrPath = environ["CLDR_CORE_DIR"]
			}
			if cfg.cldrPath == "" {
				return errors.New("missing CLDR data directory (set --cldr or CLDR_CORE_DIR)")
			}
			if len(cfg.locales) == 0 {
				return errors.New("at least one --locale value is required")
			}

			written, err := runGenerator(cfg)
			if err != nil {
				return err
			}
			for _, path := range written {
				a.logger.Info("locale generated", "path", path)
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data (default $CLDR_CORE_DIR)")
	flags.StringVarP(&cfg.out, "out", "o", "locales", "output directory")
	flags.StringSliceVar(&cfg.locales, "locale", nil, "locale to generate; repeat or separate with commas")
	flags.StringSliceVar(&cfg.currencies, "currency", nil, "ISO 4217 codes to include (default: the region currency)")
	return cmd
}

func runGenerator(cfg generatorConfig) ([]string, error) {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(cfg.out); err != nil {
		return nil, err
	}

	var written []string
	for _, locale := range cfg.locales {
		locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
		if locale == "" {
			continue
		}

		localeCfg, err := buildLocale(data, locale, cfg.currencies)
		if err != nil {
			return written, fmt.Errorf("build locale %s: %w", locale, err)
		}

		path := filepath.Join(cfg.out, localeCfg.Code+".yaml")
		if err := writeLocale(path, localeCfg); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetDirFilter("main")
	decoder.SetSectionFilter("numbers")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// numbersChain returns the numbers sections for locale and its truncations,
// most specific first, ending with root. CLDR stores most data on the
// language ("it") and leaves the regional file ("it_IT") nearly empty.
func numbersChain(data *cldr.CLDR, locale string) []*cldr.Numbers {
	var chain []*cldr.Numbers
	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if ldml := data.RawLDML(candidate); ldml != nil && ldml.Numbers != nil {
			chain = append(chain, ldml.Numbers)
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	if ldml := data.RawLDML("root"); ldml != nil && ldml.Numbers != nil {
		chain = append(chain, ldml.Numbers)
	}
	return chain
}

func buildLocale(data *cldr.CLDR, locale string, currencies []string) (*numfmt.LocaleConfig, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale: %w", err)
	}
	chain := numbersChain(data, locale)
	if len(chain) == 0 {
		return nil, errors.New("missing LDML numbers data")
	}

	cfg := &numfmt.LocaleConfig{
		Code:       tag.String(),
		Name:       display.Self.Name(tag),
		Currencies: map[string]numfmt.CurrencyConfig{},
	}

	cfg.Group, cfg.Decimal = extractSeparators(chain)
	if cfg.Group == "" || cfg.Decimal == "" {
		return nil, errors.New("missing number symbols")
	}
	cfg.Units, cfg.Compact = extractUnits(chain)
	cfg.PercentSpace = extractPercentSpace(chain)

	if len(currencies) == 0 {
		if region, _ := tag.Region(); region != emptyRegion {
			if unit, ok := currency.FromRegion(region); ok {
				currencies = []string{unit.String()}
			}
		}
	}
	position := extractCurrencyPosition(chain)
	for _, code := range currencies {
		unit, err := currency.ParseISO(strings.TrimSpace(code))
		if err != nil {
			return nil, fmt.Errorf("currency %q: %w", code, err)
		}
		cfg.Currencies[unit.String()] = numfmt.CurrencyConfig{
			Symbol:   extractCurrencySymbol(chain, unit.String()),
			Position: position,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func latin(numberSystem string) bool {
	return numberSystem == "" || numberSystem == "latn"
}

func extractSeparators(chain []*cldr.Numbers) (group, decimal string) {
	for _, numbers := range chain {
		for _, symbols := range numbers.Symbols {
			if symbols == nil || !latin(symbols.NumberSystem) {
				continue
			}
			if decimal == "" && len(symbols.Decimal) > 0 {
				decimal = symbols.Decimal[0].Data()
			}
			if group == "" && len(symbols.Group) > 0 {
				group = symbols.Group[0].Data()
			}
		}
		if group != "" && decimal != "" {
			return group, decimal
		}
	}
	return group, decimal
}

// extractUnits reads the short decimal format patterns ("0K", "0 Mln") for
// thousands through trillions. A scale CLDR leaves as a bare "0" gets an
// empty label so abbreviation skips that order.
func extractUnits(chain []*cldr.Numbers) ([]numfmt.UnitLabel, bool) {
	units := make([]numfmt.UnitLabel, len(compactScales)+1)
	spaced := false

	for order, scale := range compactScales {
		one, other := shortPattern(chain, scale)
		if other == "" {
			other = one
		}
		if one == "" {
			one = other
		}
		if strings.ContainsFunc(other, unicode.IsSpace) {
			spaced = true
		}
		units[order+1] = numfmt.UnitLabel{Singular: unitText(one), Plural: unitText(other)}
	}
	return units, !spaced
}

func shortPattern(chain []*cldr.Numbers, scale string) (one, other string) {
	for _, numbers := range chain {
		for _, formats := range numbers.DecimalFormats {
			if formats == nil || !latin(formats.NumberSystem) {
				continue
			}
			for _, length := range formats.DecimalFormatLength {
				if length == nil || length.Type != "short" {
					continue
				}
				for _, format := range length.DecimalFormat {
					if format == nil {
						continue
					}
					for _, pattern := range format.Pattern {
						if pattern == nil || pattern.Type != scale || pattern.Alt != "" {
							continue
						}
						switch pattern.Count {
						case "one":
							if one == "" {
								one = pattern.Data()
							}
						case "other", "":
							if other == "" {
								other = pattern.Data()
							}
						}
					}
				}
			}
		}
		if one != "" || other != "" {
			return one, other
		}
	}
	return one, other
}

// unitText strips the digit placeholders and quoting from a compact pattern.
func unitText(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "0", "")
	pattern = strings.ReplaceAll(pattern, "'", "")
	return strings.TrimFunc(pattern, unicode.IsSpace)
}

func extractPercentSpace(chain []*cldr.Numbers) bool {
	for _, numbers := range chain {
		for _, formats := range numbers.PercentFormats {
			if formats == nil || !latin(formats.NumberSystem) {
				continue
			}
			for _, length := range formats.PercentFormatLength {
				if length == nil || length.Type != "" {
					continue
				}
				for _, format := range length.PercentFormat {
					if format == nil || len(format.Pattern) == 0 || format.Pattern[0] == nil {
						continue
					}
					pattern := format.Pattern[0].Data()
					pattern, _, _ = strings.Cut(pattern, ";")
					idx := strings.Index(pattern, "%")
					if idx <= 0 {
						return false
					}
					r := []rune(pattern[:idx])
					return unicode.IsSpace(r[len(r)-1])
				}
			}
		}
	}
	return false
}

// extractCurrencyPosition reports where ¤ sits in the standard currency
// pattern relative to the digits.
func extractCurrencyPosition(chain []*cldr.Numbers) numfmt.CurrencyPosition {
	for _, numbers := range chain {
		for _, formats := range numbers.CurrencyFormats {
			if formats == nil || !latin(formats.NumberSystem) {
				continue
			}
			for _, length := range formats.CurrencyFormatLength {
				if length == nil || length.Type != "" {
					continue
				}
				for _, format := range length.CurrencyFormat {
					if format == nil || (format.Type != "" && format.Type != "standard") {
						continue
					}
					for _, p := range format.Pattern {
						if p == nil || p.Alt != "" {
							continue
						}
						pattern, _, _ := strings.Cut(p.Data(), ";")
						symbol := strings.Index(pattern, "¤")
						digits := strings.IndexAny(pattern, "#0")
						if symbol < 0 || digits < 0 {
							continue
						}
						if symbol < digits {
							return numfmt.PositionBefore
						}
						return numfmt.PositionAfter
					}
				}
			}
		}
	}
	return numfmt.PositionBefore
}

func extractCurrencySymbol(chain []*cldr.Numbers, code string) string {
	for _, numbers := range chain {
		if numbers.Currencies == nil {
			continue
		}
		for _, cur := range numbers.Currencies.Currency {
			if cur == nil || cur.Type != code {
				continue
			}
			for _, symbol := range cur.Symbol {
				if symbol != nil && symbol.Alt == "" && symbol.Data() != "" {
					return symbol.Data()
				}
			}
		}
	}
	return code
}

func writeLocale(path string, cfg *numfmt.LocaleConfig) error {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", cfg.Code, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
