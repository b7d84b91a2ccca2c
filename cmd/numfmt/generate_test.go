package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-numfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromCLDR(t *testing.T) {
	out := t.TempDir()

	written, err := runGenerator(generatorConfig{
		cldrPath: filepath.Join("testdata", "cldr"),
		out:      out,
		locales:  []string{"it_IT"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "it-IT.yaml")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), generatedHeader))

	cfg, err := numfmt.NewFileLoader(written[0]).Load("it-IT")
	require.NoError(t, err)

	assert.Equal(t, "it-IT", cfg.Code)
	assert.NotEmpty(t, cfg.Name)
	assert.Equal(t, ".", cfg.Group)
	assert.Equal(t, ",", cfg.Decimal)
	assert.False(t, cfg.Compact)
	assert.False(t, cfg.PercentSpace)
	assert.Equal(t, map[string]numfmt.CurrencyConfig{
		"EUR": {Symbol: "€", Position: numfmt.PositionAfter},
	}, cfg.Currencies)

	require.Len(t, cfg.Units, 5)
	assert.True(t, cfg.Units[1].IsZero(), "a bare 0 pattern must leave the order unlabeled")
	assert.Equal(t, numfmt.UnitLabel{Singular: "Mln", Plural: "Mln"}, cfg.Units[2])
	assert.Equal(t, numfmt.UnitLabel{Singular: "Bln", Plural: "Bln"}, cfg.Units[4])
}

func TestGenerateCurrencies(t *testing.T) {
	out := t.TempDir()

	_, err := runGenerator(generatorConfig{
		cldrPath:   filepath.Join("testdata", "cldr"),
		out:        out,
		locales:    []string{"it-IT"},
		currencies: []string{"usd", "GBP"},
	})
	require.NoError(t, err)

	cfg, err := numfmt.NewFileLoader(filepath.Join(out, "it-IT.yaml")).Load("it-IT")
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Currencies["USD"].Symbol, "alt symbols must be skipped")
	assert.Equal(t, "GBP", cfg.Currencies["GBP"].Symbol, "unknown symbols fall back to the code")
	assert.NotContains(t, cfg.Currencies, "EUR")

	_, err = runGenerator(generatorConfig{
		cldrPath:   filepath.Join("testdata", "cldr"),
		out:        out,
		locales:    []string{"it-IT"},
		currencies: []string{"EURO"},
	})
	assert.ErrorContains(t, err, "EURO")
}

func TestGenerateRootFallback(t *testing.T) {
	out := t.TempDir()

	_, err := runGenerator(generatorConfig{
		cldrPath:   filepath.Join("testdata", "cldr"),
		out:        out,
		locales:    []string{"en-US"},
		currencies: []string{"USD"},
	})
	require.NoError(t, err)

	cfg, err := numfmt.NewFileLoader(filepath.Join(out, "en-US.yaml")).Load("en-US")
	require.NoError(t, err)
	assert.Equal(t, ",", cfg.Group)
	assert.Equal(t, ".", cfg.Decimal)
	assert.Equal(t, numfmt.PositionBefore, cfg.Currencies["USD"].Position)
}

func TestGenerateErrors(t *testing.T) {
	_, err := runGenerator(generatorConfig{cldrPath: filepath.Join("testdata", "missing"), locales: []string{"it"}})
	assert.ErrorContains(t, err, "stat CLDR directory")

	_, err = runGenerator(generatorConfig{cldrPath: filepath.Join("testdata", "cldr", "main", "it.xml"), locales: []string{"it"}})
	assert.ErrorContains(t, err, "not a directory")

	_, err = runCLI(t, "", nil, "locales", "generate", "--locale", "it-IT")
	assert.ErrorContains(t, err, "CLDR_CORE_DIR")

	_, err = runCLI(t, "", map[string]string{"CLDR_CORE_DIR": filepath.Join("testdata", "cldr")}, "locales", "generate")
	assert.ErrorContains(t, err, "--locale")
}

func TestGeneratedLocaleDrivesTheEngine(t *testing.T) {
	out := t.TempDir()

	stdout, err := runCLI(t, "", nil, "locales", "generate",
		"--cldr", filepath.Join("testdata", "cldr"),
		"--locale", "it-IT",
		"--out", out,
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "it-IT.yaml")+"\n", stdout)

	stdout, err = runCLI(t, "", nil, "--locale-dir", out, "-l", "it-IT", "format", "-c", "EUR", "1234.5")
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 €\n", stdout)

	stdout, err = runCLI(t, "", nil, "--locale-dir", out, "-l", "it-IT", "format", "-a", "2500000", "1500")
	require.NoError(t, err)
	assert.Equal(t, []string{"2,5 Mln", "1.500,00"}, lines(stdout))
}
