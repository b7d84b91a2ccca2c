package numfmt

import (
	"reflect"
	"testing"
)

func TestToParts(t *testing.T) {
	engine := newTestEngine(t)

	currency := func(locale, code string) FormatOptions {
		opts := engine.Options()
		opts.Locale = locale
		opts.Currency = code
		return opts
	}

	tests := []struct {
		name  string
		value Value
		opts  FormatOptions
		want  []NumberPart
	}{
		{
			name:  "leading currency with space",
			value: Float(1234.56),
			opts:  currency("pt-BR", "BRL"),
			want: []NumberPart{
				{PartCurrency, "R$"},
				{PartLiteral, " "},
				{PartInteger, "1"},
				{PartGroupSeparator, "."},
				{PartInteger, "234"},
				{PartDecimalSeparator, ","},
				{PartFraction, "56"},
			},
		},
		{
			name:  "negative dollar",
			value: Float(-1234.5),
			opts:  currency("en-US", "USD"),
			want: []NumberPart{
				{PartMinusSign, "-"},
				{PartCurrency, "$"},
				{PartInteger, "1"},
				{PartGroupSeparator, ","},
				{PartInteger, "234"},
				{PartDecimalSeparator, "."},
				{PartFraction, "50"},
			},
		},
		{
			name:  "trailing currency",
			value: Float(5),
			opts:  currency("de-DE", "EUR"),
			want: []NumberPart{
				{PartInteger, "5"},
				{PartDecimalSeparator, ","},
				{PartFraction, "00"},
				{PartLiteral, " "},
				{PartCurrency, "€"},
			},
		},
		{
			name:  "abbreviated compact",
			value: Float(1234567),
			opts: func() FormatOptions {
				opts := engine.Options()
				opts.Abbreviated = true
				return opts
			}(),
			want: []NumberPart{
				{PartInteger, "1"},
				{PartDecimalSeparator, "."},
				{PartFraction, "23"},
				{PartUnit, "m"},
			},
		},
		{
			name:  "abbreviated longest unit",
			value: Float(1500),
			opts: func() FormatOptions {
				opts := engine.Options()
				opts.Locale = "pt-BR"
				opts.Abbreviated = true
				return opts
			}(),
			want: []NumberPart{
				{PartInteger, "1"},
				{PartDecimalSeparator, ","},
				{PartFraction, "5"},
				{PartLiteral, " "},
				{PartUnit, "mil"},
			},
		},
		{
			name:  "percent with space",
			value: Float(0.5),
			opts: func() FormatOptions {
				opts := engine.Options()
				opts.Locale = "fr-FR"
				opts.Percentage = true
				opts.Decimals = 0
				return opts
			}(),
			want: []NumberPart{
				{PartInteger, "50"},
				{PartLiteral, " "},
				{PartPercentSign, "%"},
			},
		},
		{
			name:  "bytes",
			value: Float(1536),
			opts: func() FormatOptions {
				opts := engine.Options()
				opts.Bytes = true
				return opts
			}(),
			want: []NumberPart{
				{PartInteger, "1"},
				{PartDecimalSeparator, "."},
				{PartFraction, "50"},
				{PartLiteral, " "},
				{PartUnit, "KiB"},
			},
		},
		{
			name:  "mask",
			value: Int(12345678909),
			opts: func() FormatOptions {
				opts := engine.Options()
				opts.Locale = "pt-BR"
				opts.Mask = "cpf"
				return opts
			}(),
			want: []NumberPart{
				{PartInteger, "123"},
				{PartLiteral, "."},
				{PartInteger, "456"},
				{PartLiteral, "."},
				{PartInteger, "789"},
				{PartLiteral, "-"},
				{PartInteger, "09"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ToParts(tt.value, tt.opts)
			if err != nil {
				t.Fatalf("ToParts error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ToParts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToPartsConcatenatesToBeautify(t *testing.T) {
	engine := newTestEngine(t)
	values := []float64{0, -0.004, 7, 1234.5678, -987654.321, 1e9, 0.125}

	variants := []func(FormatOptions) FormatOptions{
		func(o FormatOptions) FormatOptions { return o },
		func(o FormatOptions) FormatOptions { o.Abbreviated = true; return o },
		func(o FormatOptions) FormatOptions { o.Bytes = true; return o },
		func(o FormatOptions) FormatOptions { o.Bytes = true; o.LongForm = true; o.Binary = false; return o },
		func(o FormatOptions) FormatOptions { o.Percentage = true; return o },
		func(o FormatOptions) FormatOptions { o.Currency = "EUR"; return o },
		func(o FormatOptions) FormatOptions { o.Currency = "USD"; o.ShowCode = true; return o },
	}

	for _, code := range BuiltinLocales() {
		for _, v := range values {
			for i, variant := range variants {
				opts := engine.Options()
				opts.Locale = code
				opts = variant(opts)

				formatted, err := engine.Beautify(Float(v), opts)
				if err != nil {
					t.Fatalf("Beautify(%v, %s, variant %d): %v", v, code, i, err)
				}
				parts, err := engine.ToParts(Float(v), opts)
				if err != nil {
					t.Fatalf("ToParts(%v, %s, variant %d): %v", v, code, i, err)
				}
				if joined := JoinParts(parts); joined != formatted {
					t.Fatalf("JoinParts = %q, Beautify = %q (%s, variant %d)", joined, formatted, code, i)
				}
			}
		}
	}
}
