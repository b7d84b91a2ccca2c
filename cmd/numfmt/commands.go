package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-numfmt"
	"github.com/spf13/cobra"
)

type formatFlags struct {
	decimals     int
	rounding     string
	stripZeros   bool
	abbreviated  bool
	currency     string
	showCode     bool
	hideSymbol   bool
	mask         string
	bytes        bool
	decimalUnits bool
	longForm     bool
	percent      bool
	raw          bool
}

func bindFormatFlags(cmd *cobra.Command, f *formatFlags) {
	flags := cmd.Flags()
	flags.IntVarP(&f.decimals, "decimals", "d", 2, "fraction digits (default $NUMFMT_DECIMALS or 2)")
	flags.StringVar(&f.rounding, "rounding", "", "rounding mode: UP, DOWN, CEIL, FLOOR, HALF_UP, HALF_DOWN or HALF_EVEN")
	flags.BoolVar(&f.stripZeros, "strip-zeros", false, "drop trailing fraction zeros")
	flags.BoolVarP(&f.abbreviated, "abbreviated", "a", false, "abbreviate with the locale units (1.5k)")
	flags.StringVarP(&f.currency, "currency", "c", "", "ISO 4217 currency code")
	flags.BoolVar(&f.showCode, "code", false, "print the currency code instead of the symbol")
	flags.BoolVar(&f.hideSymbol, "no-symbol", false, "omit the currency symbol")
	flags.StringVarP(&f.mask, "mask", "m", "", "mask name or '#' pattern")
	flags.BoolVarP(&f.bytes, "bytes", "b", false, "format as a byte size")
	flags.BoolVar(&f.decimalUnits, "si", false, "use 1000-based byte units (KB) instead of KiB")
	flags.BoolVar(&f.longForm, "long", false, "spell byte units out (Kibibytes)")
	flags.BoolVarP(&f.percent, "percent", "p", false, "format as a percentage")
	flags.BoolVar(&f.raw, "raw", false, "with --percent, the value is already a percentage")
}

func (f formatFlags) options(cmd *cobra.Command, a *app) (numfmt.FormatOptions, error) {
	opts := a.engine.Options()
	if cmd.Flags().Changed("decimals") {
		opts.Decimals = f.decimals
	}
	if f.rounding != "" {
		mode, err := numfmt.ParseRoundingMode(f.rounding)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	opts.StripZeros = f.stripZeros
	opts.Abbreviated = f.abbreviated
	opts.Currency = f.currency
	opts.ShowCode = f.showCode
	opts.ShowSymbol = !f.hideSymbol
	opts.Mask = f.mask
	opts.Bytes = f.bytes
	opts.Binary = !f.decimalUnits
	opts.LongForm = f.longForm
	opts.Percentage = f.percent
	opts.Multiply = !f.raw
	return opts, opts.Validate()
}

func parseValues(inputs []string) ([]numfmt.Value, error) {
	values := make([]numfmt.Value, 0, len(inputs))
	for _, in := range inputs {
		v, err := numfmt.ValueOf(in)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func newFormatCommand(a *app) *cobra.Command {
	var f formatFlags
	var tabular bool

	cmd := &cobra.Command{
		Use:   "format [value...]",
		Short: "Format numbers for a locale",
		Example: `  numfmt format 1234.5678
  numfmt format -l pt-BR -c BRL 1234.5
  numfmt format -a 1500000
  numfmt format -b --si --long 3000000
  printf '1.5\n1234.5\n' | numfmt format --tabular`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(args)
			if err != nil {
				return err
			}
			opts, err := f.options(cmd, a)
			if err != nil {
				return err
			}
			values, err := parseValues(inputs)
			if err != nil {
				return err
			}

			var lines []string
			if tabular {
				lines, err = a.engine.FormatTabular(values, opts)
				if err != nil {
					return err
				}
			} else {
				for _, v := range values {
					out, err := a.engine.Beautify(v, opts)
					if err != nil {
						return err
					}
					lines = append(lines, out)
				}
			}

			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	bindFormatFlags(cmd, &f)
	cmd.Flags().BoolVar(&tabular, "tabular", false, "pad results so decimal separators line up")
	return cmd
}

func newParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "parse [text...]",
		Short:   "Read formatted numbers back into plain numbers",
		Example: `  numfmt parse '$1,234.56' '(1.5k)'
  numfmt parse -l pt-BR 'R$ 1.234,56'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(args)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				n := a.engine.Parse(in, a.cfg.Locale)
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(n, 'f', -1, 64))
			}
			return nil
		},
	}
}

func newSpeakCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "speak [text...]",
		Short:   "Spell formatted numbers out in words",
		Example: `  numfmt speak -l pt-BR 'R$ 12M'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(args)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				words, err := a.engine.ToSpeech(in, a.cfg.Locale)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), words)
			}
			return nil
		},
	}
}

func newPartsCommand(a *app) *cobra.Command {
	var f formatFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parts [value...]",
		Short: "Split formatted numbers into typed parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(args)
			if err != nil {
				return err
			}
			opts, err := f.options(cmd, a)
			if err != nil {
				return err
			}
			values, err := parseValues(inputs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, v := range values {
				parts, err := a.engine.ToParts(v, opts)
				if err != nil {
					return err
				}
				if asJSON {
					data, err := json.Marshal(parts)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(data))
					continue
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, a.styles.header.Render(numfmt.JoinParts(parts)))
				for _, part := range parts {
					fmt.Fprintf(out, "  %s %q\n", a.styles.kind.Render(pad(string(part.Kind), 16)), part.Text)
				}
			}
			return nil
		},
	}
	bindFormatFlags(cmd, &f)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON array per value")
	return cmd
}

func newMaskCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mask <value> <mask>",
		Short: "Lay the digits of a value over a named mask or a '#' pattern",
		Example: `  numfmt mask -l pt-BR 12345678909 cpf
  numfmt mask 5551234567 '(###) ###-####'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := a.engine.Mask(a.cfg.Locale, args[1])
			if err != nil {
				return err
			}
			out, err := numfmt.ApplyMask(args[0], pattern)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newDurationCommand(a *app) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "duration [duration...]",
		Short: "Spell durations in days, hours, minutes and seconds",
		Long:  "Accepts Go durations (90m, 1h30m) or plain seconds (5400).",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(args)
			if err != nil {
				return err
			}
			style := numfmt.DurationShort
			if long {
				style = numfmt.DurationLong
			}
			for _, in := range inputs {
				d, err := parseDuration(in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), numfmt.FormatDuration(d, style))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "spell units out (1 hour 30 minutes)")
	return cmd
}

func parseDuration(in string) (time.Duration, error) {
	in = strings.TrimSpace(in)
	if seconds, err := strconv.ParseFloat(in, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(in)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", in)
	}
	return d, nil
}
