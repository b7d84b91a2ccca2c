package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newLocalesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List the registered locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := a.engine.Registry().Catalog()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s%s%s%s\n",
				a.styles.header.Render(pad("CODE", 8)),
				a.styles.header.Render(pad("NAME", 28)),
				a.styles.header.Render(pad("SEPARATORS", 12)),
				a.styles.header.Render("CURRENCIES"),
			)
			for _, meta := range catalog.All() {
				name := meta.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(out, "%s%s%s%s\n",
					a.styles.code.Render(pad(meta.Code, 8)),
					a.styles.muted.Render(pad(name, 28)),
					pad(fmt.Sprintf("%q %q", meta.Group, meta.Decimal), 12),
					strings.Join(meta.Currencies, " "),
				)
			}
			return nil
		},
	}
	cmd.AddCommand(newLocalesShowCommand(a), newGenerateCommand(a))
	return cmd
}

func newLocalesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <locale>",
		Short: "Print the resolved configuration of a locale as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.engine.Registry().Has(args[0]) {
				if err := a.engine.LoadLocale(args[0]); err != nil {
					a.logger.Debug("locale not loaded, trying fallbacks", "locale", args[0], "error", err)
				}
			}
			cfg, err := a.engine.Registry().Lookup(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode %s: %w", cfg.Code, err)
			}
			return enc.Close()
		},
	}
}

// pad left-aligns s in a column of width runes, leaving one space when s is
// wider.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s + " "
}
