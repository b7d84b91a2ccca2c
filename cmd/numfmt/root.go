package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-numfmt"
	"github.com/spf13/cobra"
)

type app struct {
	stdin   io.Reader
	environ map[string]string

	envFile   string
	locale    string
	localeDir string
	logLevel  string
	noColor   bool

	cfg    cliConfig
	engine *numfmt.Engine
	logger numfmt.Logger
	styles styles
}

// newApp reads values from stdin when a command gets no arguments. A nil
// environ means the process environment.
func newApp(stdin io.Reader, environ map[string]string) *app {
	return &app{stdin: stdin, environ: environ}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "numfmt",
		Short: "Format, parse and speak numbers for a locale",
		Long: `numfmt renders numbers the way people read them: grouped digits,
abbreviations ("1.5k", "1,23 mi"), currencies, byte sizes, percentages and
masks. It also reads formatted text back into numbers and spells it out.

Defaults come from NUMFMT_LOCALE, NUMFMT_DECIMALS, NUMFMT_ROUNDING,
NUMFMT_LOCALE_DIR, NUMFMT_LOG_LEVEL, NUMFMT_LOG_FORMAT and NUMFMT_NO_COLOR,
optionally set in a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")
	flags.StringVarP(&a.locale, "locale", "l", "", "locale code (default $NUMFMT_LOCALE or en-US)")
	flags.StringVar(&a.localeDir, "locale-dir", "", "directory with extra locale files (.json, .yaml, .yml, .toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable styled output")

	root.AddCommand(
		newFormatCommand(a),
		newParseCommand(a),
		newSpeakCommand(a),
		newPartsCommand(a),
		newMaskCommand(a),
		newDurationCommand(a),
		newLocalesCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.envFile, a.environ)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = a.locale
	}
	if flags.Changed("locale-dir") {
		cfg.LocaleDir = a.localeDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.noColor
	}
	a.cfg = cfg

	logger, err := numfmt.NewGoLogger(numfmt.LoggerConfig{
		Name:   "numfmt",
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.styles = newStyles(cmd.OutOrStdout(), cfg.NoColor)

	engine, err := numfmt.NewEngine(
		numfmt.WithDefaultLocale(cfg.Locale),
		numfmt.WithLocaleDir(cfg.LocaleDir),
		numfmt.WithDecimals(cfg.Decimals),
		numfmt.WithRoundingMode(numfmt.RoundingMode(cfg.Rounding)),
		numfmt.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	a.engine = engine
	logger.Debug("cli ready", "locale", cfg.Locale, "locale_dir", cfg.LocaleDir)
	return nil
}

// inputs returns args, or the non-empty lines of stdin when args is empty.
func (a *app) inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if a.stdin == nil {
		return nil, errors.New("no input: pass values as arguments or on stdin")
	}

	var lines []string
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(lines) == 0 {
		return nil, errors.New("no input: pass values as arguments or on stdin")
	}
	return lines, nil
}
