package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "NUMFMT_"

// cliConfig holds the defaults read from NUMFMT_* variables. Flags set on the
// command line win over these values.
type cliConfig struct {
	Locale    string `env:"LOCALE" envDefault:"en-US"`
	Decimals  int    `env:"DECIMALS" envDefault:"2"`
	Rounding  string `env:"ROUNDING" envDefault:"HALF_UP"`
	LocaleDir string `env:"LOCALE_DIR"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	NoColor   bool   `env:"NO_COLOR"`
}

// loadConfig parses environ, or the process environment when environ is nil.
// Variables from envFile fill the gaps without overriding what is already set;
// a missing envFile is not an error.
func loadConfig(envFile string, environ map[string]string) (cliConfig, error) {
	vars := make(map[string]string)
	if environ == nil {
		environ = envMap(os.Environ())
	}
	for k, v := range environ {
		vars[k] = v
	}

	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cliConfig{}, fmt.Errorf("read %s: %w", envFile, err)
		default:
			for k, v := range values {
				if _, ok := vars[k]; !ok {
					vars[k] = v
				}
			}
		}
	}

	var cfg cliConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix, Environment: vars}); err != nil {
		return cliConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func envMap(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}
