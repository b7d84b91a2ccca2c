package numfmt

import (
	"errors"
	"sync"
)

// Engine formats, parses and speaks numbers for the locales in its registry.
// It is safe for concurrent use; locales may be registered while other
// goroutines format.
type Engine struct {
	registry      *Registry
	logger        Logger
	hooks         []FormatHook
	defaultLocale string
	decimals      int
	mode          RoundingMode
}

// NewEngine builds an engine. With no options every built-in locale is
// loaded and en-US is the default.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildEngine()
}

var (
	defaultEngine     *Engine
	defaultEngineErr  error
	defaultEngineOnce sync.Once
)

// Default returns the shared engine over the built-in locales.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = NewEngine()
	})
	if defaultEngineErr != nil {
		panic(defaultEngineErr)
	}
	return defaultEngine
}

// Registry exposes the locale registry backing the engine.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// DefaultLocale is the locale used for calls that pass an empty code.
func (e *Engine) DefaultLocale() string {
	return e.defaultLocale
}

// Locales lists the registered locale codes.
func (e *Engine) Locales() []string {
	return e.registry.Codes()
}

// RegisterLocale adds or replaces a locale at runtime.
func (e *Engine) RegisterLocale(code string, cfg *LocaleConfig) error {
	return e.registry.Register(code, cfg)
}

// LoadLocale registers code through the configured loader.
func (e *Engine) LoadLocale(code string) error {
	_, err := e.registry.Load(code)
	return err
}

// Options returns FormatOptions seeded with the engine defaults.
func (e *Engine) Options() FormatOptions {
	opts := DefaultFormatOptions()
	opts.Locale = e.defaultLocale
	opts.Decimals = e.decimals
	opts.Mode = e.mode
	return opts
}

// FormatNumber renders an already rounded value with the separators of
// locale. StripZeros drops trailing fraction zeros and a dangling separator.
func (e *Engine) FormatNumber(v Value, decimals int, locale string, stripZeros bool) (string, error) {
	cfg, err := e.locale(locale)
	if err != nil {
		return "", err
	}
	return formatValue(v, decimals, cfg, stripZeros)
}

// Abbreviate replaces formatted with a rescaled, unit-suffixed rendering of v
// when v is at least one thousand and the locale has a unit for its order.
func (e *Engine) Abbreviate(v Value, formatted, locale string) (string, error) {
	cfg, err := e.locale(locale)
	if err != nil {
		return "", err
	}
	return abbreviate(v, formatted, cfg), nil
}

// locale resolves code to a registered config: exact match, then the loader,
// then fallbacks. An empty code selects the default locale.
func (e *Engine) locale(code string) (*LocaleConfig, error) {
	if code == "" {
		code = e.defaultLocale
	}
	if !e.registry.Has(code) {
		if _, err := e.registry.Load(code); err != nil && !errors.Is(err, ErrUnsupportedLocale) {
			e.logger.Warn("locale load failed", "locale", code, "error", err)
		}
	}
	return e.registry.lookup(code)
}
