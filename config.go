package numfmt

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config captures engine setup
type Config struct {
	DefaultLocale string
	Locales       []string
	Loader        Loader
	Resolver      FallbackResolver
	Logger        Logger
	Hooks         []FormatHook
	Decimals      int
	RoundingMode  RoundingMode

	localeFiles   []string
	localeDirs    []string
	registrations map[string]*LocaleConfig
	fallbacks     map[string][]string
	skipCommon    bool
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		DefaultLocale: "en-US",
		Decimals:      2,
		RoundingMode:  RoundHalfUp,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)
	cfg.Locales = normalizeLocales(cfg.Locales)

	if cfg.Logger == nil {
		cfg.Logger = NoOpLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the engine defaults.
func (cfg *Config) Validate() error {
	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.DefaultLocale, validation.Required),
		validation.Field(&cfg.Decimals, validation.Min(0), validation.Max(maxDecimals)),
		validation.Field(&cfg.RoundingMode, validation.Required, validation.By(func(value any) error {
			mode, _ := value.(RoundingMode)
			if !mode.Valid() {
				_, err := ParseRoundingMode(string(mode))
				return err
			}
			return nil
		})),
	)
	if err != nil {
		return invalidInput("engine config: %v", err)
	}
	return nil
}

// WithDefaultLocale sets the locale used when a call passes an empty code
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithLocales restricts the preloaded locales. Without it every locale the
// loader can list is registered up front.
func WithLocales(locales ...string) Option {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

// WithLoader replaces the built-in loader chain.
func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithLocaleFiles adds locale files (.json, .yaml, .yml, .toml) consulted
// before the built-in locales.
func WithLocaleFiles(paths ...string) Option {
	return func(c *Config) error {
		c.localeFiles = append(c.localeFiles, paths...)
		return nil
	}
}

// WithLocaleDir adds every locale file found directly under dir.
func WithLocaleDir(dir string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(dir) == "" {
			return nil
		}
		c.localeDirs = append(c.localeDirs, dir)
		return nil
	}
}

// WithLocale registers cfg under code when the engine is built.
func WithLocale(code string, locale *LocaleConfig) Option {
	return func(c *Config) error {
		if locale == nil {
			return invalidLocaleConfig(code, fmt.Errorf("config is nil"))
		}
		if c.registrations == nil {
			c.registrations = make(map[string]*LocaleConfig)
		}
		c.registrations[normalizeLocale(code)] = locale.Clone()
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		if c.fallbacks == nil {
			c.fallbacks = make(map[string][]string)
		}
		c.fallbacks[normalizeLocale(locale)] = append([]string(nil), fallbacks...)
		return nil
	}
}

func WithLogger(logger Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithDecimals sets the decimal count of Engine.Options.
func WithDecimals(decimals int) Option {
	return func(c *Config) error {
		c.Decimals = decimals
		return nil
	}
}

// WithRoundingMode sets the rounding mode of Engine.Options.
func WithRoundingMode(mode RoundingMode) Option {
	return func(c *Config) error {
		parsed, err := ParseRoundingMode(string(mode))
		if err != nil {
			return err
		}
		c.RoundingMode = parsed
		return nil
	}
}

// WithoutCommonLayer skips the shared masks and currencies merged under
// every locale.
func WithoutCommonLayer() Option {
	return func(c *Config) error {
		c.skipCommon = true
		return nil
	}
}

// BuildEngine wires the registry and preloads the configured locales.
func (cfg *Config) BuildEngine() (*Engine, error) {
	if cfg == nil {
		return nil, invalidInput("engine config is nil")
	}

	embedded := NewEmbeddedLoader()
	loader, err := cfg.buildLoader(embedded)
	if err != nil {
		return nil, err
	}

	registryOpts := []RegistryOption{
		WithRegistryLoader(loader),
		WithRegistryResolver(cfg.Resolver),
		WithRegistryLogger(cfg.Logger),
	}
	if !cfg.skipCommon {
		common, err := embedded.Common()
		if err != nil {
			return nil, err
		}
		registryOpts = append(registryOpts, WithRegistryCommon(common))
	}
	registry := NewRegistry(registryOpts...)

	preload := cfg.Locales
	if len(preload) == 0 {
		if lister, ok := loader.(interface{ Codes() []string }); ok {
			preload = lister.Codes()
		}
	}
	for _, code := range preload {
		if _, err := registry.Load(code); err != nil {
			return nil, err
		}
	}

	for _, code := range sortedKeys(cfg.registrations) {
		if err := registry.Register(code, cfg.registrations[code]); err != nil {
			return nil, err
		}
	}

	for _, code := range sortedKeys(cfg.fallbacks) {
		registry.SetFallback(code, cfg.fallbacks[code]...)
	}

	if _, err := registry.lookup(cfg.DefaultLocale); err != nil {
		if _, loadErr := registry.Load(cfg.DefaultLocale); loadErr != nil {
			return nil, err
		}
	}

	engine := &Engine{
		registry:      registry,
		logger:        cfg.Logger,
		hooks:         append([]FormatHook(nil), cfg.Hooks...),
		defaultLocale: cfg.DefaultLocale,
		decimals:      cfg.Decimals,
		mode:          cfg.RoundingMode,
	}
	cfg.Logger.Debug("engine ready", "default_locale", cfg.DefaultLocale, "locales", registry.Codes())
	return engine, nil
}

func (cfg *Config) buildLoader(embedded *EmbeddedLoader) (Loader, error) {
	if cfg.Loader != nil {
		return cfg.Loader, nil
	}

	chain := ChainLoader{}
	for _, dir := range cfg.localeDirs {
		dirLoader, err := NewDirLoader(dir)
		if err != nil {
			return nil, err
		}
		chain = append(chain, dirLoader)
	}
	if len(cfg.localeFiles) > 0 {
		chain = append(chain, NewFileLoader(cfg.localeFiles...))
	}
	chain = append(chain, embedded)
	return chain, nil
}
