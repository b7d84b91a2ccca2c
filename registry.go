package numfmt

import (
	"sort"
	"sync"
)

// Registry is the keyed store of locale configs. Reads are concurrent,
// registration takes the write lock and the last write wins.
type Registry struct {
	mu       sync.RWMutex
	locales  map[string]*LocaleConfig
	common   *LocaleConfig
	loader   Loader
	static   *StaticFallbackResolver
	resolver FallbackResolver
	logger   Logger
}

type registryConfig struct {
	common   *LocaleConfig
	loader   Loader
	resolver FallbackResolver
	logger   Logger
}

type RegistryOption func(*registryConfig)

// WithRegistryLoader sets the loader used by Registry.Load.
func WithRegistryLoader(loader Loader) RegistryOption {
	return func(rc *registryConfig) {
		rc.loader = loader
	}
}

// WithRegistryCommon sets the layer merged under every registered locale.
func WithRegistryCommon(common *LocaleConfig) RegistryOption {
	return func(rc *registryConfig) {
		rc.common = common.Clone()
	}
}

// WithRegistryResolver adds a resolver consulted after the explicit fallbacks.
func WithRegistryResolver(resolver FallbackResolver) RegistryOption {
	return func(rc *registryConfig) {
		rc.resolver = resolver
	}
}

func WithRegistryLogger(logger Logger) RegistryOption {
	return func(rc *registryConfig) {
		rc.logger = logger
	}
}

// NewRegistry builds an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	static := NewStaticFallbackResolver()
	resolvers := chainResolvers{static}
	if cfg.resolver != nil {
		resolvers = append(resolvers, cfg.resolver)
	}
	resolvers = append(resolvers, ParentFallbackResolver{})

	logger := cfg.logger
	if logger == nil {
		logger = NoOpLogger()
	}

	return &Registry{
		locales:  make(map[string]*LocaleConfig),
		common:   cfg.common,
		loader:   cfg.loader,
		static:   static,
		resolver: resolvers,
		logger:   logger,
	}
}

// Register stores a copy of cfg under code, replacing any previous entry.
// Empty separators are derived from CLDR data, missing units default to k/M/B/T
// and the common layer (shared masks and currencies) is merged underneath.
func (r *Registry) Register(code string, cfg *LocaleConfig) error {
	if r == nil {
		return invalidLocaleConfig(code, nil)
	}
	normalized := normalizeLocale(code)
	if cfg == nil {
		return invalidLocaleConfig(normalized, nil)
	}

	merged := layer(r.common, cfg)
	merged.Code = normalized
	if merged.Group == "" || merged.Decimal == "" {
		group, decimal := DeriveSeparators(normalized)
		if merged.Group == "" {
			merged.Group = group
		}
		if merged.Decimal == "" {
			merged.Decimal = decimal
		}
	}
	merged = merged.withDefaults()
	merged.Fallbacks = sanitizeFallbacks(normalized, merged.Fallbacks)

	if err := merged.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	_, replaced := r.locales[normalized]
	r.locales[normalized] = merged
	r.mu.Unlock()

	r.static.Set(normalized, merged.Fallbacks...)

	r.logger.Debug("locale registered", "locale", normalized, "replaced", replaced)
	return nil
}

// Has reports whether code is registered. Fallbacks are not consulted.
func (r *Registry) Has(code string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.locales[normalizeLocale(code)]
	return ok
}

// Lookup returns a copy of the config registered for code. When the code is
// not registered, explicit fallbacks and then BCP 47 parents are tried. The
// error lists every registered code.
func (r *Registry) Lookup(code string) (*LocaleConfig, error) {
	cfg, err := r.lookup(code)
	if err != nil {
		return nil, err
	}
	return cfg.Clone(), nil
}

// lookup returns the shared registered pointer; callers must not mutate it.
func (r *Registry) lookup(code string) (*LocaleConfig, error) {
	if r == nil {
		return nil, unsupportedLocale(code, nil)
	}
	normalized := normalizeLocale(code)

	r.mu.RLock()
	cfg, ok := r.locales[normalized]
	r.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	for _, candidate := range r.resolver.Resolve(normalized) {
		r.mu.RLock()
		cfg, ok = r.locales[candidate]
		r.mu.RUnlock()
		if ok {
			return cfg, nil
		}
	}

	return nil, unsupportedLocale(code, r.Codes())
}

// Load asks the configured loader for code and registers the result. Codes
// that are already registered are returned without reloading.
func (r *Registry) Load(code string) (*LocaleConfig, error) {
	if r == nil {
		return nil, unsupportedLocale(code, nil)
	}
	normalized := normalizeLocale(code)

	r.mu.RLock()
	cfg, ok := r.locales[normalized]
	r.mu.RUnlock()
	if ok {
		return cfg.Clone(), nil
	}

	if r.loader == nil {
		return nil, unsupportedLocale(code, r.Codes())
	}

	loaded, err := r.loader.Load(normalized)
	if err != nil {
		return nil, err
	}
	if err := r.Register(normalized, loaded); err != nil {
		return nil, err
	}
	r.logger.Debug("locale loaded", "locale", normalized)
	return r.Lookup(normalized)
}

// SetFallback replaces the explicit fallback chain of locale. Explicit chains
// are tried before the BCP 47 parents.
func (r *Registry) SetFallback(locale string, fallbacks ...string) {
	if r == nil {
		return
	}
	normalized := normalizeLocale(locale)
	r.static.Set(normalized, sanitizeFallbacks(normalized, fallbacks)...)
}

// Codes returns every registered code, sorted.
func (r *Registry) Codes() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.locales))
	for code := range r.locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Catalog returns an immutable snapshot of the registered locales.
func (r *Registry) Catalog() *LocaleCatalog {
	if r == nil {
		return newLocaleCatalog(nil)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newLocaleCatalog(r.locales)
}
