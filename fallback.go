package numfmt

import "sync"

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicit fallback chains keyed by locale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the fallback chain for locale. An empty chain removes it.
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if s == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	chain := sanitizeFallbacks(locale, fallbacks)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	if len(chain) == 0 {
		delete(s.chains, locale)
		return
	}
	s.chains[locale] = chain
}

func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain := s.chains[normalizeLocale(locale)]
	if len(chain) == 0 {
		return nil
	}
	return append([]string(nil), chain...)
}

// ParentFallbackResolver derives fallbacks from the BCP 47 parent chain ("de-CH-1996" -> "de-CH" -> "de").
type ParentFallbackResolver struct{}

func (ParentFallbackResolver) Resolve(locale string) []string {
	return localeParentChain(normalizeLocale(locale))
}

// chainResolvers concatenates the chains of several resolvers, keeping first occurrences.
type chainResolvers []FallbackResolver

func (c chainResolvers) Resolve(locale string) []string {
	var out []string
	seen := map[string]struct{}{normalizeLocale(locale): {}}
	for _, resolver := range c {
		if resolver == nil {
			continue
		}
		for _, candidate := range resolver.Resolve(locale) {
			if _, ok := seen[candidate]; ok {
				continue
			}
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
	}
	return out
}
