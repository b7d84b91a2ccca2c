package numfmt

import "sort"

// LocaleCatalog is an immutable snapshot of registered locale metadata.
type LocaleCatalog struct {
	locales  map[string]LocaleMetadata
	allCodes []string
}

// LocaleMetadata summarises one registered locale.
type LocaleMetadata struct {
	Code       string
	Name       string
	Group      string
	Decimal    string
	Currencies []string
	Masks      []string
	Fallbacks  []string
	HasSpeech  bool
}

func newLocaleCatalog(configs map[string]*LocaleConfig) *LocaleCatalog {
	catalog := &LocaleCatalog{
		locales: make(map[string]LocaleMetadata, len(configs)),
	}
	for code, cfg := range configs {
		if cfg == nil {
			continue
		}
		catalog.locales[code] = LocaleMetadata{
			Code:       code,
			Name:       cfg.Name,
			Group:      cfg.Group,
			Decimal:    cfg.Decimal,
			Currencies: sortedKeys(cfg.Currencies),
			Masks:      sortedKeys(cfg.Masks),
			Fallbacks:  append([]string(nil), cfg.Fallbacks...),
			HasSpeech:  cfg.Speech != nil,
		}
		catalog.allCodes = append(catalog.allCodes, code)
	}
	sort.Strings(catalog.allCodes)
	return catalog
}

// Codes returns every locale in the catalog, sorted alphabetically.
func (c *LocaleCatalog) Codes() []string {
	if c == nil || len(c.allCodes) == 0 {
		return nil
	}
	out := make([]string, len(c.allCodes))
	copy(out, c.allCodes)
	return out
}

// Has reports whether the locale exists in the catalog.
func (c *LocaleCatalog) Has(locale string) bool {
	if c == nil {
		return false
	}
	_, ok := c.locales[normalizeLocale(locale)]
	return ok
}

// DisplayName returns the human-friendly name for the requested locale.
func (c *LocaleCatalog) DisplayName(locale string) string {
	meta, _ := c.Locale(locale)
	return meta.Name
}

// Locale returns the metadata for a locale.
func (c *LocaleCatalog) Locale(locale string) (LocaleMetadata, bool) {
	if c == nil {
		return LocaleMetadata{}, false
	}
	meta, ok := c.locales[normalizeLocale(locale)]
	if !ok {
		return LocaleMetadata{}, false
	}
	meta.Currencies = append([]string(nil), meta.Currencies...)
	meta.Masks = append([]string(nil), meta.Masks...)
	meta.Fallbacks = append([]string(nil), meta.Fallbacks...)
	return meta, true
}

// All returns the metadata of every locale ordered by code.
func (c *LocaleCatalog) All() []LocaleMetadata {
	if c == nil {
		return nil
	}
	out := make([]LocaleMetadata, 0, len(c.allCodes))
	for _, code := range c.allCodes {
		meta, _ := c.Locale(code)
		out = append(out, meta)
	}
	return out
}
