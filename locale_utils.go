package numfmt

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeParentChain returns the parents of locale, closest first.
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{locale: {}}

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			break
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

// normalizeLocale trims, swaps underscores for hyphens and canonicalises
// casing when the code is a well formed BCP 47 tag ("pt_br" -> "pt-BR").
func normalizeLocale(locale string) string {
	trimmed := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if canonical := tag.String(); canonical != "" && canonical != "und" && strings.EqualFold(canonical, trimmed) {
		return canonical
	}
	return trimmed
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// sanitizeFallbacks normalizes a fallback list, dropping blanks, duplicates and self references.
func sanitizeFallbacks(locale string, fallbacks []string) []string {
	if len(fallbacks) == 0 {
		return nil
	}

	seen := map[string]struct{}{
		normalizeLocale(locale): {},
	}

	result := make([]string, 0, len(fallbacks))
	for _, candidate := range fallbacks {
		normalized := normalizeLocale(candidate)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
