package numfmt

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var builtinLocaleFS embed.FS

const commonLocaleFile = "common"

// Loader produces the config for a locale code on demand.
type Loader interface {
	Load(code string) (*LocaleConfig, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func(code string) (*LocaleConfig, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load(code string) (*LocaleConfig, error) {
	return fn(code)
}

// ChainLoader tries each loader in order and returns the first hit. A loader
// miss is any error wrapping ErrUnsupportedLocale; other errors stop the chain.
type ChainLoader []Loader

// Codes lists every code the chained loaders can serve.
func (c ChainLoader) Codes() []string {
	var codes []string
	for _, loader := range c {
		if lister, ok := loader.(interface{ Codes() []string }); ok {
			codes = append(codes, lister.Codes()...)
		}
	}
	return normalizeLocales(codes)
}

func (c ChainLoader) Load(code string) (*LocaleConfig, error) {
	var tried []string
	for _, loader := range c {
		if loader == nil {
			continue
		}
		cfg, err := loader.Load(code)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrUnsupportedLocale) {
			return nil, err
		}
		if lister, ok := loader.(interface{ Codes() []string }); ok {
			tried = append(tried, lister.Codes()...)
		}
	}
	return nil, unsupportedLocale(code, normalizeLocales(tried))
}

// EmbeddedLoader serves the locale files compiled into the package.
type EmbeddedLoader struct {
	fsys fs.FS
	dir  string
}

// NewEmbeddedLoader returns a loader over the built-in locales.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtinLocaleFS, dir: "locales"}
}

// BuiltinLocales lists the codes shipped with the package.
func BuiltinLocales() []string {
	return NewEmbeddedLoader().Codes()
}

func (l *EmbeddedLoader) Codes() []string {
	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		if entry.IsDir() || name == commonLocaleFile {
			continue
		}
		codes = append(codes, name)
	}
	sort.Strings(codes)
	return codes
}

func (l *EmbeddedLoader) Load(code string) (*LocaleConfig, error) {
	normalized := normalizeLocale(code)
	if normalized == "" || normalized == commonLocaleFile {
		return nil, unsupportedLocale(code, l.Codes())
	}
	name := path.Join(l.dir, normalized+".yaml")
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, unsupportedLocale(code, l.Codes())
		}
		return nil, fmt.Errorf("numfmt: read %s: %w", name, err)
	}
	cfg, err := decodeLocaleFile(name, data)
	if err != nil {
		return nil, fmt.Errorf("numfmt: decode %s: %w", name, err)
	}
	if cfg.Code == "" {
		cfg.Code = normalized
	}
	return cfg, nil
}

// Common returns the shared layer merged under every locale.
func (l *EmbeddedLoader) Common() (*LocaleConfig, error) {
	name := path.Join(l.dir, commonLocaleFile+".yaml")
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("numfmt: read %s: %w", name, err)
	}
	cfg, err := decodeLocaleFile(name, data)
	if err != nil {
		return nil, fmt.Errorf("numfmt: decode %s: %w", name, err)
	}
	return cfg, nil
}

// FileLoader reads locale configs from .json, .yaml, .yml or .toml files.
// Each file holds one locale; the code comes from the file content or, when
// absent, from the file name.
type FileLoader struct {
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// NewDirLoader collects every supported locale file directly under dir.
func NewDirLoader(dir string) (*FileLoader, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("numfmt: read dir %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml", ".toml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return NewFileLoader(paths...), nil
}

// LoadAll decodes every configured file, keyed by normalized locale code.
func (l *FileLoader) LoadAll() (map[string]*LocaleConfig, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("numfmt: no loader paths configured")
	}

	out := make(map[string]*LocaleConfig, len(l.paths))
	for _, p := range l.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("numfmt: read %s: %w", p, err)
		}

		cfg, err := decodeLocaleFile(p, data)
		if err != nil {
			return nil, fmt.Errorf("numfmt: decode %s: %w", p, err)
		}
		code := normalizeLocale(cfg.Code)
		if code == "" {
			code = normalizeLocale(strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
		}
		cfg.Code = code
		out[code] = cfg
	}
	return out, nil
}

func (l *FileLoader) Codes() []string {
	all, err := l.LoadAll()
	if err != nil {
		return nil
	}
	return sortedKeys(all)
}

func (l *FileLoader) Load(code string) (*LocaleConfig, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, unsupportedLocale(code, nil)
	}
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	cfg, ok := all[normalizeLocale(code)]
	if !ok {
		return nil, unsupportedLocale(code, sortedKeys(all))
	}
	return cfg, nil
}

func decodeLocaleFile(p string, data []byte) (*LocaleConfig, error) {
	ext := strings.ToLower(filepath.Ext(p))

	var cfg LocaleConfig
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}
	return &cfg, nil
}
