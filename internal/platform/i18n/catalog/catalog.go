// Package catalog loads the console's translated strings from locale files
// and registers them with x/text/message.
//
// Files live at locales/<locale>/<namespace>.yaml and hold a locale, a
// namespace, and a flat messages map of keys to values.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every key must exist in.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages.
type Bundle struct {
	locales map[string]map[string]string
	// namespaces records which keys each locale/namespace file declared.
	namespaces map[string]map[string][]string
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded bundle. It is registered with
// x/text/message at init.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads every locales/*/*.yaml file in catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	bundle := &Bundle{
		locales:    map[string]map[string]string{},
		namespaces: map[string]map[string][]string{},
	}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		parsed, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, parsed); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	if file.Locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.Locale, localeFromPath)
	}
	if file.Namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, file.Namespace, namespaceFromPath)
	}
	if _, err := language.Parse(file.Locale); err != nil {
		return fmt.Errorf("catalog %s: locale %q: %w", p, file.Locale, err)
	}

	messages, ok := b.locales[file.Locale]
	if !ok {
		messages = map[string]string{}
		b.locales[file.Locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, file.Locale)
		}
		messages[key] = value
	}
	byNamespace, ok := b.namespaces[file.Locale]
	if !ok {
		byNamespace = map[string][]string{}
		b.namespaces[file.Locale] = byNamespace
	}
	byNamespace[file.Namespace] = append(byNamespace[file.Namespace], slices.Sorted(maps.Keys(file.Messages))...)
	return nil
}

// Register installs every message with x/text/message, under both the full
// tag and its base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		messages := b.locales[locale]
		for _, key := range slices.Sorted(maps.Keys(messages)) {
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, messages[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// Message returns one value, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if value, ok := b.locales[strings.TrimSpace(locale)][key]; ok {
		return value, true
	}
	value, ok := b.locales[BaseLocale][key]
	return value, ok
}

// NamespaceMessagesWithFallback returns the messages of one namespace for
// locale, or for the base locale when locale does not declare the namespace.
// The returned locale is the one the messages came from.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	if b == nil {
		return BaseLocale, map[string]string{}
	}
	locale = strings.TrimSpace(locale)
	if _, ok := b.namespaces[locale][namespace]; !ok {
		locale = BaseLocale
	}
	out := map[string]string{}
	for _, key := range b.namespaces[locale][namespace] {
		out[key] = b.locales[locale][key]
	}
	return locale, out
}

// MissingKeys lists keys present in the base locale but absent from locale.
func (b *Bundle) MissingKeys(locale string) []string {
	if b == nil {
		return nil
	}
	target := b.locales[strings.TrimSpace(locale)]
	var missing []string
	for key := range b.locales[BaseLocale] {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}

func parseCatalogFile(data []byte) (catalogFile, error) {
	var out catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return catalogFile{}, err
	}

	switch {
	case out.Locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case out.Namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(out.Messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return out, nil
}
