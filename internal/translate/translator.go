// Package translate serves the per-language key→string catalogs the
// storefront uses to rewrite tagged text. Content is whatever the
// deployment ships; this package only loads and serves it.
package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
)

// Translator holds every loaded language catalog, keyed by upper-case code.
type Translator struct {
	catalogs map[string]map[string]string
}

// LoadDir reads every `<lang>.json` file in dir into a Translator. A
// missing or empty directory yields a Translator with no languages, not an
// error: translation is an optional collaborator.
func LoadDir(dir string) (*Translator, error) {
	tr := &Translator{catalogs: make(map[string]map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return tr, nil
		}
		return nil, fmt.Errorf("read translations dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.ToUpper(strings.TrimSuffix(name, ".json"))

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read translation file %s: %w", name, err)
		}
		var catalog map[string]string
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("parse translation file %s: %w", name, err)
		}
		tr.catalogs[lang] = catalog
	}

	return tr, nil
}

// Languages lists the loaded language codes, sorted.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.catalogs))
	for lang := range t.catalogs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Catalog returns the key→string mapping for lang (case-insensitive).
func (t *Translator) Catalog(lang string) (map[string]string, error) {
	catalog, ok := t.catalogs[strings.ToUpper(strings.TrimSpace(lang))]
	if !ok {
		return nil, apperrors.NotFound("translation catalog", lang)
	}
	return catalog, nil
}

// Lookup resolves one key in lang, falling back to the key itself so an
// untranslated string stays readable.
func (t *Translator) Lookup(lang, key string) string {
	catalog, err := t.Catalog(lang)
	if err != nil {
		return key
	}
	if v, ok := catalog[key]; ok && v != "" {
		return v
	}
	return key
}
