// Package i18n serves the per-language UI string table.
package i18n

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"doclens/pkg/models"
)

//go:embed strings.yaml
var stringsYAML []byte

var (
	loadOnce sync.Once
	tables   map[models.Language]map[string]string
	loadErr  error
)

// Parse decodes a string table document keyed by language name.
func Parse(data []byte) (map[models.Language]map[string]string, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse string table: %w", err)
	}

	out := make(map[models.Language]map[string]string, len(raw))
	for name, entries := range raw {
		lang, ok := models.ParseLanguage(name)
		if !ok || lang == models.LanguageAuto {
			return nil, fmt.Errorf("string table: unknown language %q", name)
		}
		out[lang] = entries
	}
	if _, ok := out[models.LanguageEnglish]; !ok {
		return nil, fmt.Errorf("string table: English entries are required")
	}
	return out, nil
}

func load() (map[models.Language]map[string]string, error) {
	loadOnce.Do(func() {
		tables, loadErr = Parse(stringsYAML)
	})
	return tables, loadErr
}

// MustLoad panics if the embedded table is malformed. Call it at startup.
func MustLoad() {
	if _, err := load(); err != nil {
		panic(err)
	}
}

// Lookup returns the string for key in lang, falling back to English and
// then to the key itself.
func Lookup(lang models.Language, key string) string {
	t, err := load()
	if err != nil {
		return key
	}
	if s, ok := t[lang][key]; ok && s != "" {
		return s
	}
	if s, ok := t[models.LanguageEnglish][key]; ok {
		return s
	}
	return key
}

// Table returns every string for lang with English filling the gaps.
func Table(lang models.Language) map[string]string {
	t, err := load()
	if err != nil {
		return map[string]string{}
	}

	out := make(map[string]string, len(t[models.LanguageEnglish]))
	for k, v := range t[models.LanguageEnglish] {
		out[k] = v
	}
	for k, v := range t[lang] {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Disclaimer returns the sector disclaimer in lang.
func Disclaimer(lang models.Language, sector models.Sector) string {
	return Lookup(lang, "disclaimer."+string(sector))
}
