package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

const DefaultLang = LangEN

var Languages = map[Language]string{
	LangEN: "English",
	LangZH: "中文",
}

func IsSupported(lang Language) bool {
	_, ok := Languages[lang]
	return ok
}

// Translator resolves UI string keys with a lang -> default -> key fallback
// chain. Tables are immutable after load.
type Translator struct {
	tables map[Language]map[string]string
}

// NewTranslator loads every embedded locale table.
func NewTranslator() (*Translator, error) {
	tables := make(map[Language]map[string]string, len(Languages))

	for lang := range Languages {
		data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", lang, err)
		}

		table := make(map[string]string)
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", lang, err)
		}
		tables[lang] = table
	}

	return &Translator{tables: tables}, nil
}

// T returns the string for key in lang, falling back to the default language
// and finally to the key itself.
func (t *Translator) T(lang Language, key string) string {
	if table, ok := t.tables[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := t.tables[DefaultLang][key]; ok {
		return s
	}
	return key
}

// Table returns the full string table for lang merged over the default
// language, for bulk delivery to the page.
func (t *Translator) Table(lang Language) map[string]string {
	merged := make(map[string]string, len(t.tables[DefaultLang]))
	for k, v := range t.tables[DefaultLang] {
		merged[k] = v
	}
	if lang != DefaultLang {
		for k, v := range t.tables[lang] {
			merged[k] = v
		}
	}
	return merged
}

// LangFromPath extracts the language from a URL path prefix; paths without a
// recognized prefix resolve to the default language.
func LangFromPath(path string) Language {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	if len(parts) > 0 && IsSupported(Language(parts[0])) {
		return Language(parts[0])
	}
	return DefaultLang
}

// LocalizedPath prefixes path with the language segment; the default
// language stays unprefixed.
func LocalizedPath(path string, lang Language) string {
	if lang == DefaultLang {
		return path
	}
	return "/" + string(lang) + path
}
