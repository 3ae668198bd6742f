package diagnostics

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

// Locale names supported by the catalog.
const (
	Japanese            = "japanese"
	SimplifiedChinese   = "simplified_chinese"
	TraditionalChinese  = "traditional_chinese"
	English             = "english"
)

//go:embed locales.yaml
var localesYAML []byte

// catalog maps locale -> message key -> template. Loaded once from an
// embedded YAML file via gopkg.in/yaml.v3.
var catalog map[string]map[string]string

func init() {
	catalog = make(map[string]map[string]string)
	if err := yaml.Unmarshal(localesYAML, &catalog); err != nil {
		panic("diagnostics: malformed locales.yaml: " + err.Error())
	}
}

// Message looks up a localized template for key in locale, falling back
// to English if the locale is unknown. Every locale here carries its
// own text for every key — no key is allowed to silently fall through
// to English text.
func Message(locale, key string) string {
	if m, ok := catalog[locale]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return catalog[English][key]
}

// SupportedLocales lists every locale the catalog was built with.
func SupportedLocales() []string {
	return []string{English, Japanese, SimplifiedChinese, TraditionalChinese}
}
