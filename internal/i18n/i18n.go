// Package i18n loads flat JSON message catalogs and negotiates the UI language.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Bundle holds one message catalog per loaded language.
type Bundle struct {
	fallback string
	// langs is in matcher order with the fallback first.
	langs    []string
	catalogs map[string]map[string]string
	matcher  language.Matcher
}

// Load reads <dir>/<lang>.json for the fallback and every supported language. A missing
// fallback file is an error; other missing files are skipped.
func Load(dir, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"en", "hi"}
	}
	b := &Bundle{fallback: normalize(fallback), catalogs: make(map[string]map[string]string)}

	var tags []language.Tag
	for _, lang := range candidates(b.fallback, supported) {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		msgs, err := readCatalog(filepath.Join(dir, lang+".json"))
		switch {
		case err == nil:
		case lang == b.fallback:
			return nil, fmt.Errorf("load locale %s: %w", lang, err)
		case os.IsNotExist(err):
			continue
		default:
			return nil, fmt.Errorf("load locale %s: %w", lang, err)
		}
		b.catalogs[lang] = msgs
		b.langs = append(b.langs, lang)
		tags = append(tags, tag)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func normalize(lang string) string { return strings.ToLower(strings.TrimSpace(lang)) }

// candidates lists fallback first, since the matcher defaults to its first tag.
func candidates(fallback string, supported []string) []string {
	out := []string{fallback}
	for _, l := range supported {
		if l = normalize(l); l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func readCatalog(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	msgs := map[string]string{}
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return msgs, nil
}

// Supported returns the loaded languages in sorted order.
func (b *Bundle) Supported() []string {
	out := slices.Clone(b.langs)
	slices.Sort(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang has a loaded catalog.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.catalogs[normalize(lang)]
	return ok
}

// T translates key into lang. Missing keys fall back to the fallback language and then
// to the key itself.
func (b *Bundle) T(lang, key string) string {
	if msg, ok := b.Lookup(lang, key); ok {
		return msg
	}
	return key
}

// Lookup reports the message for key in lang or the fallback language.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	for _, l := range [2]string{lang, b.fallback} {
		if msg, ok := b.catalogs[l][key]; ok {
			return msg, true
		}
	}
	return "", false
}

// Resolve picks the best loaded language for an Accept-Language header value.
func (b *Bundle) Resolve(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 || len(b.langs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(b.langs) {
		return b.fallback
	}
	return b.langs[idx]
}
