// Package content serves the static landing, tools and help copy. The source lives in
// embedded YAML files; FAQ answers are Markdown rendered once at load time.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

const fallbackLang = "en"

// Text is a localized string keyed by language. A bare YAML scalar is treated as English.
type Text map[string]string

// UnmarshalYAML accepts either a scalar or a language map.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = Text{fallbackLang: node.Value}
		return nil
	}
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	*t = Text(m)
	return nil
}

// In returns the text for lang, falling back to English.
func (t Text) In(lang string) string {
	if v := strings.TrimSpace(t[lang]); v != "" {
		return t[lang]
	}
	return t[fallbackLang]
}

// Link is a call to action.
type Link struct {
	Label   string
	Href    string
	Icon    string
	Variant string
}

type linkSource struct {
	Label   Text   `yaml:"label"`
	Href    string `yaml:"href"`
	Icon    string `yaml:"icon"`
	Variant string `yaml:"variant"`
}

func (l linkSource) in(lang string) Link {
	return Link{Label: l.Label.In(lang), Href: l.Href, Icon: l.Icon, Variant: l.Variant}
}

func linksIn(src []linkSource, lang string) []Link {
	out := make([]Link, 0, len(src))
	for _, l := range src {
		out = append(out, l.in(lang))
	}
	return out
}

func textsIn(src []Text, lang string) []string {
	out := make([]string, 0, len(src))
	for _, t := range src {
		out = append(out, t.In(lang))
	}
	return out
}

// Store holds the parsed content. It is immutable after Load and safe for concurrent use.
type Store struct {
	landing landingSource
	tools   toolsSource
	help    helpSource
	// answers[lang][i] is the sanitized HTML for FAQ i
	answers map[string][]template.HTML
	plain   map[string][]string
}

// Load parses the embedded content files.
func Load() (*Store, error) {
	s := &Store{}
	if err := decode("data/landing.yaml", &s.landing); err != nil {
		return nil, err
	}
	if err := decode("data/tools.yaml", &s.tools); err != nil {
		return nil, err
	}
	if err := decode("data/help.yaml", &s.help); err != nil {
		return nil, err
	}
	for i, tool := range s.tools.Tools {
		if _, err := ParseToolStatus(tool.Status); err != nil {
			return nil, fmt.Errorf("content: tool %d (%s): %w", i, tool.ID, err)
		}
	}
	answers, plain, err := renderAnswers(s.help.FAQs, []string{"en", "hi"})
	if err != nil {
		return nil, err
	}
	s.answers = answers
	s.plain = plain
	return s, nil
}

// MustLoad is Load for process start-up.
func MustLoad() *Store {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

func decode(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}

// renderAnswers converts FAQ Markdown into sanitized HTML for the page and stripped text
// for structured data.
func renderAnswers(faqs []faqSource, langs []string) (map[string][]template.HTML, map[string][]string, error) {
	md := goldmark.New()
	policy := bluemonday.UGCPolicy()
	strip := bluemonday.StrictPolicy()
	out := make(map[string][]template.HTML, len(langs))
	plain := make(map[string][]string, len(langs))
	for _, lang := range langs {
		rendered := make([]template.HTML, 0, len(faqs))
		texts := make([]string, 0, len(faqs))
		for i, f := range faqs {
			var buf bytes.Buffer
			if err := md.Convert([]byte(f.Answer.In(lang)), &buf); err != nil {
				return nil, nil, fmt.Errorf("content: render faq %d (%s): %w", i, lang, err)
			}
			rendered = append(rendered, template.HTML(policy.SanitizeBytes(buf.Bytes())))
			texts = append(texts, html.UnescapeString(strings.Join(strings.Fields(strip.Sanitize(buf.String())), " ")))
		}
		out[lang] = rendered
		plain[lang] = texts
	}
	return out, plain, nil
}
