package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedContent(t *testing.T) {
	t.Parallel()

	s, err := Load()
	require.NoError(t, err)

	landing := s.Landing("en")
	require.Equal(t, "NyaySathiAI", landing.Hero.Title)
	require.Len(t, landing.Features, 5)
	require.Equal(t, "/templates?category=registry", landing.Features[4].Href)
	require.Len(t, landing.TrustSignals, 4)
	require.Len(t, landing.Hero.Actions, 3)

	tools := s.Tools("en")
	require.Len(t, tools.Items, 6)
	var available int
	for _, tool := range tools.Items {
		if tool.Available() {
			available++
		}
	}
	require.Equal(t, 4, available)
	require.False(t, tools.Items[2].Available(), "RTI tracker is coming soon")

	help := s.Help("en", Closed)
	require.Len(t, help.FAQs, 6)
	require.Len(t, help.Resources, 4)
	require.True(t, help.Resources[0].External)
	require.False(t, help.Resources[3].External)
}

func TestLocalizedFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	s := MustLoad()
	hi := s.Landing("hi")
	require.Equal(t, "NyaySathiAI", hi.Hero.Title, "scalar values are shared")
	require.NotEqual(t, s.Landing("en").FeaturesTitle, hi.FeaturesTitle)

	fr := s.Landing("fr")
	require.Equal(t, s.Landing("en").FeaturesTitle, fr.FeaturesTitle)
}

func TestFAQAnswersRenderedAndSanitized(t *testing.T) {
	t.Parallel()

	s := MustLoad()
	help := s.Help("en", Closed)
	answer := string(help.FAQs[0].Answer)
	require.Contains(t, answer, "<strong>Madhya Pradesh</strong>")
	require.Contains(t, answer, "<p>")

	require.NotContains(t, help.FAQs[0].AnswerText, "<")
	require.Contains(t, help.FAQs[0].AnswerText, "Madhya Pradesh")

	html, plain, err := renderAnswers([]faqSource{{Answer: Text{"en": "hi <script>alert(1)</script> **there** & you"}}}, []string{"en"})
	require.NoError(t, err)
	require.NotContains(t, string(html["en"][0]), "<script>")
	require.Contains(t, string(html["en"][0]), "<strong>there</strong>")
	require.NotContains(t, plain["en"][0], "<")
	require.Contains(t, plain["en"][0], "there & you")
}

func TestAccordionSingleCollapsible(t *testing.T) {
	t.Parallel()

	acc := Closed
	for i := 0; i < 6; i++ {
		require.False(t, acc.IsOpen(i))
	}

	acc = acc.Toggle(2)
	require.True(t, acc.IsOpen(2))
	require.Equal(t, "/help?faq=2", acc.URL())

	acc = acc.Toggle(4)
	require.True(t, acc.IsOpen(4))
	require.False(t, acc.IsOpen(2), "opening another item closes the first")

	acc = acc.Toggle(4)
	require.Equal(t, Closed, acc)
	require.Equal(t, "/help", acc.URL())
}

func TestParseAccordion(t *testing.T) {
	t.Parallel()

	require.Equal(t, Accordion{Open: 3}, ParseAccordion("3", 6))
	require.Equal(t, Closed, ParseAccordion("", 6))
	require.Equal(t, Closed, ParseAccordion("6", 6))
	require.Equal(t, Closed, ParseAccordion("-1", 6))
	require.Equal(t, Closed, ParseAccordion("abc", 6))
}

func TestHelpToggleLinks(t *testing.T) {
	t.Parallel()

	s := MustLoad()
	help := s.Help("en", ParseAccordion("1", s.FAQCount()))
	require.True(t, help.FAQs[1].Open)
	require.Equal(t, "/help", help.FAQs[1].ToggleURL, "open item links to collapse")
	require.Equal(t, "/help?faq=0", help.FAQs[0].ToggleURL)
	for i, f := range help.FAQs {
		if i != 1 {
			require.False(t, f.Open)
		}
	}
}

func TestTextUnmarshalScalarOrMap(t *testing.T) {
	t.Parallel()

	var doc struct {
		A Text `yaml:"a"`
		B Text `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: plain\nb:\n  en: one\n  hi: एक\n"), &doc))
	require.Equal(t, "plain", doc.A.In("hi"))
	require.Equal(t, "एक", doc.B.In("hi"))
	require.Equal(t, "one", strings.TrimSpace(doc.B.In("en")))
}
