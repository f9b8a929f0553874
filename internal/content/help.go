package content

import (
	"html/template"
	"strconv"
	"strings"
)

type helpSource struct {
	Title       Text             `yaml:"title"`
	Description Text             `yaml:"description"`
	FAQs        []faqSource      `yaml:"faqs"`
	Resources   []resourceSource `yaml:"resources"`
	Contact     struct {
		Hours []Text `yaml:"hours"`
		Email string `yaml:"email"`
		Phone string `yaml:"phone"`
	} `yaml:"contact"`
}

type faqSource struct {
	Question Text `yaml:"question"`
	Answer   Text `yaml:"answer"`
}

type resourceSource struct {
	Title       Text `yaml:"title"`
	Description Text `yaml:"description"`
	External    bool `yaml:"external"`
}

// FAQ is one accordion item.
type FAQ struct {
	Index    int
	Question string
	Answer   template.HTML
	// AnswerText is the answer without markup, for structured data.
	AnswerText string
	Open       bool
	ToggleURL  string
}

// Resource is a legal resource card.
type Resource struct {
	Title       string
	Description string
	External    bool
}

// Contact holds the support details card.
type Contact struct {
	Hours []string
	Email string
	Phone string
}

// Help is the localized help page.
type Help struct {
	Title       string
	Description string
	FAQs        []FAQ
	Resources   []Resource
	Contact     Contact
}

// FAQCount returns the number of accordion items.
func (s *Store) FAQCount() int { return len(s.help.FAQs) }

// Help returns the help page in lang with the accordion in the given state.
func (s *Store) Help(lang string, acc Accordion) Help {
	answers, ok := s.answers[lang]
	plain := s.plain[lang]
	if !ok {
		answers = s.answers[fallbackLang]
		plain = s.plain[fallbackLang]
	}
	faqs := make([]FAQ, 0, len(s.help.FAQs))
	for i, f := range s.help.FAQs {
		faqs = append(faqs, FAQ{
			Index:      i,
			Question:   f.Question.In(lang),
			Answer:     answers[i],
			AnswerText: plain[i],
			Open:       acc.IsOpen(i),
			ToggleURL:  acc.Toggle(i).URL(),
		})
	}
	resources := make([]Resource, 0, len(s.help.Resources))
	for _, r := range s.help.Resources {
		resources = append(resources, Resource{
			Title:       r.Title.In(lang),
			Description: r.Description.In(lang),
			External:    r.External,
		})
	}
	return Help{
		Title:       s.help.Title.In(lang),
		Description: s.help.Description.In(lang),
		FAQs:        faqs,
		Resources:   resources,
		Contact: Contact{
			Hours: textsIn(s.help.Contact.Hours, lang),
			Email: s.help.Contact.Email,
			Phone: s.help.Contact.Phone,
		},
	}
}

// HelpPath is where the accordion lives.
const HelpPath = "/help"

// Accordion is a single-open, collapsible accordion. Open is -1 when every item is closed.
type Accordion struct {
	Open int
}

// Closed is the accordion with nothing expanded.
var Closed = Accordion{Open: -1}

// ParseAccordion reads the `faq` query value. Anything outside [0, n) collapses all items.
func ParseAccordion(raw string, n int) Accordion {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 0 || i >= n {
		return Closed
	}
	return Accordion{Open: i}
}

// IsOpen reports whether item i is expanded.
func (a Accordion) IsOpen(i int) bool { return a.Open == i && i >= 0 }

// Toggle opens item i, closing any other; toggling the open item collapses it.
func (a Accordion) Toggle(i int) Accordion {
	if a.Open == i {
		return Closed
	}
	return Accordion{Open: i}
}

// URL is the address that renders this state.
func (a Accordion) URL() string {
	if a.Open < 0 {
		return HelpPath
	}
	return HelpPath + "?faq=" + strconv.Itoa(a.Open)
}
