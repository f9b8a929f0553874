package catalog

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// ErrNotFound is returned when a template id is not part of the catalog.
var ErrNotFound = errors.New("catalog: template not found")

// Category groups templates by legal area.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryRegistry   Category = "registry"
	CategoryComplaint  Category = "complaint"
	CategoryEmployment Category = "employment"
	CategoryBusiness   Category = "business"
)

// Language describes which language editions a template ships with.
type Language string

const (
	LanguageHindi   Language = "hi"
	LanguageEnglish Language = "en"
	LanguageBoth    Language = "both"
)

// Template is a downloadable legal document template.
type Template struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Language    Language
	Rating      float64
	Downloads   int
	Tags        []string
}

// CategoryInfo describes a filter tab.
type CategoryInfo struct {
	ID       Category
	LabelKey string
	Label    string
}

// CategoryCount is a filter tab with the number of templates it holds.
type CategoryCount struct {
	CategoryInfo
	Count int
}

// Categories lists the filter tabs in display order.
var Categories = []CategoryInfo{
	{ID: CategoryAll, LabelKey: "templates.category.all", Label: "All Templates"},
	{ID: CategoryRegistry, LabelKey: "templates.category.registry", Label: "Registry & Property"},
	{ID: CategoryComplaint, LabelKey: "templates.category.complaint", Label: "Complaints & RTI"},
	{ID: CategoryEmployment, LabelKey: "templates.category.employment", Label: "Employment"},
	{ID: CategoryBusiness, LabelKey: "templates.category.business", Label: "Business"},
}

// Catalog is a fixed, read-only list of templates.
type Catalog struct {
	items  []Template
	counts []CategoryCount
}

// New builds a catalog from items. The input slice is copied.
func New(items []Template) *Catalog {
	c := &Catalog{items: copyTemplates(items)}
	c.counts = countCategories(c.items)
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(fallbackTemplates)
}

// All returns every template in catalog order.
func (c *Catalog) All() []Template {
	if c == nil {
		return []Template{}
	}
	return copyTemplates(c.items)
}

// Len reports the catalog cardinality.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// ByID returns the template with the given id.
func (c *Catalog) ByID(id string) (Template, error) {
	id = strings.TrimSpace(id)
	if c == nil || id == "" {
		return Template{}, ErrNotFound
	}
	for _, t := range c.items {
		if t.ID == id {
			return cloneTemplate(t), nil
		}
	}
	return Template{}, ErrNotFound
}

// Counts returns per-category totals over the full catalog. They do not depend on any
// search term; the "all" bucket always equals the catalog size.
func (c *Catalog) Counts() []CategoryCount {
	if c == nil {
		return countCategories(nil)
	}
	out := make([]CategoryCount, len(c.counts))
	copy(out, c.counts)
	return out
}

// Search filters the catalog. See Filter.
func (c *Catalog) Search(searchTerm string, category Category) []Template {
	if c == nil {
		return []Template{}
	}
	return Filter(c.items, searchTerm, category)
}

// Filter returns the templates matching category and search term, preserving input order.
// An empty category is treated as "all". A non-empty search term matches title, description
// or any tag as a case-insensitive substring; whitespace in the term is significant.
func Filter(items []Template, searchTerm string, category Category) []Template {
	category = NormalizeCategory(string(category))
	needle := fold(searchTerm)

	filtered := make([]Template, 0, len(items))
	for _, t := range items {
		if category != CategoryAll && t.Category != category {
			continue
		}
		if needle != "" && !matches(t, needle) {
			continue
		}
		filtered = append(filtered, cloneTemplate(t))
	}
	return filtered
}

// NormalizeCategory lower-cases and trims raw input, mapping empty input to "all".
func NormalizeCategory(raw string) Category {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return CategoryAll
	}
	return Category(raw)
}

// CategoryOrAll normalizes raw and maps unknown categories to "all".
func CategoryOrAll(raw string) Category {
	if c := NormalizeCategory(raw); KnownCategory(c) {
		return c
	}
	return CategoryAll
}

// KnownCategory reports whether c is one of the filter tabs.
func KnownCategory(c Category) bool {
	for _, info := range Categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

func matches(t Template, needle string) bool {
	if strings.Contains(fold(t.Title), needle) {
		return true
	}
	if strings.Contains(fold(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(fold(tag), needle) {
			return true
		}
	}
	return false
}

// fold applies Unicode case folding. A Caser is stateful, so one is built per call.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

func countCategories(items []Template) []CategoryCount {
	out := make([]CategoryCount, 0, len(Categories))
	for _, info := range Categories {
		n := 0
		for _, t := range items {
			if info.ID == CategoryAll || t.Category == info.ID {
				n++
			}
		}
		out = append(out, CategoryCount{CategoryInfo: info, Count: n})
	}
	return out
}

func copyTemplates(src []Template) []Template {
	if len(src) == 0 {
		return []Template{}
	}
	out := make([]Template, len(src))
	for i, t := range src {
		out[i] = cloneTemplate(t)
	}
	return out
}

func cloneTemplate(t Template) Template {
	clone := t
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	return clone
}
