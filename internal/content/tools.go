package content

import "fmt"

// ToolStatus reports whether a tool can be used yet.
type ToolStatus string

const (
	ToolAvailable  ToolStatus = "available"
	ToolComingSoon ToolStatus = "coming_soon"
)

// ParseToolStatus validates a status name.
func ParseToolStatus(raw string) (ToolStatus, error) {
	switch ToolStatus(raw) {
	case ToolAvailable, ToolComingSoon:
		return ToolStatus(raw), nil
	}
	return "", fmt.Errorf("unknown tool status %q", raw)
}

type toolsSource struct {
	Title       Text         `yaml:"title"`
	Description Text         `yaml:"description"`
	Tools       []toolSource `yaml:"tools"`
}

type toolSource struct {
	ID          string `yaml:"id"`
	Icon        string `yaml:"icon"`
	Tone        string `yaml:"tone"`
	Status      string `yaml:"status"`
	Title       Text   `yaml:"title"`
	Description Text   `yaml:"description"`
}

// Tool is one card in the tools gallery.
type Tool struct {
	ID          string
	Icon        string
	Tone        string
	Status      ToolStatus
	Title       string
	Description string
}

// Available reports whether the tool button is enabled.
func (t Tool) Available() bool { return t.Status == ToolAvailable }

// Tools is the localized tools page.
type Tools struct {
	Title       string
	Description string
	Items       []Tool
}

// Tools returns the tools gallery in lang.
func (s *Store) Tools(lang string) Tools {
	items := make([]Tool, 0, len(s.tools.Tools))
	for _, t := range s.tools.Tools {
		items = append(items, Tool{
			ID:          t.ID,
			Icon:        t.Icon,
			Tone:        t.Tone,
			Status:      ToolStatus(t.Status),
			Title:       t.Title.In(lang),
			Description: t.Description.In(lang),
		})
	}
	return Tools{
		Title:       s.tools.Title.In(lang),
		Description: s.tools.Description.In(lang),
		Items:       items,
	}
}
