package nav

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/chat"
	LabelKey string // i18n key, e.g. "nav.chat"
	Icon     string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	CloseURL string // menu link that closes the mobile menu before navigating
	LabelKey string
	Icon     string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/chat", LabelKey: "nav.chat", Icon: "message-circle"},
	{Path: "/templates", LabelKey: "nav.templates", Icon: "file-text"},
	{Path: "/tools", LabelKey: "nav.tools", Icon: "scale"},
	{Path: "/dashboard", LabelKey: "nav.dashboard", Icon: "building"},
	{Path: "/help", LabelKey: "nav.help", Icon: "help-circle"},
}

// CTAPath is the target of the "Ask AI Now" button.
const CTAPath = "/chat"

// CloseMenuPath closes the mobile menu and redirects to the `next` query parameter.
const CloseMenuPath = "/menu/close"

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			CloseURL: CloseURL(it.Path),
			LabelKey: it.LabelKey,
			Icon:     it.Icon,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

// CloseURL returns the menu-closing link for target.
func CloseURL(target string) string {
	return CloseMenuPath + "?next=" + url.QueryEscape(target)
}

// SafeTarget returns next when it names the home page or a known section (optionally with
// a query string), otherwise "/". It keeps the close-menu redirect from leaving the site.
func SafeTarget(next string) string {
	u, err := url.Parse(strings.TrimSpace(next))
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	clean := path.Clean(u.Path)
	if _, ok := sectionOf(clean); !ok {
		return "/"
	}
	if u.RawQuery != "" {
		return clean + "?" + u.RawQuery
	}
	return clean
}

// sectionOf finds the top-level item owning p.
func sectionOf(p string) (Item, bool) {
	for _, it := range Main {
		if isActive(it.Path, p) {
			return it, true
		}
	}
	return Item{}, false
}

// isActive matches the section itself or anything below it.
func isActive(itemPath, currentPath string) bool {
	rest, ok := strings.CutPrefix(currentPath, itemPath)
	return ok && (rest == "" || rest[0] == '/')
}

// Breadcrumbs walks the path from Home. The section crumb uses its nav label; deeper
// segments are prettified slugs. The last crumb is the active page.
func Breadcrumbs(currentPath string) []Crumb {
	home := Crumb{Href: "/", LabelKey: "nav.home"}
	clean := path.Clean("/" + currentPath)
	if clean == "/" {
		home.Active = true
		return []Crumb{home}
	}

	segments := strings.Split(clean[1:], "/")
	crumbs := make([]Crumb, 0, len(segments)+1)
	crumbs = append(crumbs, home)
	href := ""
	for i, seg := range segments {
		href += "/" + seg
		c := Crumb{Href: href, Label: humanize(seg)}
		if i == 0 {
			if it, ok := sectionOf(href); ok {
				c.LabelKey = it.LabelKey
			}
		}
		crumbs = append(crumbs, c)
	}
	crumbs[len(crumbs)-1].Active = true
	return crumbs
}

// humanize turns a slug like "rent-agreement" into "Rent agreement".
func humanize(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	if len(words) == 0 {
		return slug
	}
	s := strings.Join(words, " ")
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
