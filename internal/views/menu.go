package views

import (
	"github.com/a-h/templ"

	"nyaysathi.in/web/internal/nav"
)

// MenuID is the swap target of the mobile menu toggle.
const MenuID = "mobile-menu"

// MenuView is the mobile navigation sheet.
type MenuView struct {
	Open      bool
	Items     []nav.RenderedItem
	CSRFToken string
	// Next is where the no-script toggle form returns to.
	Next string
	T    Translator
}

// Menu renders the trigger and, when open, the sheet of links. Every link in the sheet
// routes through the close endpoint so following it shuts the menu.
func Menu(v MenuView) templ.Component {
	t := ensure(v.T)
	return component(func(p *htmlWriter) {
		p.raw(`<div class="mobile-menu"`)
		p.attr("id", MenuID)
		p.attr("data-open", boolString(v.Open))
		p.raw(`><form method="post" action="/menu/toggle" hx-post="/menu/toggle"`)
		p.attr("hx-target", "#"+MenuID)
		p.raw(` hx-swap="outerHTML"><input type="hidden" name="csrf_token"`)
		p.attr("value", v.CSRFToken)
		p.raw(`><input type="hidden" name="next"`)
		p.attr("value", v.Next)
		p.raw(`><button type="submit" class="btn btn--ghost btn--icon" data-menu-trigger aria-controls="mobile-menu-sheet"`)
		p.attr("aria-expanded", boolString(v.Open))
		p.attr("aria-label", t("nav.menu"))
		p.raw(`>`)
		if v.Open {
			icon(p, "x")
		} else {
			icon(p, "menu")
		}
		p.raw(`</button></form>`)

		if v.Open {
			p.raw(`<div class="sheet" id="mobile-menu-sheet" role="dialog"><ul class="sheet__links">`)
			for _, it := range v.Items {
				p.raw(`<li><a class="sheet__link" data-menu-link`)
				p.href(it.CloseURL)
				if it.Active {
					p.raw(` aria-current="page"`)
				}
				p.raw(`>`)
				icon(p, it.Icon)
				p.raw(`<span>`)
				p.text(t(it.LabelKey))
				p.raw(`</span></a></li>`)
			}
			p.raw(`</ul><a class="btn btn--primary sheet__cta" data-menu-link`)
			p.href(nav.CloseURL(nav.CTAPath))
			p.raw(`>`)
			p.text(t("nav.cta"))
			p.raw(`</a></div>`)
		}
		p.raw(`</div>`)
	})
}
