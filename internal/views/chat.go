package views

import (
	"net/url"
	"time"

	"github.com/a-h/templ"

	"nyaysathi.in/web/internal/chat"
	"nyaysathi.in/web/internal/format"
)

const (
	// ChatPanelID is the swap target for sends and polls.
	ChatPanelID = "chat-panel"
	// ChatMessagesID is the list that websocket pushes append to.
	ChatMessagesID = "chat-messages"
	chatPollEvery  = "every 1s"
)

// ChatView is the state rendered by the chat panel.
type ChatView struct {
	Messages []chat.Message
	Pending  bool
	Fresh    bool
	// Lang is the chat language flag, not the UI locale.
	Lang      chat.Lang
	Prefill   string
	CSRFToken string
	// T translates in the chat language.
	T Translator
	// Error is an inline notice (blank message, reply pending).
	Error string
}

// ChatPanel renders messages, quick questions, the composer and the disclaimer. While a
// reply is pending the panel polls itself and the composer is disabled.
func ChatPanel(v ChatView) templ.Component {
	t := ensure(v.T)
	return component(func(p *htmlWriter) {
		p.raw(`<section class="chat-panel"`)
		p.attr("id", ChatPanelID)
		p.attr("data-pending", boolString(v.Pending))
		if v.Pending {
			p.attr("hx-get", "/chat/messages")
			p.attr("hx-trigger", chatPollEvery)
			p.attr("hx-swap", "outerHTML")
		}
		p.raw(`>`)

		p.raw(`<div class="chat-messages" aria-live="polite"`)
		p.attr("id", ChatMessagesID)
		p.raw(`>`)
		for _, m := range v.Messages {
			writeMessage(p, m, string(v.Lang))
		}
		p.raw(`</div>`)
		if v.Pending {
			p.raw(`<div class="typing" data-typing><span class="dot"></span><span class="dot"></span><span class="dot"></span></div>`)
		}

		if v.Fresh {
			p.raw(`<div class="quick-actions"><p class="muted">`)
			p.text(t("chat.quick.title"))
			p.raw(`</p><div class="quick-actions__list">`)
			for _, qa := range chat.QuickActions {
				p.raw(`<a class="btn btn--outline btn--sm" data-quick-action`)
				p.href("/chat?q=" + url.QueryEscape(qa.Prompt))
				p.raw(`>`)
				p.text(translateOr(t, qa.LabelKey, qa.Label))
				p.raw(`</a>`)
			}
			p.raw(`</div></div>`)
		}

		if v.Error != "" {
			p.raw(`<p class="chat-error" role="alert">`)
			p.text(v.Error)
			p.raw(`</p>`)
		}

		p.raw(`<form class="composer" method="post" action="/chat/messages" hx-post="/chat/messages"`)
		p.attr("hx-target", "#"+ChatPanelID)
		p.raw(` hx-swap="outerHTML">`)
		p.raw(`<input type="hidden" name="csrf_token"`)
		p.attr("value", v.CSRFToken)
		p.raw(`><input class="input" type="text" name="message" autocomplete="off" autofocus`)
		p.attr("placeholder", t("chat.placeholder"))
		p.attr("value", v.Prefill)
		p.boolAttr("disabled", v.Pending)
		p.raw(`><button type="submit" class="btn btn--primary"`)
		p.attr("aria-label", t("chat.send"))
		p.boolAttr("disabled", v.Pending)
		p.raw(`>`)
		icon(p, "send")
		p.raw(`</button></form>`)

		p.raw(`<p class="disclaimer">`)
		p.text(t("chat.disclaimer"))
		p.raw(`</p></section>`)
	})
}

// ChatPush wraps one message for an out-of-band append over the websocket.
func ChatPush(m chat.Message, lang chat.Lang) templ.Component {
	return component(func(p *htmlWriter) {
		p.raw(`<div`)
		p.attr("hx-swap-oob", "beforeend:#"+ChatMessagesID)
		p.raw(`>`)
		writeMessage(p, m, string(lang))
		p.raw(`</div>`)
	})
}

func writeMessage(p *htmlWriter, m chat.Message, lang string) {
	p.raw(`<article class="message message--`)
	p.raw(string(m.Sender))
	p.raw(`"`)
	p.attr("id", "msg-"+m.ID)
	p.attr("data-sender", string(m.Sender))
	p.raw(`>`)
	if m.FromUser() {
		icon(p, "user-check")
	} else {
		icon(p, "bot")
	}
	p.raw(`<div class="message__body"><p class="message__text">`)
	p.text(m.Text)
	p.raw(`</p>`)
	if len(m.Citations) > 0 {
		p.raw(`<ul class="message__citations">`)
		for _, c := range m.Citations {
			p.raw(`<li class="badge badge--secondary">`)
			p.text(c)
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)
	}
	p.raw(`<time`)
	p.attr("datetime", m.Timestamp.UTC().Format(time.RFC3339))
	p.raw(`>`)
	p.text(format.Clock(m.Timestamp.Local(), lang))
	p.raw(`</time></div></article>`)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func ensure(t Translator) Translator {
	if t == nil {
		return func(key string) string { return key }
	}
	return t
}

func translateOr(t Translator, key, fallback string) string {
	if v := t(key); v != "" && v != key {
		return v
	}
	return fallback
}
