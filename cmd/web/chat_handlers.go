package main

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nyaysathi.in/web/internal/chat"
	mw "nyaysathi.in/web/internal/middleware"
	"nyaysathi.in/web/internal/observability"
	"nyaysathi.in/web/internal/views"
)

const wsWriteWait = 10 * time.Second

// chatPageView is the chat page payload.
type chatPageView struct {
	Panel    template.HTML
	ChatLang chat.Lang
	// Toggle is the language the switch button moves to.
	Toggle chat.Lang
}

// chatLang reads the chat language flag from the session. New visitors start in Hindi.
func chatLang(sess *mw.SessionData) chat.Lang {
	return chat.ParseLang(sess.ChatLang, chat.LangHindi)
}

// conversation returns the visitor's conversation, starting one when the session has
// none or the old one was evicted.
func (a *app) conversation(r *http.Request) chat.Snapshot {
	sess := mw.GetSession(r)
	snap := a.chat.Ensure(r.Context(), sess.ChatID)
	if snap.ID != sess.ChatID {
		sess.ChatID = snap.ID
		sess.MarkDirty()
	}
	return snap
}

func (a *app) chatView(r *http.Request, snap chat.Snapshot, notice, prefill string) views.ChatView {
	sess := mw.GetSession(r)
	lang := chatLang(sess)
	return views.ChatView{
		Messages:  snap.Messages,
		Pending:   snap.IsPending(),
		Fresh:     snap.Fresh(),
		Lang:      lang,
		Prefill:   prefill,
		CSRFToken: sess.CSRFToken,
		T:         a.translator(string(lang)),
		Error:     notice,
	}
}

func (a *app) chatPage(w http.ResponseWriter, r *http.Request) {
	a.renderChatPage(w, r, http.StatusOK, "", strings.TrimSpace(r.URL.Query().Get("q")))
}

func (a *app) renderChatPage(w http.ResponseWriter, r *http.Request, status int, notice, prefill string) {
	vm := a.pageData(r, "chat.title", "chat.description")
	snap := a.conversation(r)
	panel, err := views.Embed(r.Context(), views.ChatPanel(a.chatView(r, snap, notice, prefill)))
	if err != nil {
		observability.FromContext(r.Context()).Error("chat panel render failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render error")
		return
	}
	lang := chatLang(mw.GetSession(r))
	vm.Chat = chatPageView{Panel: panel, ChatLang: lang, Toggle: lang.Toggle()}
	a.views.page(w, r, "chat", status, vm)
}

// chatMessages serves the panel to the pending-reply poll.
func (a *app) chatMessages(w http.ResponseWriter, r *http.Request) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}
	snap := a.conversation(r)
	a.views.fragment(w, r, http.StatusOK, views.ChatPanel(a.chatView(r, snap, "", "")))
}

func (a *app) chatSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	sess := mw.GetSession(r)
	lang := chatLang(sess)
	text := r.PostFormValue("message")

	snap := a.conversation(r)
	_, err := a.chat.Send(ctx, snap.ID, text, lang)
	if errors.Is(err, chat.ErrConversationNotFound) {
		// evicted between lookup and send
		snap = a.conversation(r)
		_, err = a.chat.Send(ctx, snap.ID, text, lang)
	}

	status := http.StatusOK
	notice := ""
	prefill := ""
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrEmptyMessage):
		status = http.StatusUnprocessableEntity
		notice = a.bundle.T(string(lang), "chat.error.empty")
	case errors.Is(err, chat.ErrReplyPending):
		status = http.StatusConflict
		notice = a.bundle.T(string(lang), "chat.error.pending")
		prefill = text
	default:
		logger.Error("chat send failed", zap.String("conversation_id", snap.ID), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "send failed")
		return
	}
	if err == nil {
		logger.Info("chat message sent",
			zap.String("conversation_id", snap.ID),
			zap.String("chat_lang", string(lang)),
		)
	}

	if !mw.IsHTMX(ctx) {
		if status == http.StatusConflict {
			a.renderChatPage(w, r, status, notice, prefill)
			return
		}
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}
	snap = a.conversation(r)
	a.views.fragment(w, r, status, views.ChatPanel(a.chatView(r, snap, notice, prefill)))
}

// chatLanguage flips the chat language flag. The UI locale is left alone.
func (a *app) chatLanguage(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	sess.ChatLang = string(chatLang(sess).Toggle())
	sess.MarkDirty()
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", "/chat")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// chatSocket pushes assistant replies appended to the visitor's conversation as
// out-of-band swaps. The visitor's own messages arrive with the send response. The
// session must already hold a live conversation.
func (a *app) chatSocket(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	sess := mw.GetSession(r)
	lang := chatLang(sess)

	ch, cancel, err := a.chat.Subscribe(r.Context(), sess.ChatID)
	if err != nil {
		mw.WriteError(w, r, http.StatusNotFound, "conversation not found")
		return
	}
	defer cancel()

	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// drain client frames so close and ping control messages are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation closed"),
					time.Now().Add(wsWriteWait))
				return
			}
			if msg.FromUser() {
				continue
			}
			var buf bytes.Buffer
			if err := views.ChatPush(msg, lang).Render(r.Context(), &buf); err != nil {
				logger.Error("chat push render failed", zap.Error(err))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
				logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
