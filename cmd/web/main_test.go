package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nyaysathi.in/web/internal/chat"
	"nyaysathi.in/web/internal/config"
	"nyaysathi.in/web/internal/testutil"
)

type testEnv struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	sched  *chat.ManualScheduler
}

// newTestEnv serves the full router with a manual reply clock. The client keeps cookies
// and does not follow redirects.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithOptions(t, appOptions{})
}

func newTestEnvWithOptions(t *testing.T, opts appOptions) *testEnv {
	t.Helper()
	cfg, err := config.Load(context.Background(), config.WithoutSystemEnv(), config.WithEnvFile(""),
		config.WithEnvMap(map[string]string{
			"NYAYSATHI_TEMPLATES_DIR":    "../../templates",
			"NYAYSATHI_PUBLIC_DIR":       "../../public",
			"NYAYSATHI_LOCALES_DIR":      "../../locales",
			"NYAYSATHI_CHAT_REPLY_DELAY": "2s",
		}))
	require.NoError(t, err)

	sched := chat.NewManualScheduler()
	opts.Scheduler = sched
	a, err := newApp(cfg, zaptest.NewLogger(t), opts)
	require.NoError(t, err)

	srv := httptest.NewServer(a.routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{
		t:   t,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		sched: sched,
	}
}

func (e *testEnv) do(req *http.Request) (*http.Response, []byte) {
	e.t.Helper()
	resp, err := e.client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, body
}

func (e *testEnv) get(path string, htmx bool) (*http.Response, *goquery.Document) {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	require.NoError(e.t, err)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, body := e.do(req)
	return resp, testutil.ParseHTML(e.t, body)
}

func (e *testEnv) post(path string, form url.Values, htmx bool) (*http.Response, []byte) {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return e.do(req)
}

// csrfToken loads the chat page and returns the token embedded in the composer.
func (e *testEnv) csrfToken() string {
	e.t.Helper()
	resp, doc := e.get("/chat", false)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	token := doc.Find("#chat-panel input[name=csrf_token]").AttrOr("value", "")
	require.NotEmpty(e.t, token)
	return token
}

func TestHealthzOK(t *testing.T) {
	env := newTestEnv(t)
	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/healthz", nil)
	require.NoError(t, err)
	resp, body := env.do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", strings.TrimSpace(string(body)))
}

func TestPagesRenderWithNavigation(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/", "/chat", "/templates", "/tools", "/dashboard", "/help"} {
		resp, doc := env.get(path, false)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Contains(t, resp.Header.Get("Content-Type"), "text/html", path)
		require.Equal(t, 5, doc.Find(".site-nav [data-nav-link]").Length(), path)
		require.NotEmpty(t, strings.TrimSpace(doc.Find("title").Text()), path)
		require.Equal(t, 1, doc.Find("#mobile-menu").Length(), path)
		if path != "/" {
			active := doc.Find(`.site-nav [aria-current="page"]`)
			require.Equal(t, 1, active.Length(), path)
			require.Equal(t, path, active.AttrOr("href", ""))
		}
	}
}

func TestLocaleSwitchTranslatesNavigation(t *testing.T) {
	env := newTestEnv(t)
	resp, doc := env.get("/tools?hl=hi", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hi", resp.Header.Get("Content-Language"))
	require.Equal(t, "hi", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "चैट", testutil.Text(doc, `.site-nav a[href="/chat"] span`))

	// the choice sticks without the query parameter
	_, doc = env.get("/help", false)
	require.Equal(t, "hi", doc.Find("html").AttrOr("lang", ""))
}

func TestLandingContent(t *testing.T) {
	env := newTestEnv(t)
	_, doc := env.get("/", false)
	require.Equal(t, 4, doc.Find("[data-trust-signal]").Length())
	require.Equal(t, 5, doc.Find("[data-feature]").Length())
	require.Equal(t, 1, doc.Find(`[data-feature][href="/templates?category=registry"]`).Length())
	ld := doc.Find(`script[type="application/ld+json"]`).Text()
	require.Contains(t, ld, `"Organization"`)
	require.Contains(t, ld, `"WebSite"`)
}

func TestToolsComingSoonDisabled(t *testing.T) {
	env := newTestEnv(t)
	_, doc := env.get("/tools", false)
	require.Equal(t, 6, doc.Find("[data-tool-id]").Length())
	doc.Find("[data-tool-id]").Each(func(_ int, s *goquery.Selection) {
		_, disabled := s.Find("[data-tool-action]").Attr("disabled")
		require.Equal(t, s.AttrOr("data-status", "") == "coming_soon", disabled, s.AttrOr("data-tool-id", ""))
	})
}

func TestDashboardRendersFirmData(t *testing.T) {
	env := newTestEnv(t)
	_, doc := env.get("/dashboard", false)
	require.Equal(t, 4, doc.Find("[data-kpi]").Length())
	require.Equal(t, 4, doc.Find("[data-activity]").Length())
	require.Equal(t, 3, doc.Find("[data-component-status]").Length())
	require.Equal(t, "down", doc.Find(`[data-kpi="response"]`).AttrOr("data-trend", ""))
	require.Equal(t, "2.3m", testutil.Text(doc, `[data-kpi="response"] .kpi__value`))
}

func TestDashboardActivityTimesFollowRequestClock(t *testing.T) {
	var clock atomic.Int64
	clock.Store(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).UnixNano())
	env := newTestEnvWithOptions(t, appOptions{Now: func() time.Time { return time.Unix(0, clock.Load()).UTC() }})

	clock.Add(int64(30 * time.Hour))
	_, doc := env.get("/dashboard", false)
	times := doc.Find("[data-activity] time")
	require.Equal(t, 4, times.Length())
	times.Each(func(_ int, s *goquery.Selection) {
		require.Equal(t, "2 hours ago", strings.TrimSpace(s.Text()))
		require.True(t, strings.HasPrefix(s.AttrOr("datetime", ""), "2024-05-02T13:00:00"), s.AttrOr("datetime", ""))
	})
}

func TestHelpAccordionAndStructuredData(t *testing.T) {
	env := newTestEnv(t)
	_, doc := env.get("/help", false)
	require.Equal(t, 6, doc.Find("[data-faq]").Length())
	require.Equal(t, 0, doc.Find(".accordion__item.is-open").Length())

	_, doc = env.get("/help?faq=1", false)
	open := doc.Find(".accordion__item.is-open")
	require.Equal(t, 1, open.Length())
	require.Equal(t, "1", open.AttrOr("data-faq", ""))
	require.Equal(t, "/help", open.Find(".accordion__trigger").AttrOr("href", ""), "toggling the open item collapses it")
	require.Equal(t, "/help?faq=2", doc.Find(`[data-faq="2"] .accordion__trigger`).AttrOr("href", ""))
	require.Contains(t, doc.Find(`script[type="application/ld+json"]`).Text(), `"FAQPage"`)

	_, doc = env.get("/help?faq=99", false)
	require.Equal(t, 0, doc.Find(".accordion__item.is-open").Length())
}

func TestPostWithoutCSRFIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.csrfToken()
	resp, _ := env.post("/chat/messages", url.Values{"message": {"hello"}}, false)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestChatSendSchedulesReply(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken()

	resp, body := env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"How to register property in MP?"}}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseHTML(t, body)
	panel := doc.Find("#chat-panel")
	require.Equal(t, "true", panel.AttrOr("data-pending", ""))
	require.Equal(t, "every 1s", panel.AttrOr("hx-trigger", ""))
	_, disabled := doc.Find("input[name=message]").Attr("disabled")
	require.True(t, disabled)
	require.Equal(t, 1, doc.Find(`[data-sender="user"]`).Length())
	require.Equal(t, 1, doc.Find("[data-typing]").Length())
	require.Equal(t, 0, doc.Find("[data-quick-action]").Length())

	require.Equal(t, 1, env.sched.Advance(2*time.Second))

	_, doc = env.get("/chat/messages", true)
	require.Equal(t, "false", doc.Find("#chat-panel").AttrOr("data-pending", ""))
	assistant := doc.Find(`[data-sender="assistant"]`)
	require.Equal(t, 2, assistant.Length(), "greeting plus reply")
	reply := assistant.Last()
	require.Equal(t, chat.CannedReply(chat.LangHindi), reply.Find(".message__text").Text())
	require.Equal(t, 2, reply.Find(".message__citations li").Length())
	require.Equal(t, 0, doc.Find("[data-typing]").Length())
}

func TestChatSendValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken()

	resp, body := env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"   "}}, true)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find(".chat-error").Length())
	require.Equal(t, 0, doc.Find(`[data-sender="user"]`).Length())

	resp, _ = env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"first"}}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"second"}}, true)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	doc = testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find(`[data-sender="user"]`).Length(), "rejected send leaves the transcript alone")
	require.Equal(t, "second", doc.Find("input[name=message]").AttrOr("value", ""))
}

func TestChatSendWithoutHTMXRedirects(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken()

	resp, _ := env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"hello"}}, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/chat", resp.Header.Get("Location"))

	_, doc := env.get("/chat", false)
	require.Equal(t, "hello", doc.Find(`[data-sender="user"] .message__text`).Text())
}

func TestChatLanguageToggleSelectsReply(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken()

	resp, _ := env.post("/chat/language", url.Values{"csrf_token": {token}}, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, doc := env.get("/chat", false)
	require.Equal(t, "en", doc.Find("[data-chat-lang]").AttrOr("data-chat-lang", ""))
	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""), "ui locale is independent of the chat language")

	resp, _ = env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"hello"}}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.sched.Advance(2 * time.Second)

	_, doc = env.get("/chat/messages", true)
	require.Equal(t, chat.CannedReply(chat.LangEnglish), doc.Find(`[data-sender="assistant"] .message__text`).Last().Text())
}

func TestChatQuickQuestionPrefill(t *testing.T) {
	env := newTestEnv(t)
	_, doc := env.get("/chat", false)
	require.Equal(t, len(chat.QuickActions), doc.Find("[data-quick-action]").Length())

	_, doc = env.get("/chat?q="+url.QueryEscape("How to send legal notice?"), false)
	require.Equal(t, "How to send legal notice?", doc.Find("input[name=message]").AttrOr("value", ""))
}

func TestChatSocketPushesReply(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken()

	wsURL := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/chat/ws"
	dialer := websocket.Dialer{Jar: env.client.Jar, HandshakeTimeout: 5 * time.Second}
	conn, resp, err := dialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	defer conn.Close()

	sendResp, _ := env.post("/chat/messages", url.Values{"csrf_token": {token}, "message": {"hello"}}, true)
	require.Equal(t, http.StatusOK, sendResp.StatusCode)
	env.sched.Advance(2 * time.Second)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, kind)

	doc := testutil.ParseHTML(t, payload)
	require.Equal(t, "beforeend:#chat-messages", doc.Find("[hx-swap-oob]").AttrOr("hx-swap-oob", ""))
	require.Equal(t, "assistant", doc.Find("article").AttrOr("data-sender", ""))
	require.True(t, bytes.Contains(payload, []byte(chat.CannedReply(chat.LangHindi))))
}

func TestChatSocketWithoutConversation(t *testing.T) {
	env := newTestEnv(t)
	wsURL := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/chat/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTemplateResultsFilter(t *testing.T) {
	env := newTestEnv(t)

	resp, doc := env.get("/templates/results?q=rti", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/templates?q=rti", resp.Header.Get("HX-Push-Url"))
	require.GreaterOrEqual(t, doc.Find("[data-template-id]").Length(), 1)
	require.Equal(t, "6", doc.Find(`.tab[data-category="all"] [data-tab-count]`).Text())

	_, doc = env.get("/templates/results?q=zzz-no-match", true)
	require.Equal(t, 1, doc.Find("[data-empty-state]").Length())
	require.Equal(t, 0, doc.Find("[data-template-id]").Length())

	resp, _ = env.get("/templates/results?category=business", false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/templates?category=business", resp.Header.Get("Location"))

	_, doc = env.get("/templates?category=registry", false)
	require.Equal(t, "true", doc.Find(`.tab[data-category="registry"]`).AttrOr("aria-selected", ""))
	doc.Find("#template-results [data-template-id] .badge--registry").Each(func(_ int, s *goquery.Selection) {
		require.NotEmpty(t, s.Text())
	})
	require.Equal(t, doc.Find("#template-results [data-template-id]").Length(),
		doc.Find("#template-results [data-template-id] .badge--registry").Length())
}

func TestTemplateSearchKeepsWhitespaceAndUnknownCategoryShowsAll(t *testing.T) {
	env := newTestEnv(t)

	_, doc := env.get("/templates/results?q="+url.QueryEscape("act "), true)
	require.Equal(t, 1, doc.Find("[data-template-id]").Length())
	require.Equal(t, 1, doc.Find(`[data-template-id="3"]`).Length())

	_, doc = env.get("/templates/results?q="+url.QueryEscape("   "), true)
	require.Equal(t, 1, doc.Find("[data-empty-state]").Length())

	resp, doc := env.get("/templates?category=foo", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "true", doc.Find(`.tab[data-category="all"]`).AttrOr("aria-selected", ""))
	require.Equal(t, 6, doc.Find("#template-results [data-template-id]").Length())
}

func TestTemplatePreview(t *testing.T) {
	env := newTestEnv(t)

	resp, doc := env.get("/templates/1", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "1", doc.Find("#template-preview").AttrOr("data-template-id", ""))

	resp, doc = env.get("/templates/1?category=registry", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, doc.Find(`#template-preview[data-template-id="1"]`).Length())
	require.Equal(t, 1, doc.Find("#template-results").Length())

	resp, _ = env.get("/templates/does-not-exist", false)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMobileMenuToggleAndClose(t *testing.T) {
	env := newTestEnv(t)
	token := env.csrfToken()

	resp, body := env.post("/menu/toggle", url.Values{"csrf_token": {token}, "next": {"/tools"}}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "true", doc.Find("#mobile-menu").AttrOr("data-open", ""))
	require.Equal(t, 5, doc.Find(".sheet__link[data-menu-link]").Length())
	require.Equal(t, "page", doc.Find(`.sheet__link[href="/menu/close?next=%2Ftools"]`).AttrOr("aria-current", ""))

	_, doc = env.get("/dashboard", false)
	require.Equal(t, "true", doc.Find("#mobile-menu").AttrOr("data-open", ""), "menu state lives in the session")

	resp, _ = env.get("/menu/close?next=%2Fhelp", false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/help", resp.Header.Get("Location"))

	_, doc = env.get("/help", false)
	require.Equal(t, "false", doc.Find("#mobile-menu").AttrOr("data-open", ""))

	resp, _ = env.post("/menu/toggle", url.Values{"csrf_token": {token}, "next": {"https://evil.example/"}}, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.get("/nope", false)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogCommandListsMatches(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog", "--q", "zzz-no-match"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, 1, strings.Count(out.String(), "\n"), "header only")

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog", "--category", "registry"})
	require.NoError(t, cmd.Execute())
	require.True(t, strings.HasPrefix(out.String(), "ID"))
	require.Greater(t, strings.Count(out.String(), "\n"), 1)

	cmd = newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"catalog", "--category", "tax"})
	require.Error(t, cmd.Execute())
}
