package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "NYAYSATHI_SESSION"
	sessionTTL        = 30 * 24 * time.Hour
)

var cookieB64 = base64.RawURLEncoding

// SessionData is the per-visitor state kept in the signed cookie: UI locale, mobile
// menu flag, chat conversation and chat language.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	ChatID    string    `json:"chat,omitempty"`
	ChatLang  string    `json:"chatLang,omitempty"`
	MenuOpen  bool      `json:"menu,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	dirty bool
}

// MarkDirty schedules the cookie to be rewritten with this request's response.
func (s *SessionData) MarkDirty() {
	s.dirty = true
	s.UpdatedAt = time.Now().UTC()
}

func newSessionData() *SessionData {
	now := time.Now().UTC()
	return &SessionData{
		ID:        uuid.NewString(),
		CSRFToken: newCSRFToken(),
		CreatedAt: now,
		UpdatedAt: now,
		dirty:     true,
	}
}

// SessionOptions configures cookie signing.
type SessionOptions struct {
	// SigningKey authenticates the cookie. When empty a process-ephemeral key is generated.
	SigningKey string
	Secure     bool
	Logger     *zap.Logger
}

// Sessions is the HMAC-SHA256 cookie codec and its middleware.
type Sessions struct {
	key    []byte
	secure bool
}

// NewSessions builds the session codec. Without a signing key, sessions do not survive
// a restart.
func NewSessions(opts SessionOptions) *Sessions {
	s := &Sessions{key: []byte(opts.SigningKey), secure: opts.Secure}
	if len(s.key) > 0 {
		return s
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s.key = make([]byte, 32)
	_, _ = rand.Read(s.key)
	logger.Warn("session signing key not configured; using an ephemeral key",
		zap.String("env", "NYAYSATHI_SESSION_SIGNING_KEY"))
	return s
}

// Secure reports whether cookies are marked Secure.
func (s *Sessions) Secure() bool { return s.secure }

// Middleware attaches the visitor's session to the request context. The cookie goes out
// just before the first response byte, so handlers may change the session until then.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd := s.Decode(cookieValue(r))
		if sd == nil {
			sd = newSessionData()
		}
		flush := func(w http.ResponseWriter) {
			if sd.dirty {
				s.write(w, sd)
			}
		}
		hw := newHeaderHook(w, flush)
		next.ServeHTTP(hw, r.WithContext(context.WithValue(r.Context(), ctxKeySession, sd)))
		hw.commit()
	})
}

// GetSession returns the request's session. Outside the middleware it returns a detached
// zero session.
func GetSession(r *http.Request) *SessionData {
	if sd, ok := r.Context().Value(ctxKeySession).(*SessionData); ok && sd != nil {
		return sd
	}
	return &SessionData{}
}

// Encode returns the signed cookie value for sd: base64(json) "." base64(mac).
func (s *Sessions) Encode(sd *SessionData) string {
	payload, _ := json.Marshal(sd)
	return cookieB64.EncodeToString(payload) + "." + cookieB64.EncodeToString(s.mac(payload))
}

// Decode verifies and parses a cookie value. It returns nil for anything malformed,
// unsigned, or missing an ID.
func (s *Sessions) Decode(value string) *SessionData {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return nil
	}
	payload, err := cookieB64.DecodeString(value[:i])
	if err != nil {
		return nil
	}
	sig, err := cookieB64.DecodeString(value[i+1:])
	if err != nil || !hmac.Equal(sig, s.mac(payload)) {
		return nil
	}
	sd := new(SessionData)
	if json.Unmarshal(payload, sd) != nil || sd.ID == "" {
		return nil
	}
	return sd
}

func (s *Sessions) mac(payload []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write(payload)
	return h.Sum(nil)
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.Encode(sd),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL / time.Second),
	})
	sd.dirty = false
}

func cookieValue(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
