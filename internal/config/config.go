package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"nyaysathi.in/web/internal/chat"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadHeader    = 10 * time.Second
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultIdleTimeout   = 60 * time.Second
	defaultEnvironment   = "local"
	defaultTemplatesDir  = "templates"
	defaultPublicDir     = "public"
	defaultLocalesDir    = "locales"
	defaultLocale        = "en"
	defaultReplyDelay    = 2 * time.Second
	defaultChatIdleTTL   = 6 * time.Hour
	defaultSweepInterval = 10 * time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Web       WebConfig
	Session   SessionConfig
	Chat      ChatConfig
	Analytics AnalyticsConfig
	LogLevel  string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// WebConfig locates templates, assets and locale files.
type WebConfig struct {
	Environment   string
	DevMode       bool
	TemplatesDir  string
	PublicDir     string
	LocalesDir    string
	DefaultLocale string
	Locales       []string
}

// Production reports whether the deployment is marked as prod.
func (w WebConfig) Production() bool { return strings.EqualFold(w.Environment, "prod") }

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string
	Secure     bool
}

// ChatConfig controls the simulated assistant.
type ChatConfig struct {
	ReplyDelay    time.Duration
	SendPolicy    chat.Policy
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// AnalyticsConfig holds client instrumentation identifiers surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	Debug            bool
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string { return slices.Clone(e.fields) }

// Option adjusts where Load reads values from.
type Option func(*sources)

// sources resolves keys through the explicit map, then the process environment, then
// the dotenv file. It collects the keys whose values fail to parse.
type sources struct {
	envFile  string
	explicit map[string]string
	system   bool
	dotenv   map[string]string
	invalid  []string
}

// WithEnvFile sets the dotenv file consulted last. An empty path skips it.
func WithEnvFile(path string) Option {
	return func(s *sources) { s.envFile = path }
}

// WithEnvMap supplies values that win over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(s *sources) { s.explicit = values }
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(s *sources) { s.system = false }
}

func (s *sources) get(key string) string {
	if v, ok := s.explicit[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if s.system {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(s.dotenv[key])
}

func (s *sources) str(key, def string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return def
}

func (s *sources) duration(key string, def time.Duration) time.Duration {
	raw := s.get(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		s.reject(key)
		return def
	}
	return d
}

func (s *sources) flag(key string) bool {
	raw := s.get(key)
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		s.reject(key)
	}
	return b
}

func (s *sources) reject(key string) { s.invalid = append(s.invalid, key) }

// Load builds the configuration. Each key resolves from the WithEnvMap values, then the
// process environment, then the dotenv file, then the built-in default.
func Load(_ context.Context, opts ...Option) (Config, error) {
	src := &sources{envFile: defaultEnvFile, system: true}
	for _, opt := range opts {
		opt(src)
	}
	dotenv, err := readDotEnv(src.envFile)
	if err != nil {
		return Config{}, err
	}
	src.dotenv = dotenv

	// NYAYSATHI_WEB_PORT wins over the platform-provided PORT
	addr := src.str("NYAYSATHI_WEB_PORT", src.str("PORT", defaultPort))
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	env := strings.ToLower(src.str("NYAYSATHI_WEB_ENV", defaultEnvironment))

	cfg := Config{
		Server: ServerConfig{
			Addr:              addr,
			ReadHeaderTimeout: src.duration("NYAYSATHI_SERVER_READ_HEADER_TIMEOUT", defaultReadHeader),
			ReadTimeout:       src.duration("NYAYSATHI_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      src.duration("NYAYSATHI_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       src.duration("NYAYSATHI_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Web: WebConfig{
			Environment:   env,
			DevMode:       src.flag("NYAYSATHI_WEB_DEV"),
			TemplatesDir:  src.str("NYAYSATHI_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:     src.str("NYAYSATHI_PUBLIC_DIR", defaultPublicDir),
			LocalesDir:    src.str("NYAYSATHI_LOCALES_DIR", defaultLocalesDir),
			DefaultLocale: strings.ToLower(src.str("NYAYSATHI_DEFAULT_LOCALE", defaultLocale)),
			Locales:       []string{"en", "hi"},
		},
		Session: SessionConfig{
			SigningKey: src.get("NYAYSATHI_SESSION_SIGNING_KEY"),
			Secure:     env == "prod",
		},
		Chat: ChatConfig{
			ReplyDelay:    src.duration("NYAYSATHI_CHAT_REPLY_DELAY", defaultReplyDelay),
			IdleTTL:       src.duration("NYAYSATHI_CHAT_IDLE_TTL", defaultChatIdleTTL),
			SweepInterval: src.duration("NYAYSATHI_CHAT_SWEEP_INTERVAL", defaultSweepInterval),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: src.get("NYAYSATHI_GA_MEASUREMENT_ID"),
			Debug:            src.flag("NYAYSATHI_ANALYTICS_DEBUG"),
		},
		LogLevel: strings.ToLower(src.str("NYAYSATHI_LOG_LEVEL", "info")),
	}

	policy, err := chat.ParsePolicy(src.get("NYAYSATHI_CHAT_SEND_POLICY"))
	if err != nil {
		src.reject("NYAYSATHI_CHAT_SEND_POLICY")
	}
	cfg.Chat.SendPolicy = policy

	if cfg.Chat.ReplyDelay <= 0 {
		src.reject("NYAYSATHI_CHAT_REPLY_DELAY")
	}
	if !slices.Contains(cfg.Web.Locales, cfg.Web.DefaultLocale) {
		src.reject("NYAYSATHI_DEFAULT_LOCALE")
	}
	if cfg.Web.Production() && cfg.Session.SigningKey == "" {
		src.reject("NYAYSATHI_SESSION_SIGNING_KEY")
	}

	if len(src.invalid) > 0 {
		return Config{}, &ValidationError{fields: src.invalid}
	}
	return cfg, nil
}

func readDotEnv(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	switch {
	case err == nil:
		return values, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	default:
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
}
