package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nyaysathi.in/web/internal/catalog"
	"nyaysathi.in/web/internal/chat"
	"nyaysathi.in/web/internal/config"
	"nyaysathi.in/web/internal/content"
	"nyaysathi.in/web/internal/dashboard"
	"nyaysathi.in/web/internal/i18n"
	mw "nyaysathi.in/web/internal/middleware"
	"nyaysathi.in/web/internal/observability"
)

const requestTimeout = 30 * time.Second

// app bundles the dependencies shared by handlers.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	bundle    *i18n.Bundle
	views     *renderer
	chat      *chat.Service
	catalog   *catalog.Catalog
	content   *content.Store
	dashboard dashboard.Service
	sessions  *mw.Sessions
	upgrader  websocket.Upgrader
}

// appOptions lets tests swap the chat scheduler and clock.
type appOptions struct {
	Scheduler chat.Scheduler
	Now       func() time.Time
}

func newApp(cfg config.Config, logger *zap.Logger, opts appOptions) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	bundle, err := i18n.Load(cfg.Web.LocalesDir, cfg.Web.DefaultLocale, cfg.Web.Locales)
	if err != nil {
		return nil, fmt.Errorf("load i18n: %w", err)
	}
	views, err := newRenderer(cfg.Web.TemplatesDir, cfg.Web.DevMode, bundle, now)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	store, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	chatSvc := chat.NewService(chat.Options{
		ReplyDelay: cfg.Chat.ReplyDelay,
		Policy:     cfg.Chat.SendPolicy,
		Scheduler:  opts.Scheduler,
		IdleTTL:    cfg.Chat.IdleTTL,
		Now:        now,
		Logger:     logger.Named("chat"),
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		bundle:    bundle,
		views:     views,
		chat:      chatSvc,
		catalog:   catalog.Default(),
		content:   store,
		dashboard: dashboard.NewStaticService(now),
		sessions: mw.NewSessions(mw.SessionOptions{
			SigningKey: cfg.Session.SigningKey,
			Secure:     cfg.Session.Secure,
			Logger:     logger,
		}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(a.logger))
	r.Use(observability.Trace)
	r.Use(observability.RequestLogger)
	r.Use(observability.Recovery(a.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(a.cfg.Web.PublicDir, "assets")))

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(a.sessions.Middleware)
		r.Use(mw.Locale(a.bundle))
		r.Use(mw.CSRF(a.sessions.Secure()))
		r.Use(mw.VaryLocale)

		// long-lived; kept clear of the timeout and compression wrappers
		r.Get("/chat/ws", a.chatSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(chimw.Timeout(requestTimeout))

			r.Get("/", a.landingPage)
			r.Get("/chat", a.chatPage)
			r.Get("/chat/messages", a.chatMessages)
			r.Post("/chat/messages", a.chatSend)
			r.Post("/chat/language", a.chatLanguage)
			r.Get("/templates", a.templatesPage)
			r.Get("/templates/results", a.templateResults)
			r.Get("/templates/{id}", a.templatePreview)
			r.Get("/tools", a.toolsPage)
			r.Get("/dashboard", a.dashboardPage)
			r.Get("/help", a.helpPage)
			r.Post("/menu/toggle", a.menuToggle)
			r.Get("/menu/close", a.menuClose)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
	})
	return r
}

// runSweeper evicts idle conversations until ctx is done.
func (a *app) runSweeper(ctx context.Context) {
	interval := a.cfg.Chat.SweepInterval
	if interval <= 0 || a.cfg.Chat.IdleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.chat.Sweep(ctx)
		}
	}
}
