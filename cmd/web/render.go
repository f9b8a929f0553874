package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"nyaysathi.in/web/internal/dashboard"
	"nyaysathi.in/web/internal/format"
	"nyaysathi.in/web/internal/i18n"
	"nyaysathi.in/web/internal/observability"
)

// renderer owns one template set per page: the base layout, every partial and the page
// file. In dev mode the sets are reparsed on each request.
type renderer struct {
	dir    string
	dev    bool
	bundle *i18n.Bundle
	now    func() time.Time

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func newRenderer(dir string, dev bool, bundle *i18n.Bundle, now func() time.Time) (*renderer, error) {
	if now == nil {
		now = time.Now
	}
	rd := &renderer{dir: dir, dev: dev, bundle: bundle, now: now}
	pages, err := rd.parse()
	if err != nil {
		return nil, err
	}
	rd.pages = pages
	return rd, nil
}

func (rd *renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"t":   func(lang, key string) string { return rd.bundle.T(lang, key) },
		"now": rd.now,
		"kpiValue": func(k dashboard.KPI, lang string) string {
			return format.Number(k.Value, k.Decimals, lang) + k.Suffix
		},
		"percent": format.Percent,
		"relative": func(ts time.Time, lang string) string {
			return format.Relative(ts, rd.now(), lang)
		},
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
}

func (rd *renderer) parse() (map[string]*template.Template, error) {
	layouts, err := collect(filepath.Join(rd.dir, "layouts"))
	if err != nil {
		return nil, err
	}
	partials, err := collect(filepath.Join(rd.dir, "partials"))
	if err != nil {
		return nil, err
	}
	pageFiles, err := collect(filepath.Join(rd.dir, "pages"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 || len(pageFiles) == 0 {
		return nil, fmt.Errorf("no templates found under %s", rd.dir)
	}

	shared := append(append([]string{}, layouts...), partials...)
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		name := strings.TrimSuffix(filepath.Base(page), ".tmpl")
		files := append(append([]string{}, shared...), page)
		t, err := template.New(name).Funcs(rd.funcs()).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// collect returns every .tmpl file below dir, including nested directories.
func collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (rd *renderer) lookup(name string) (*template.Template, error) {
	if rd.dev {
		pages, err := rd.parse()
		if err != nil {
			return nil, err
		}
		rd.mu.Lock()
		rd.pages = pages
		rd.mu.Unlock()
	}
	rd.mu.RLock()
	defer rd.mu.RUnlock()
	t, ok := rd.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	return t, nil
}

// page executes the base layout of the named page with status code.
func (rd *renderer) page(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	logger := observability.FromContext(r.Context())
	t, err := rd.lookup(name)
	if err != nil {
		logger.Error("template lookup failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Error("template exec failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fragment renders a templ component for an htmx swap.
func (rd *renderer) fragment(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		observability.FromContext(r.Context()).Error("fragment render failed", zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
