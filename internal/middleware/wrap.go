package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// headerHook runs a callback once, right before the response headers are committed.
// The session middleware uses it to emit the cookie after handlers have run.
type headerHook struct {
	http.ResponseWriter
	before    func(http.ResponseWriter)
	committed bool
}

func newHeaderHook(w http.ResponseWriter, before func(http.ResponseWriter)) *headerHook {
	return &headerHook{ResponseWriter: w, before: before}
}

func (h *headerHook) commit() {
	if h.committed {
		return
	}
	h.committed = true
	if h.before != nil {
		h.before(h.ResponseWriter)
	}
}

func (h *headerHook) WriteHeader(code int) {
	h.commit()
	h.ResponseWriter.WriteHeader(code)
}

func (h *headerHook) Write(b []byte) (int, error) {
	h.commit()
	return h.ResponseWriter.Write(b)
}

func (h *headerHook) Flush() {
	h.commit()
	if f, ok := h.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack skips the hook; upgraded connections carry no cookie.
func (h *headerHook) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := h.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("middleware: hijacking not supported")
	}
	h.committed = true
	return hj.Hijack()
}

func (h *headerHook) Unwrap() http.ResponseWriter { return h.ResponseWriter }
