package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	assetsPrefix       = "/assets"
	assetsCacheControl = "public, max-age=604800, stale-while-revalidate=86400"
)

// assetServer serves files below a directory with content-hash validators computed at
// startup. Files added after startup are served without an ETag.
type assetServer struct {
	files      http.Handler
	validators map[string]string
}

// AssetsWithCache serves dir under /assets with long-lived caching and weak ETags. The
// /assets prefix must still be on the request path.
func AssetsWithCache(dir string) http.Handler {
	return &assetServer{
		files:      http.StripPrefix(assetsPrefix, http.FileServer(http.Dir(dir))),
		validators: hashTree(dir),
	}
}

func (s *assetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Cache-Control", assetsCacheControl)
	h.Set("Vary", "Accept-Encoding")
	name := path.Clean(strings.TrimPrefix(r.URL.Path, assetsPrefix))
	if tag, ok := s.validators[name]; ok {
		h.Set("ETag", tag)
		if r.Header.Get("If-None-Match") == tag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	s.files.ServeHTTP(w, r)
}

// hashTree maps slash-rooted relative paths to weak ETags. Unreadable entries are skipped.
func hashTree(dir string) map[string]string {
	out := make(map[string]string)
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		if tag, hashErr := hashFile(p); hashErr == nil {
			out["/"+filepath.ToSlash(rel)] = tag
		}
		return nil
	})
	return out
}

func hashFile(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(sum.Sum(nil)[:16]) + `"`, nil
}
