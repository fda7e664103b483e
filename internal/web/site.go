package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/togetherfinance/lead-intake/pkg/logging"
)

//go:embed static
var staticFS embed.FS

// Handler serves the marketing site and its assets from the embedded
// filesystem. The form on the page posts to /api/contact on the same host.
type Handler struct {
	index  []byte
	assets http.Handler
	logger *logging.Logger
}

// NewHandler creates the static site handler.
func NewHandler(logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	index, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return &Handler{
		index:  index,
		assets: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		logger: logger,
	}, nil
}

// ServeIndex serves the single-page site.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.index)
}

// ServeAssets serves JS/CSS under /static/ with a short public cache.
func (h *Handler) ServeAssets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.assets.ServeHTTP(w, r)
}
