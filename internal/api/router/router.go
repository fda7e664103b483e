package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/togetherfinance/lead-intake/internal/http/middleware"
	"github.com/togetherfinance/lead-intake/internal/leads"
	"github.com/togetherfinance/lead-intake/internal/web"
	"github.com/togetherfinance/lead-intake/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *leads.Handler
	SiteHandler        *web.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Per-IP limit on the contact endpoint. Zero disables it.
	ContactRatePerSec float64
	ContactRateBurst  int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.LeadsHandler != nil {
		r.Route("/api", func(api chi.Router) {
			if cfg.ContactRatePerSec > 0 {
				api.Use(httpmiddleware.RateLimit(cfg.ContactRatePerSec, cfg.ContactRateBurst))
			}
			api.Post("/contact", cfg.LeadsHandler.Submit)
		})
	}

	if cfg.SiteHandler != nil {
		r.Get("/static/*", cfg.SiteHandler.ServeAssets)
		r.Get("/*", cfg.SiteHandler.ServeIndex)
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
