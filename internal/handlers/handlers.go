package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iamLuCat/portfolio/internal/config"
	"github.com/iamLuCat/portfolio/internal/contact"
	"github.com/iamLuCat/portfolio/internal/metrics"
	"github.com/iamLuCat/portfolio/internal/middleware"
	"github.com/iamLuCat/portfolio/internal/models"
	"github.com/iamLuCat/portfolio/internal/render"
	"github.com/iamLuCat/portfolio/internal/services"
)

// Dependencies are the long-lived values the routes are built from
type Dependencies struct {
	Config   *config.Config
	Data     *models.PortfolioData
	Logger   *zap.Logger
	Contact  *contact.Service
	Renderer *render.Renderer
	Limiter  *middleware.RateLimiter
	// Proxies decides whose X-Forwarded-For is believed; nil trusts nobody
	Proxies *middleware.ProxyTrust
	// Live serves the websocket viewport session; nil disables /live
	Live http.Handler
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientAddr(deps.Proxies))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// Initialize services
	projectService := services.NewProjectService(deps.Data)

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService, deps.Config.Site.BasePath)
	pageHandler := NewPageHandler(deps.Renderer, deps.Data, projectService, deps.Config, logger)
	contactHandler := NewContactHandler(deps.Contact, deps.Config, logger)

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(deps.Config.Contact.RateLimit, deps.Config.Contact.Burst)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, deps.Data)
		})

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/projects/{id}/links/{kind}", projectHandler.FollowLink)

		// Contact form
		r.With(limiter.Middleware).Post("/contact", contactHandler.Submit)
		r.Get("/config/public", contactHandler.PublicConfig)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Handle("/metrics", metrics.Handler())

	if deps.Live != nil {
		r.Handle("/live", deps.Live)
	}

	// Static files
	fileServer := http.FileServer(http.FS(render.Static()))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	// Pages
	r.Get("/", pageHandler.Index)
	r.Get("/404", pageHandler.NotFound)
	r.NotFound(pageHandler.NotFound)

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("Error encoding JSON", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
