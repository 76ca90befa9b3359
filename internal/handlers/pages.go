package handlers

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"github.com/iamLuCat/portfolio/internal/config"
	"github.com/iamLuCat/portfolio/internal/models"
	"github.com/iamLuCat/portfolio/internal/render"
	"github.com/iamLuCat/portfolio/internal/services"
	"github.com/iamLuCat/portfolio/internal/viewport"
)

// PageHandler serves the rendered site
type PageHandler struct {
	renderer *render.Renderer
	data     *models.PortfolioData
	projects *services.ProjectService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(rd *render.Renderer, d *models.PortfolioData, ps *services.ProjectService, cfg *config.Config, logger *zap.Logger) *PageHandler {
	return &PageHandler{renderer: rd, data: d, projects: ps, cfg: cfg, logger: logger}
}

// Index handles GET /. ?category= pre-filters the gallery and ?project=
// opens the detail modal. Unknown values fall back to the plain page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category, ok := models.ParseCategory(q.Get("category"))
	if !ok {
		category = models.CategoryAll
	}
	projects, err := h.projects.List(string(category))
	if err != nil {
		projects = h.projects.GetAll()
	}

	page := h.basePage()
	page.Category = category
	page.Projects = projects
	page.Active = viewport.SectionHome

	if id := q.Get("project"); id != "" {
		if p, err := h.projects.GetByID(id); err == nil {
			page.Modal = p
		}
	}

	h.write(w, http.StatusOK, page)
}

// NotFound handles GET /404 and every unmatched path
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	page := h.basePage()
	page.NotFound = true
	h.write(w, http.StatusNotFound, page)
}

func (h *PageHandler) basePage() render.Page {
	return render.Page{
		Data:     h.data,
		BasePath: h.cfg.Site.BasePath,
		SiteKey:  h.cfg.Recaptcha.SiteKey,
		Projects: h.projects.GetAll(),
	}
}

func (h *PageHandler) write(w http.ResponseWriter, status int, page render.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
