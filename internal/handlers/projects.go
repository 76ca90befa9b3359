package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iamLuCat/portfolio/internal/models"
	"github.com/iamLuCat/portfolio/internal/services"
	"github.com/iamLuCat/portfolio/internal/viewport"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	basePath       string
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, basePath string) *ProjectHandler {
	if basePath == "" {
		basePath = "/"
	}
	return &ProjectHandler{projectService: ps, basePath: basePath}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// FollowLink handles GET /api/projects/{id}/links/{kind}. Placeholder links
// land on the not-found view.
func (h *ProjectHandler) FollowLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind := models.LinkKind(chi.URLParam(r, "kind"))

	target, err := h.projectService.ResolveLink(id, kind)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "Project not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	url := target.URL
	if target.NotFound {
		url = h.basePath + viewport.NotFoundHash
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
