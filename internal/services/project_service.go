package services

import (
	"errors"
	"fmt"

	"github.com/iamLuCat/portfolio/internal/gallery"
	"github.com/iamLuCat/portfolio/internal/models"
)

// ErrProjectNotFound is returned by GetByID for unknown ids
var ErrProjectNotFound = errors.New("project not found")

// ErrUnknownCategory is returned by List for a category outside the filter set
var ErrUnknownCategory = errors.New("unknown category")

// LinkTarget is where a demo or source button leads
type LinkTarget struct {
	URL      string
	NotFound bool
}

// ProjectService handles project-related operations
type ProjectService struct {
	projects []models.Project
}

// NewProjectService creates a new ProjectService
func NewProjectService(d *models.PortfolioData) *ProjectService {
	return &ProjectService{projects: d.Projects}
}

// GetAll returns all projects
func (s *ProjectService) GetAll() []models.Project {
	return gallery.Filter(s.projects, models.CategoryAll)
}

// List returns the projects in the named category. An empty name lists all.
func (s *ProjectService) List(category string) ([]models.Project, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return gallery.Filter(s.projects, c), nil
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// ResolveLink finds the demo or source target of a project. Placeholder
// links resolve to the not-found view.
func (s *ProjectService) ResolveLink(id string, kind models.LinkKind) (LinkTarget, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return LinkTarget{}, err
	}
	url, ok := p.Link(kind)
	if !ok {
		return LinkTarget{}, fmt.Errorf("unknown link kind: %s", kind)
	}
	if models.IsPlaceholderLink(url) {
		return LinkTarget{NotFound: true}, nil
	}
	return LinkTarget{URL: url}, nil
}
