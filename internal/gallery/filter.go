// Package gallery implements the project grid: category filtering and the
// single-project detail modal.
package gallery

import (
	"fmt"
	"slices"
	"sync"

	"github.com/iamLuCat/portfolio/internal/models"
)

// Filter returns the projects in category c, in their original order.
// CategoryAll returns a copy of the full list.
func Filter(projects []models.Project, c models.Category) []models.Project {
	if c == models.CategoryAll || c == "" {
		return slices.Clone(projects)
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Gallery holds the filter selection for one viewer
type Gallery struct {
	projects []models.Project

	mu       sync.Mutex
	selected models.Category
}

// New creates a Gallery showing everything
func New(projects []models.Project) *Gallery {
	return &Gallery{projects: projects, selected: models.CategoryAll}
}

// Select changes the active category
func (g *Gallery) Select(c models.Category) error {
	if c != models.CategoryAll && !c.IsValid() {
		return fmt.Errorf("unknown category: %s", c)
	}
	g.mu.Lock()
	g.selected = c
	g.mu.Unlock()
	return nil
}

// Selected returns the active category
func (g *Gallery) Selected() models.Category {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected
}

// Visible returns the projects matching the active category
func (g *Gallery) Visible() []models.Project {
	return Filter(g.projects, g.Selected())
}

// Find looks a project up by id
func (g *Gallery) Find(id string) (*models.Project, bool) {
	for i := range g.projects {
		if g.projects[i].ID == id {
			p := g.projects[i]
			return &p, true
		}
	}
	return nil, false
}
