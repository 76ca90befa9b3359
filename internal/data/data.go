// Package data holds the portfolio content the whole site renders from.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/iamLuCat/portfolio/internal/models"
)

//go:embed portfolio.json
var embedded []byte

// Load parses the embedded portfolio data
func Load() (*models.PortfolioData, error) {
	return Parse(embedded)
}

// LoadFile reads portfolio data from disk instead of the embedded copy
func LoadFile(path string) (*models.PortfolioData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a portfolio document
func Parse(raw []byte) (*models.PortfolioData, error) {
	var d models.PortfolioData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio data: %w", err)
	}
	if err := Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks field constraints plus the cross-record invariants:
// project ids are unique and every project sits in a known category.
func Validate(d *models.PortfolioData) error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("invalid portfolio data: %w", err)
	}

	seen := make(map[string]bool, len(d.Projects))
	for _, p := range d.Projects {
		if seen[p.ID] {
			return fmt.Errorf("invalid portfolio data: duplicate project id %q", p.ID)
		}
		seen[p.ID] = true

		if !p.Category.IsValid() {
			return fmt.Errorf("invalid portfolio data: project %q has unknown category %q", p.ID, p.Category)
		}
	}
	return nil
}
