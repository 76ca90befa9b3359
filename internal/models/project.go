package models

import "strings"

// Category is the gallery bucket a project is filed under
type Category string

const (
	CategoryAll    Category = "All" // filter sentinel, never stored on a project
	CategoryMobile Category = "Mobile"
	CategoryWeb    Category = "Web"
	CategoryUIKit  Category = "UI Kit"
)

// Categories lists the filter buttons in display order
var Categories = []Category{CategoryAll, CategoryMobile, CategoryWeb, CategoryUIKit}

// IsValid reports whether c can appear on a project
func (c Category) IsValid() bool {
	switch c {
	case CategoryMobile, CategoryWeb, CategoryUIKit:
		return true
	}
	return false
}

// ParseCategory maps a query value onto a known category.
// An empty value selects everything.
func ParseCategory(s string) (Category, bool) {
	if strings.TrimSpace(s) == "" {
		return CategoryAll, true
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Project represents a portfolio project
type Project struct {
	ID               string   `json:"id" validate:"required"`
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	LongDescription  string   `json:"longDescription,omitempty"`
	Challenges       []string `json:"challenges,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Role             string   `json:"role,omitempty"`
	Date             string   `json:"date,omitempty"`
	TeamSize         int      `json:"teamSize,omitempty" validate:"gte=0"`
	Category         Category `json:"category" validate:"required"`
	Image            string   `json:"image"`
	Tags             []string `json:"tags"`
	DemoURL          string   `json:"demoUrl"`
	SourceURL        string   `json:"sourceUrl"`
}

// Overview returns the long description, falling back to the short one
func (p *Project) Overview() string {
	if p.LongDescription != "" {
		return p.LongDescription
	}
	return p.Description
}

// LinkKind names one of the two outbound project links
type LinkKind string

const (
	LinkDemo   LinkKind = "demo"
	LinkSource LinkKind = "source"
)

// Link returns the target for the given kind
func (p *Project) Link(kind LinkKind) (string, bool) {
	switch kind {
	case LinkDemo:
		return p.DemoURL, true
	case LinkSource:
		return p.SourceURL, true
	}
	return "", false
}

// IsPlaceholderLink reports whether a link target is missing or a bare "#".
// Such links are sent to the not-found view instead of being followed.
func IsPlaceholderLink(url string) bool {
	u := strings.TrimSpace(url)
	return u == "" || u == "#"
}
