package models

// TechStack is a badge shown under the hero copy
type TechStack struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
}

// Hero holds the banner copy
type Hero struct {
	Name        string      `json:"name" validate:"required"`
	Role        string      `json:"role"`
	Description string      `json:"description"`
	TechStack   []TechStack `json:"techStack" validate:"dive"`
}

// Feature is one highlight in the about section
type Feature struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Stat is an about-section figure, animated by a counter ("20+")
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value" validate:"required"`
}

// About holds the about-section copy
type About struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
	Stats       []Stat    `json:"stats" validate:"dive"`
}

// SkillCategory is a card in the skills grid
type SkillCategory struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Tags        []string `json:"tags"`
}

// Proficiency drives one progress bar
type Proficiency struct {
	Label      string `json:"label" validate:"required"`
	Percentage int    `json:"percentage" validate:"gte=0,lte=100"`
	Icon       string `json:"icon"`
}

// Skills holds the skills taxonomy
type Skills struct {
	Categories       []SkillCategory `json:"categories" validate:"dive"`
	Proficiencies    []Proficiency   `json:"proficiencies" validate:"dive"`
	TechAndLibraries []string        `json:"techAndLibraries"`
}

// Experience is one timeline entry
type Experience struct {
	Role        string   `json:"role" validate:"required"`
	Company     string   `json:"company" validate:"required"`
	Location    string   `json:"location"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Current     bool     `json:"current,omitempty"`
	Tags        []string `json:"tags"`
	Icon        string   `json:"icon"`
}

// Contact holds the owner's coordinates
type Contact struct {
	Email    string `json:"email" validate:"required,email"`
	GitHub   string `json:"github" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url"`
	Phone    string `json:"phone"`
}

// PortfolioData is the root configuration aggregate.
// It is loaded once and never mutated.
type PortfolioData struct {
	Hero        Hero         `json:"hero"`
	About       About        `json:"about"`
	Skills      Skills       `json:"skills"`
	Projects    []Project    `json:"projects" validate:"dive"`
	Experiences []Experience `json:"experiences" validate:"dive"`
	Contact     Contact      `json:"contact"`
}
