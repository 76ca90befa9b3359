// Package viewport tracks where the reader is on the page: which section the
// navbar should highlight and whether the not-found view has taken over.
package viewport

// Section identifies one anchored block of the page
type Section string

const (
	SectionNone       Section = ""
	SectionHome       Section = "home"
	SectionAbout      Section = "about"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
	SectionExperience Section = "experience"
	SectionContact    Section = "contact"
)

// Sections is the fixed priority order used by the tracker
var Sections = []Section{
	SectionHome,
	SectionAbout,
	SectionSkills,
	SectionProjects,
	SectionExperience,
	SectionContact,
}

// Anchor returns the URL fragment for the section
func (s Section) Anchor() string {
	return "#" + string(s)
}

// ParseSection maps an id or fragment onto a known section
func ParseSection(s string) (Section, bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return SectionNone, false
}

// NavLink is one navbar entry
type NavLink struct {
	Label string  `json:"label"`
	Href  string  `json:"href"`
	ID    Section `json:"id"`
}

// NavLinks lists the navbar entries in display order
var NavLinks = []NavLink{
	{Label: "Home", Href: "#home", ID: SectionHome},
	{Label: "About Me", Href: "#about", ID: SectionAbout},
	{Label: "Skills", Href: "#skills", ID: SectionSkills},
	{Label: "Projects", Href: "#projects", ID: SectionProjects},
	{Label: "Experience", Href: "#experience", ID: SectionExperience},
	{Label: "Contact", Href: "#contact", ID: SectionContact},
}

const (
	// NavbarHeight is the fixed header height in pixels
	NavbarHeight = 64
	// NavPadding is the extra gap left above a section after a nav jump
	NavPadding = 20
)

// ScrollTarget returns the page offset a nav click should scroll to so the
// section lands just below the fixed header.
func ScrollTarget(elementTop, pageYOffset float64) float64 {
	return elementTop + pageYOffset - NavbarHeight - NavPadding
}
