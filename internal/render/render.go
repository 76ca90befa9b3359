// Package render produces the server-side HTML for the portfolio page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/iamLuCat/portfolio/internal/models"
	"github.com/iamLuCat/portfolio/internal/motion"
	"github.com/iamLuCat/portfolio/internal/viewport"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the client assets served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("Failed to open embedded static assets: " + err.Error())
	}
	return sub
}

// Page is everything one render of the site needs
type Page struct {
	Data     *models.PortfolioData
	BasePath string
	SiteKey  string
	Active   viewport.Section
	Category models.Category
	Projects []models.Project
	Modal    *models.Project
	NotFound bool
	Year     int
}

// ContactItem is one row in the contact section
type ContactItem struct {
	Label string
	Value string
	Icon  string
	Href  string
}

// External reports whether the link leaves the site and opens a new tab
func (c ContactItem) External() bool {
	return strings.HasPrefix(c.Href, "http")
}

// ContactItems builds the contact rows from the owner's coordinates
func ContactItems(c models.Contact) []ContactItem {
	return []ContactItem{
		{Label: "Email", Value: c.Email, Icon: "mail", Href: "mailto:" + c.Email},
		{Label: "Phone", Value: c.Phone, Icon: "call", Href: "tel:" + c.Phone},
		{Label: "GitHub", Value: displayURL(c.GitHub), Icon: "code", Href: c.GitHub},
		{Label: "LinkedIn", Value: displayURL(c.LinkedIn), Icon: "work", Href: c.LinkedIn},
	}
}

// SocialLinks builds the footer icons
func SocialLinks(c models.Contact) []ContactItem {
	return []ContactItem{
		{Label: "GitHub", Icon: "code", Href: c.GitHub},
		{Label: "LinkedIn", Icon: "work", Href: c.LinkedIn},
		{Label: "Email", Icon: "alternate_email", Href: "mailto:" + c.Email},
	}
}

func displayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

// Renderer executes the page templates
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the embedded templates
func New() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
	}
	tmpl, err := template.New("page").Funcs(r.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the full page
func (r *Renderer) Render(w io.Writer, p Page) error {
	if p.Year == 0 {
		p.Year = time.Now().Year()
	}
	if p.BasePath == "" {
		p.BasePath = "/"
	}
	if p.Category == "" {
		p.Category = models.CategoryAll
	}
	if p.Active == viewport.SectionNone && !p.NotFound {
		p.Active = viewport.SectionHome
	}
	if p.NotFound {
		p.Active = viewport.SectionNone
	}

	// render into a buffer so a template error never leaves a half page
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Markdown converts prose to HTML. Raw HTML in the source is dropped.
func (r *Renderer) Markdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": r.Markdown,
		"navLinks": func() []viewport.NavLink { return viewport.NavLinks },
		"categories": func() []models.Category {
			return models.Categories
		},
		"contactItems": ContactItems,
		"socialLinks":  SocialLinks,
		"reveal":       revealStyle,
		"revealData":   revealData,
		"revealAt": func(o motion.RevealOptions, delayMs int) motion.RevealOptions {
			o.Delay = time.Duration(delayMs) * time.Millisecond
			return o
		},
		"slideUp":     func() motion.RevealOptions { return motion.RevealOptions{} },
		"scaleIn":     func() motion.RevealOptions { return motion.RevealOptions{Effect: motion.EffectScale} },
		"fadeIn":      func() motion.RevealOptions { return motion.RevealOptions{Effect: motion.EffectFade} },
		"projectCard": motion.ProjectCardReveal,
		"skillCard":   motion.SkillCardReveal,
		"techChip":    motion.TechChipReveal,
		"contactItem": motion.ContactItemReveal,
		"counter":     func(v any) motion.CounterValue { return motion.ParseCounterValue(v) },
		"progressDelay": func(idx int) int64 {
			return (time.Duration(idx) * motion.ProgressStagger).Milliseconds()
		},
		"progressEasing": func() template.CSS { return template.CSS(motion.BouncyEasing.CSS()) },
		"categoryQuery": func(base string, c models.Category) string {
			if c == models.CategoryAll {
				return base + "#projects"
			}
			return base + "?category=" + template.URLQueryEscaper(string(c)) + "#projects"
		},
	}
}

// revealStyle is the inline style an element carries before its reveal fires
func revealStyle(o motion.RevealOptions) template.CSS {
	o = o.Resolved()
	return template.CSS(motion.InitialStyle(o.Effect).CSS() + " " + motion.TransitionFor(o).CSS())
}

// revealData marks an element for the live session and carries the options
// it should be observed with
func revealData(o motion.RevealOptions) template.HTMLAttr {
	o = o.Resolved()
	attr := fmt.Sprintf(`data-reveal data-effect="%s" data-delay="%d" data-threshold="%s"`,
		template.HTMLEscapeString(string(o.Effect)),
		o.Delay.Milliseconds(),
		strconv.FormatFloat(o.Threshold, 'f', -1, 64))
	if o.Repeat {
		attr += " data-repeat"
	}
	return template.HTMLAttr(attr)
}
