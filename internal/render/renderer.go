package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gksrikar/portfolio/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

const PageTemplate = "index.html"

// Renderer turns loaded records into HTML fragments and full pages.
type Renderer struct {
	tmpl     *template.Template
	headings map[content.Resource]string
	policy   *bluemonday.Policy

	mdMu     sync.Mutex
	markdown goldmark.Markdown
}

func New() (*Renderer, error) {
	tmpl, err := template.New("_root").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	title := cases.Title(language.English)
	headings := make(map[content.Resource]string, len(sectionTable))
	for _, s := range sectionTable {
		headings[s.resource] = title.String(s.resource.String())
	}

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &Renderer{
		tmpl:     tmpl,
		headings: headings,
		policy:   policy,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// Templates exposes the parsed set so an HTTP engine can execute it directly.
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// Fragment renders one record with the named fragment template.
func (r *Renderer) Fragment(name string, record any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, record); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

// literalTags keeps HTML typed into the about text visible as text. Raw HTML
// would otherwise be omitted by goldmark.
var literalTags = strings.NewReplacer("<", "&lt;")

// Markdown converts src and strips anything the sanitising policy rejects.
// Angle brackets in src are shown literally, never interpreted as markup.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer

	r.mdMu.Lock()
	err := r.markdown.Convert([]byte(literalTags.Replace(src)), &buf)
	r.mdMu.Unlock()

	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// BindProfile overlays the present fields of p on base. Absent or blank
// fields keep the value already in base.
func (r *Renderer) BindProfile(base ProfileView, p *content.Profile) (ProfileView, error) {
	if p == nil {
		return base, nil
	}

	view := base
	set := func(dst *string, v string) {
		if present(v) {
			*dst = v
		}
	}

	set(&view.Name, p.Name)
	set(&view.Tagline, p.Tagline)
	set(&view.Location, p.Location)
	set(&view.LinkedIn, p.LinkedIn)
	set(&view.GitHub, p.GitHub)
	set(&view.Resume, p.Resume)
	set(&view.Photo, p.Photo)

	if present(p.Email) {
		view.Email = strings.TrimSpace(p.Email)
		view.EmailHref = EmailHref(base.Email, p)
	}

	if present(p.About) {
		about, err := r.Markdown(p.About)
		if err != nil {
			return base, err
		}

		view.About = about
	}

	return view, nil
}

// EmailHref is the href of the page's email link: the profile address when
// it is present, otherwise fallback. It is empty when neither is set.
func EmailHref(fallback string, p *content.Profile) string {
	if p != nil && present(p.Email) {
		return "mailto:" + strings.TrimSpace(p.Email)
	}

	return Defaults(fallback).EmailHref
}

// present treats whitespace-only values as absent.
func present(v string) bool {
	return strings.TrimSpace(v) != ""
}

// Sections renders every collection in the document, in table order. A
// resource that failed to load yields an empty, unloaded section.
func (r *Renderer) Sections(doc *content.Document) ([]Section, error) {
	sections := make([]Section, 0, len(sectionTable))

	for _, spec := range sectionTable {
		section := Section{
			ID:          spec.resource.String(),
			Heading:     r.headings[spec.resource],
			ContainerID: spec.container,
			Class:       spec.class,
		}

		if doc.Loaded(spec.resource) {
			section.Loaded = true

			for _, record := range records(doc, spec.resource) {
				fragment, err := r.Fragment(spec.template, record)
				if err != nil {
					return nil, err
				}

				section.Fragments = append(section.Fragments, fragment)
			}
		}

		sections = append(sections, section)
	}

	return sections, nil
}

// Build assembles the full page view from a loaded document.
func (r *Renderer) Build(doc *content.Document, defaults ProfileView, contact ContactView, year int) (Page, error) {
	profile, err := r.BindProfile(defaults, doc.Profile)
	if err != nil {
		return Page{}, err
	}

	sections, err := r.Sections(doc)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Profile:  profile,
		Sections: sections,
		Contact:  contact,
		Year:     year,
	}, nil
}

func (r *Renderer) Page(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, page)
}

func (r *Renderer) Contact(w io.Writer, view ContactView) error {
	return r.tmpl.ExecuteTemplate(w, ContactTemplate, view)
}
