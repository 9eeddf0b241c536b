package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gksrikar/portfolio/internal/content"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := New()
	require.NoError(t, err)

	return r
}

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)

	return doc
}

func TestProjectCardFragment(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	html, err := r.Fragment("project-card", content.Project{
		Title:       "Scheduler",
		Description: "Cron for humans",
		Tech:        []string{"Go", "Postgres"},
		Link:        "https://example.com/scheduler",
	})
	require.NoError(t, err)

	doc := parseHTML(t, string(html))
	assert.Equal(t, "Scheduler", doc.Find(".card h3").Text())
	assert.Equal(t, "Cron for humans", doc.Find(".card p").First().Text())
	assert.Equal(t, 2, doc.Find(".badge").Length())

	href, ok := doc.Find("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/scheduler", href)
	assert.Equal(t, "noopener", doc.Find("a").AttrOr("rel", ""))
}

func TestProjectCardToleratesMissingFields(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	html, err := r.Fragment("project-card", content.Project{Title: "Bare"})
	require.NoError(t, err)

	doc := parseHTML(t, string(html))
	assert.Equal(t, "Bare", doc.Find("h3").Text())
	assert.Equal(t, 0, doc.Find(".badge").Length())
	assert.Equal(t, 0, doc.Find("a").Length())
}

func TestFragmentIsDeterministic(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	role := content.Role{Role: "SRE", Organization: "Acme", Start: "2020", End: "2023", Location: "Remote", Bullets: []string{"x", "y"}}

	first, err := r.Fragment("role", role)
	require.NoError(t, err)
	second, err := r.Fragment("role", role)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	doc := parseHTML(t, string(first))
	assert.Equal(t, "SRE · Acme", doc.Find("h3").Text())
	assert.Equal(t, "2020 – 2023 · Remote", doc.Find(".meta").Text())
	assert.Equal(t, 2, doc.Find("li").Length())
}

func TestFragmentEscapesText(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	html, err := r.Fragment("project-card", content.Project{
		Title: `<script>alert("x")</script>`,
		Link:  "javascript:alert(1)",
	})
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>")
	assert.Contains(t, string(html), "&lt;script&gt;")
	assert.NotContains(t, string(html), "javascript:")
}

func TestSectionsKeepCountAndOrder(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	doc := &content.Document{
		Skills:         []content.Skill{"Go", "Rust"},
		Certifications: []content.Certification{{Title: "c1"}, {Title: "c2"}, {Title: "c3"}},
		Experience:     []content.Role{{Role: "first"}, {Role: "second"}},
		Education:      []content.Education{{Degree: "BSc"}},
		Leadership:     []content.Role{},
		Projects:       []content.Project{{Title: "p1"}, {Title: "p2"}, {Title: "p3"}, {Title: "p4"}},
	}

	sections, err := r.Sections(doc)
	require.NoError(t, err)
	require.Len(t, sections, 6)

	counts := map[string]int{}
	for _, s := range sections {
		assert.True(t, s.Loaded, s.ID)
		counts[s.ContainerID] = len(s.Fragments)
	}

	assert.Equal(t, map[string]int{
		"skills-list":         2,
		"certifications-list": 3,
		"experience-list":     2,
		"education-list":      1,
		"leadership-list":     0,
		"projects-grid":       4,
	}, counts)

	projects := sections[len(sections)-1]
	require.Equal(t, "projects-grid", projects.ContainerID)
	assert.Equal(t, "Projects", projects.Heading)
	for i, want := range []string{"p1", "p2", "p3", "p4"} {
		assert.Contains(t, string(projects.Fragments[i]), "<h3>"+want+"</h3>")
	}
}

func TestSectionsSkipFailedResources(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	doc := &content.Document{
		Skills: []content.Skill{"Go"},
		Failures: map[content.Resource]*content.Failure{
			content.ResourceProjects: {Resource: content.ResourceProjects, Kind: content.KindParse},
		},
	}

	sections, err := r.Sections(doc)
	require.NoError(t, err)

	for _, s := range sections {
		if s.ID == "projects" {
			assert.False(t, s.Loaded)
			assert.Empty(t, s.Fragments)
		}
		if s.ID == "skills" {
			assert.True(t, s.Loaded)
			assert.Len(t, s.Fragments, 1)
		}
	}
}

func TestBindProfileNeverBlanks(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	base := Defaults("owner@example.com")
	base.Location = "Earth"

	view, err := r.BindProfile(base, &content.Profile{
		Name:    "Ada Lovelace",
		Tagline: "",
		About:   "   ",
		GitHub:  "https://github.com/ada",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", view.Name)
	assert.Equal(t, "https://github.com/ada", view.GitHub)

	assert.Equal(t, base.Tagline, view.Tagline)
	assert.Equal(t, base.About, view.About)
	assert.Equal(t, "Earth", view.Location)
	assert.Equal(t, "#", view.LinkedIn)
	assert.Equal(t, "mailto:owner@example.com", view.EmailHref)
}

func TestBindProfileEmailAndAbout(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	view, err := r.BindProfile(Defaults(""), &content.Profile{
		Email: "ada@example.com",
		About: "Builds **engines**.<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "mailto:ada@example.com", view.EmailHref)
	assert.Contains(t, string(view.About), "<strong>engines</strong>")
	assert.NotContains(t, string(view.About), "<script")
}

func TestBindProfileNil(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	base := Defaults("owner@example.com")

	view, err := r.BindProfile(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, view)
}

func TestPageBindsElements(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	doc := &content.Document{
		Profile:  &content.Profile{Name: "Ada", Tagline: "Engines", Resume: "/resume.pdf"},
		Projects: []content.Project{{Title: "Analytical Engine"}},
	}

	page, err := r.Build(doc, Defaults("owner@example.com"), ContactView{Action: "/contact"}, 2026)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, page))

	html := parseHTML(t, buf.String())
	assert.Equal(t, "Ada", html.Find("#site-name").Text())
	assert.Equal(t, "Ada", html.Find("#footer-name").Text())
	assert.Equal(t, "Engines", html.Find("#site-tagline").Text())
	assert.Equal(t, "2026", html.Find("#year").Text())
	assert.Equal(t, "/resume.pdf", html.Find("#resume-link").AttrOr("href", ""))
	assert.Equal(t, "mailto:owner@example.com", html.Find("#email-link").AttrOr("href", ""))
	assert.Equal(t, 1, html.Find("#projects-grid .card").Length())
	assert.Equal(t, 1, html.Find("#contact-form").Length())
	assert.Equal(t, "/contact", html.Find("#contact-form").AttrOr("action", ""))
}

func TestContainerID(t *testing.T) {
	t.Parallel()

	id, ok := ContainerID(content.ResourceProjects)
	assert.True(t, ok)
	assert.Equal(t, "projects-grid", id)

	_, ok = ContainerID(content.ResourceSite)
	assert.False(t, ok)
}

func TestMarkdownKeepsLiteralTags(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	html, err := r.Markdown("I write <b>Go</b> and **Markdown**.")
	require.NoError(t, err)

	doc := parseHTML(t, string(html))
	assert.Equal(t, "I write <b>Go</b> and Markdown.", doc.Find("p").Text())
	assert.Equal(t, 0, doc.Find("p b").Length())
	assert.Equal(t, "Markdown", doc.Find("p strong").Text())
}

func TestBindProfileIgnoresWhitespaceOnlyValues(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	base := Defaults("owner@example.com")

	view, err := r.BindProfile(base, &content.Profile{
		Name:     "  ",
		Email:    "   ",
		Location: "\t",
	})
	require.NoError(t, err)

	assert.Equal(t, base.Name, view.Name)
	assert.Equal(t, base.Location, view.Location)
	assert.Equal(t, "owner@example.com", view.Email)
	assert.Equal(t, "mailto:owner@example.com", view.EmailHref)
}

func TestEmailHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fallback string
		profile  *content.Profile
		want     string
	}{
		{name: "profile email", fallback: "owner@example.com", profile: &content.Profile{Email: "ada@example.com"}, want: "mailto:ada@example.com"},
		{name: "blank profile email", fallback: "owner@example.com", profile: &content.Profile{Email: "   "}, want: "mailto:owner@example.com"},
		{name: "no profile", fallback: "owner@example.com", want: "mailto:owner@example.com"},
		{name: "nothing configured", profile: &content.Profile{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EmailHref(tt.fallback, tt.profile))
		})
	}
}

func TestContactFormCarriesMailtoFallback(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Contact(&buf, ContactView{Action: "/contact", Recipient: "owner@example.com"}))

	form := parseHTML(t, buf.String()).Find("#contact-form")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, "owner@example.com", form.AttrOr("data-mailto-to", ""))
	assert.Equal(t, "portfolioMailto(this)", form.AttrOr("hx-on::send-error", ""))
	assert.Equal(t, "portfolioMailto(this)", form.AttrOr("hx-on::response-error", ""))
}

func TestPageDefinesMailtoFallback(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	page, err := r.Build(&content.Document{}, Defaults(""), ContactView{Action: "/contact", Recipient: "owner@example.com"}, 2026)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, page))

	script := parseHTML(t, buf.String()).Find("head script:not([src])").Text()
	assert.Contains(t, script, "function portfolioMailto(form)")
	assert.Contains(t, script, "Portfolio contact from ")
	assert.Contains(t, script, "Reply-to: ")
	assert.Contains(t, script, "encodeURIComponent(body)")
}
