package render

import (
	"html/template"
	"strings"
)

// Static copy shown until site.json provides a value. A missing or empty
// field in site.json never blanks these.
var (
	DefaultName = "Portfolio"

	DefaultTagline = `Software engineer building reliable services.`

	DefaultAbout = template.HTML(`<p>I enjoy building software that is useful and dependable, and I am
always curious about how things work behind the scenes.</p>`)

	DefaultLocation = ""
)

// Defaults returns the page copy used before any data is bound. email is the
// address the email link points at.
func Defaults(email string) ProfileView {
	view := ProfileView{
		Name:     DefaultName,
		Tagline:  DefaultTagline,
		About:    DefaultAbout,
		Location: DefaultLocation,
		LinkedIn: "#",
		GitHub:   "#",
		Resume:   "#",
	}

	if email = strings.TrimSpace(email); email != "" {
		view.Email = email
		view.EmailHref = "mailto:" + email
	}

	return view
}
