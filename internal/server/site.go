package server

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/contact"
	"github.com/gksrikar/portfolio/internal/content"
	"github.com/gksrikar/portfolio/internal/render"
)

// Site loads the data files and assembles the page view. It is shared by
// the HTTP server and the static exporter.
type Site struct {
	Renderer      *render.Renderer
	Source        content.Source
	Logger        *zap.Logger
	FallbackEmail string
	ContactAction string
	Now           func() time.Time
}

// Page loads every resource and renders the page view. The document is
// returned so callers can report skipped sections.
func (s *Site) Page(ctx context.Context) (render.Page, *content.Document, error) {
	doc := content.Load(ctx, s.Source, s.logger())

	page, err := s.Renderer.Build(
		doc,
		render.Defaults(s.FallbackEmail),
		render.ContactView{
			Action:    s.ContactAction,
			Recipient: contact.FallbackAddress(render.EmailHref(s.FallbackEmail, doc.Profile)),
		},
		s.now().Year(),
	)
	if err != nil {
		return render.Page{}, doc, err
	}

	return page, doc, nil
}

// EmailLink is the href of the page's email link: the profile address when
// site.json has a non-blank one, otherwise the configured fallback.
func (s *Site) EmailLink(ctx context.Context) string {
	profile, err := content.LoadProfile(ctx, s.Source)
	if err != nil {
		s.logger().Warn("site profile unavailable for contact fallback", zap.Error(err))
	}

	if href := render.EmailHref(s.FallbackEmail, profile); href != "" {
		return href
	}

	return "mailto:" + contact.DefaultRecipient
}

func (s *Site) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

func (s *Site) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}
