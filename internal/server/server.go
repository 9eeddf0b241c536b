package server

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/contact"
	"github.com/gksrikar/portfolio/internal/render"
)

type Options struct {
	DataDir   string
	StaticDir string
}

type Server struct {
	engine *gin.Engine
	site   *Site
	logger *zap.Logger
}

func New(opts Options, site *Site, mailer contact.Mailer) (*Server, error) {
	logger := site.logger()

	visitors, err := NewVisitorLog(logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine: gin.New(),
		site:   site,
		logger: logger,
	}

	s.engine.Use(RequestID())
	s.engine.Use(RequestLogger(logger))
	s.engine.Use(gin.CustomRecovery(s.recover))
	s.engine.Use(visitors.Middleware())

	s.engine.SetHTMLTemplate(site.Renderer.Templates())

	contacts := contact.NewHandler(mailer, site.EmailLink, site.ContactAction, logger)

	s.engine.GET("/", s.home)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if opts.StaticDir != "" {
		s.engine.Static("/static", opts.StaticDir)
	}
	if opts.DataDir != "" {
		s.engine.Static("/data", opts.DataDir)
	}

	s.engine.Any("/api/contact", contacts.Intake)
	s.engine.GET("/contact-form", contacts.Form)
	s.engine.POST("/contact", contacts.Submit)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) home(c *gin.Context) {
	page, _, err := s.site.Page(c.Request.Context())
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		c.String(http.StatusInternalServerError, "Sorry, the page could not be rendered.")

		return
	}

	c.HTML(http.StatusOK, render.PageTemplate, page)
}

func (s *Server) recover(c *gin.Context, rec any) {
	s.logger.Error("panic recovered",
		zap.Any("panic", rec),
		zap.String("path", c.Request.URL.Path),
	)

	hub := sentry.GetHubFromContext(c.Request.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(fmt.Errorf("panic: %v", rec))

	c.AbortWithStatus(http.StatusInternalServerError)
}
