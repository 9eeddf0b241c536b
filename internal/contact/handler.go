package contact

import (
	"context"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/render"
)

const (
	errMethodNotAllowed = "Method Not Allowed"
	errMissingFields    = "Missing fields"
	errDeliveryFailed   = "Delivery failed"
)

// Reply is the intake endpoint's JSON body.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RecipientFunc resolves the page's email link href for the fallback path.
type RecipientFunc func(ctx context.Context) string

type Handler struct {
	mailer    Mailer
	recipient RecipientFunc
	action    string
	logger    *zap.Logger
}

func NewHandler(mailer Mailer, recipient RecipientFunc, action string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recipient == nil {
		recipient = func(context.Context) string { return "" }
	}

	return &Handler{
		mailer:    mailer,
		recipient: recipient,
		action:    action,
		logger:    logger,
	}
}

// Intake validates and acknowledges a JSON submission. Register it for every
// method so non-POST requests get the JSON 405 body.
func (h *Handler) Intake(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, Reply{Error: errMethodNotAllowed})

		return
	}

	var s Submission
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, Reply{Error: errMissingFields})

		return
	}

	if err := h.deliver(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusBadGateway, Reply{Error: errDeliveryFailed})

		return
	}

	c.JSON(http.StatusOK, Reply{OK: true})
}

// Form returns the empty contact form fragment.
func (h *Handler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, render.ContactTemplate, render.ContactView{
		Action:    h.action,
		Recipient: FallbackAddress(h.recipient(c.Request.Context())),
	})
}

// Submit handles the HTML form post. Any failure, including missing fields,
// takes the mailto fallback path.
func (h *Handler) Submit(c *gin.Context) {
	var s Submission
	if err := c.ShouldBindWith(&s, binding.Form); err != nil {
		h.logger.Debug("contact form incomplete", zap.Error(err))
	}
	s = s.Trimmed()

	ctx := c.Request.Context()
	to := FallbackAddress(h.recipient(ctx))

	if s.Complete() {
		if err := h.deliver(ctx, s); err == nil {
			c.HTML(http.StatusOK, render.ContactTemplate, render.ContactView{
				Action:    h.action,
				Recipient: to,
				Status:    string(StatusSent),
			})

			return
		}
	}

	uri := MailtoURI(to, s)

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", uri)
	}

	c.HTML(http.StatusOK, render.ContactTemplate, render.ContactView{
		Action:    h.action,
		Recipient: to,
		Name:      s.Name,
		Email:     s.From,
		Message:   s.Message,
		Status:    string(StatusOpeningEmail),
		Mailto:    uri,
	})
}

func (h *Handler) deliver(ctx context.Context, s Submission) error {
	err := h.mailer.Send(ctx, s)
	if err == nil {
		return nil
	}

	h.logger.Error("contact delivery failed", zap.Error(err))

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)

	return err
}
