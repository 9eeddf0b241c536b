package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Mailer delivers a submission to the site owner.
type Mailer interface {
	Send(ctx context.Context, s Submission) error
}

// LogMailer acknowledges submissions without delivering them.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return LogMailer{logger: logger}
}

func (m LogMailer) Send(_ context.Context, s Submission) error {
	m.logger.Info("contact submission received",
		zap.String("name", s.Name),
		zap.Int("message_length", len(s.Message)),
	)

	return nil
}

type SMTPSettings struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends submissions through an authenticated SMTP relay.
type SMTPMailer struct {
	settings SMTPSettings
	send     sendFunc
	logger   *zap.Logger
}

func NewSMTPMailer(settings SMTPSettings, logger *zap.Logger) (*SMTPMailer, error) {
	if settings.User == "" || settings.Pass == "" {
		return nil, ErrNotConfigured
	}

	if settings.Host == "" {
		settings.Host = "smtp.gmail.com"
	}
	if settings.Port == "" {
		settings.Port = "587"
	}
	if settings.To == "" {
		settings.To = DefaultRecipient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SMTPMailer{
		settings: settings,
		send:     smtp.SendMail,
		logger:   logger,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.settings.Host, m.settings.Port)
	auth := smtp.PlainAuth("", m.settings.User, m.settings.Pass, m.settings.Host)

	if err := m.send(addr, auth, m.settings.User, []string{m.settings.To}, m.Message(s)); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}

	m.logger.Info("contact email sent", zap.String("name", s.Name))

	return nil
}

var headerSanitizer = strings.NewReplacer("\r", "", "\n", " ")

// Message composes the RFC 5322 message for s.
func (m *SMTPMailer) Message(s Submission) []byte {
	name := headerSanitizer.Replace(s.Name)
	from := headerSanitizer.Replace(s.From)

	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, from, s.Message)

	return []byte("To: " + m.settings.To + "\r\n" +
		"Subject: Portfolio contact from " + name + "\r\n" +
		"From: " + m.settings.User + "\r\n" +
		"Reply-To: " + from + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
