// Package mailer sends transactional email through SendGrid.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/infrastructure/config"
)

// Mailer sends email to a fixed recipient list
type Mailer interface {
	Send(ctx context.Context, subject, plainBody, htmlBody string) error
}

// ErrMailerDisabled is returned when sending while the mailer is disabled
var ErrMailerDisabled = errors.New("mailer: disabled by configuration")

// SendGridMailer implements Mailer using the SendGrid v3 API
type SendGridMailer struct {
	client     *sendgrid.Client
	from       *mail.Email
	recipients []string
	enabled    bool
	logger     *zap.Logger
}

// NewSendGridMailer creates a mailer from configuration
func NewSendGridMailer(cfg config.MailConfig, logger *zap.Logger) (*SendGridMailer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Enabled && cfg.SendGridAPIKey == "" {
		return nil, errors.New("mailer: SendGrid API key is required when mail is enabled")
	}
	return &SendGridMailer{
		client:     sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:       mail.NewEmail(cfg.FromName, cfg.FromEmail),
		recipients: cfg.AlertRecipients,
		enabled:    cfg.Enabled,
		logger:     logger,
	}, nil
}

// Send delivers one message to all configured recipients
func (m *SendGridMailer) Send(ctx context.Context, subject, plainBody, htmlBody string) error {
	if !m.enabled {
		return ErrMailerDisabled
	}
	if len(m.recipients) == 0 {
		return errors.New("mailer: no recipients configured")
	}

	personalization := mail.NewPersonalization()
	for _, r := range m.recipients {
		personalization.AddTos(mail.NewEmail("", r))
	}

	message := mail.NewV3Mail()
	message.SetFrom(m.from)
	message.Subject = subject
	message.AddPersonalizations(personalization)
	if plainBody != "" {
		message.AddContent(mail.NewContent("text/plain", plainBody))
	}
	if htmlBody != "" {
		message.AddContent(mail.NewContent("text/html", htmlBody))
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailer: SendGrid returned HTTP %d: %s", resp.StatusCode, resp.Body)
	}

	m.logger.Debug("alert email sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(m.recipients)))
	return nil
}

// Ensure SendGridMailer implements Mailer
var _ Mailer = (*SendGridMailer)(nil)
