// Package notification delivers transactional email for the resource
// services.
package notification

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sistemaventa/backend/internal/application/gateway"
	"github.com/sistemaventa/backend/internal/domain/settings"
	"github.com/sistemaventa/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Ensure SMTPSender implements the gateway contract
var _ gateway.MailSender = (*SMTPSender)(nil)

// SMTPSender submits mail through the SMTP account described by the
// Servicio_Correo configuration rows. The rows are read on every send
// so credential changes take effect without a restart.
type SMTPSender struct {
	settings shared.Repository[settings.Configuration]
	logger   *zap.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(cfg shared.Repository[settings.Configuration], logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{settings: cfg, logger: logger}
}

// Send delivers one HTML email. Every failure collapses to false;
// callers must treat false as "not delivered" with no further
// diagnosis available.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) bool {
	if err := ctx.Err(); err != nil {
		return false
	}

	m, d, err := s.compose(ctx, to, subject, body)
	if err != nil {
		s.logger.Warn("mail not sent", zap.String("to", to), zap.Error(err))
		return false
	}

	if err := d.DialAndSend(m); err != nil {
		s.logger.Warn("mail not sent", zap.String("to", to), zap.Error(err))
		return false
	}
	return true
}

func (s *SMTPSender) compose(ctx context.Context, to, subject, body string) (*gomail.Message, *gomail.Dialer, error) {
	rows, err := s.settings.Query(ctx, settings.ForResource(settings.ResourceMailService))
	if err != nil {
		return nil, nil, fmt.Errorf("loading mail configuration: %w", err)
	}
	cfg := settings.AsMap(rows)

	for _, key := range []string{settings.MailPropertyAddress, settings.MailPropertySecret, settings.MailPropertyHost, settings.MailPropertyPort} {
		if cfg[key] == "" {
			return nil, nil, fmt.Errorf("mail configuration is missing %q", key)
		}
	}

	port, err := strconv.Atoi(cfg[settings.MailPropertyPort])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid mail port %q: %w", cfg[settings.MailPropertyPort], err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", cfg[settings.MailPropertyAddress], cfg[settings.MailPropertyAlias])
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		cfg[settings.MailPropertyHost],
		port,
		cfg[settings.MailPropertyAddress],
		cfg[settings.MailPropertySecret],
	)
	// Implicit TLS on the smtps port; STARTTLS is negotiated otherwise
	d.SSL = port == 465

	return m, d, nil
}
